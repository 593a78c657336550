package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pactumlogic/pactum-server/internal/dto"
	"github.com/pactumlogic/pactum-server/internal/service"
	"github.com/pactumlogic/pactum-server/pkg/response"
	"github.com/pactumlogic/pactum-server/pkg/validator"
)

type ContractHandler struct {
	service service.ContractService
}

func NewContractHandler(service service.ContractService) *ContractHandler {
	return &ContractHandler{service: service}
}

func (h *ContractHandler) ListContracts(c *gin.Context) {
	contracts, err := h.service.ListContracts(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts)
}

func (h *ContractHandler) ListRecentContracts(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	contracts, err := h.service.ListRecentContracts(c.Request.Context(), limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts)
}

func (h *ContractHandler) GetContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	contract, err := h.service.GetContract(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *ContractHandler) CreateContract(c *gin.Context) {
	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	contract, err := h.service.CreateContract(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contract)
}

func (h *ContractHandler) UpdateContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.UpdateContract(c.Request.Context(), id, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ContractHandler) DeleteContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteContract(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

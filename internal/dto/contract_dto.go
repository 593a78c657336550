package dto

import (
	"time"

	"github.com/pactumlogic/pactum-server/internal/model"
)

// CreateContractRequest doubles as the update payload: updates replace
// the advisor set wholesale rather than merging.
type CreateContractRequest struct {
	ReferenceNumber    string `json:"referenceNumber" binding:"required,max=100"`
	Institution        string `json:"institution" binding:"required,max=200"`
	ClientEmail        string `json:"clientEmail" binding:"required,email"`
	AdministratorEmail string `json:"administratorEmail" binding:"required,email"`
	// Advisor emails are not format-validated here: entries that do not
	// resolve to an advisor-capable person are dropped during composition.
	AdvisorEmails   []string `json:"advisorEmails"`
	ContractDate    string   `json:"contractDate" binding:"required,datetime=2006-01-02"`
	ValidityDate    string   `json:"validityDate" binding:"required,datetime=2006-01-02"`
	TerminationDate string   `json:"terminationDate" binding:"omitempty,datetime=2006-01-02"`
}

// ContractSummary is the flat shape embedded in person views.
type ContractSummary struct {
	ID              uint        `json:"id"`
	ReferenceNumber string      `json:"referenceNumber"`
	Institution     string      `json:"institution"`
	ContractDate    model.Date  `json:"contractDate"`
	ValidityDate    model.Date  `json:"validityDate"`
	TerminationDate *model.Date `json:"terminationDate"`
	IsActive        bool        `json:"isActive"`
}

// ContractResponse is the fully expanded shape for contract list and
// detail views.
type ContractResponse struct {
	ID              uint             `json:"id"`
	ReferenceNumber string           `json:"referenceNumber"`
	Institution     string           `json:"institution"`
	ClientID        uint             `json:"clientId"`
	AdministratorID uint             `json:"administratorId"`
	ContractDate    model.Date       `json:"contractDate"`
	ValidityDate    model.Date       `json:"validityDate"`
	TerminationDate *model.Date      `json:"terminationDate"`
	IsActive        bool             `json:"isActive"`
	Client          PersonResponse   `json:"client"`
	Administrator   PersonResponse   `json:"administrator"`
	Advisors        []PersonResponse `json:"advisors"`
}

type StatsResponse struct {
	ContractCount int64 `json:"contractCount"`
	ClientCount   int64 `json:"clientCount"`
	AdvisorCount  int64 `json:"advisorCount"`
}

func NewContractSummary(c *model.Contract, at time.Time) ContractSummary {
	return ContractSummary{
		ID:              c.ID,
		ReferenceNumber: c.ReferenceNumber,
		Institution:     c.Institution,
		ContractDate:    c.ContractDate,
		ValidityDate:    c.ValidityDate,
		TerminationDate: c.TerminationDate,
		IsActive:        c.IsActive(at),
	}
}

func NewContractResponse(c *model.Contract, at time.Time) ContractResponse {
	advisors := make([]PersonResponse, 0, len(c.ContractAdvisors))
	for _, advisor := range c.Advisors() {
		advisors = append(advisors, NewPersonResponse(&advisor))
	}

	return ContractResponse{
		ID:              c.ID,
		ReferenceNumber: c.ReferenceNumber,
		Institution:     c.Institution,
		ClientID:        c.ClientID,
		AdministratorID: c.AdministratorID,
		ContractDate:    c.ContractDate,
		ValidityDate:    c.ValidityDate,
		TerminationDate: c.TerminationDate,
		IsActive:        c.IsActive(at),
		Client:          NewPersonResponse(&c.Client),
		Administrator:   NewPersonResponse(&c.Administrator),
		Advisors:        advisors,
	}
}

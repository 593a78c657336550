package dto

import "github.com/pactumlogic/pactum-server/internal/model"

type CreatePersonRequest struct {
	FirstName        string `json:"firstName" binding:"required,max=100"`
	LastName         string `json:"lastName" binding:"required,max=100"`
	Email            string `json:"email" binding:"required,email,max=100"`
	Phone            string `json:"phone" binding:"max=50"`
	PersonalIdNumber string `json:"personalIdNumber" binding:"max=50"`
	Age              int    `json:"age" binding:"gte=0,lte=150"`
	Role             string `json:"role" binding:"required,oneof=client advisor both"`
}

type PersonFilter struct {
	Search string `form:"search"`
}

type PersonResponse struct {
	ID               uint             `json:"id"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	PersonalIdNumber string           `json:"personalIdNumber"`
	Age              int              `json:"age"`
	Role             model.PersonRole `json:"role"`
}

// PersonWithContractsResponse is the list-view shape: the person plus a
// flat summary of their contracts in one role, no back-references.
type PersonWithContractsResponse struct {
	PersonResponse
	Contracts []ContractSummary `json:"contracts"`
}

// PersonDetailResponse partitions the person's contracts by the role
// they hold in each.
type PersonDetailResponse struct {
	PersonResponse
	ClientContracts        []ContractSummary `json:"clientContracts"`
	AdministratorContracts []ContractSummary `json:"administratorContracts"`
	AdvisorContracts       []ContractSummary `json:"advisorContracts"`
}

func NewPersonResponse(p *model.Person) PersonResponse {
	return PersonResponse{
		ID:               p.ID,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Email:            p.Email,
		Phone:            p.Phone,
		PersonalIdNumber: p.PersonalIDNumber,
		Age:              p.Age,
		Role:             p.Role,
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pactumlogic/pactum-server/internal/dto"
	"github.com/pactumlogic/pactum-server/internal/model"
	"github.com/pactumlogic/pactum-server/internal/repository"
	"github.com/pactumlogic/pactum-server/pkg/apperror"
)

const defaultRecentLimit = 10

type ContractService interface {
	CreateContract(ctx context.Context, req dto.CreateContractRequest) (*dto.ContractResponse, error)
	UpdateContract(ctx context.Context, id uint, req dto.CreateContractRequest) error
	DeleteContract(ctx context.Context, id uint) error
	GetContract(ctx context.Context, id uint) (*dto.ContractResponse, error)
	ListContracts(ctx context.Context) ([]dto.ContractResponse, error)
	ListRecentContracts(ctx context.Context, limit int) ([]dto.ContractResponse, error)
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
}

type contractService struct {
	contracts repository.ContractRepository
	persons   repository.PersonRepository
	now       func() time.Time
}

func NewContractService(contracts repository.ContractRepository, persons repository.PersonRepository) ContractService {
	return &contractService{
		contracts: contracts,
		persons:   persons,
		now:       time.Now,
	}
}

func (s *contractService) CreateContract(ctx context.Context, req dto.CreateContractRequest) (*dto.ContractResponse, error) {
	contract, advisorIDs, err := s.composeContract(ctx, req, 0)
	if err != nil {
		return nil, err
	}

	if err := s.contracts.Create(ctx, contract, advisorIDs); err != nil {
		return nil, err
	}

	created, err := s.contracts.FindByID(ctx, contract.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewContractResponse(created, s.now())
	return &resp, nil
}

func (s *contractService) UpdateContract(ctx context.Context, id uint, req dto.CreateContractRequest) error {
	if _, err := s.contracts.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	contract, advisorIDs, err := s.composeContract(ctx, req, id)
	if err != nil {
		return err
	}
	contract.ID = id

	if err := s.contracts.Update(ctx, contract, advisorIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return nil
}

func (s *contractService) DeleteContract(ctx context.Context, id uint) error {
	if _, err := s.contracts.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return s.contracts.Delete(ctx, id)
}

func (s *contractService) GetContract(ctx context.Context, id uint) (*dto.ContractResponse, error) {
	contract, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	resp := dto.NewContractResponse(contract, s.now())
	return &resp, nil
}

func (s *contractService) ListContracts(ctx context.Context) ([]dto.ContractResponse, error) {
	contracts, err := s.contracts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(contracts), nil
}

func (s *contractService) ListRecentContracts(ctx context.Context, limit int) ([]dto.ContractResponse, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	contracts, err := s.contracts.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.toResponses(contracts), nil
}

func (s *contractService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	contractCount, err := s.contracts.Count(ctx)
	if err != nil {
		return nil, err
	}

	clientCount, err := s.persons.CountClients(ctx)
	if err != nil {
		return nil, err
	}

	advisorCount, err := s.persons.CountAdvisors(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.StatsResponse{
		ContractCount: contractCount,
		ClientCount:   clientCount,
		AdvisorCount:  advisorCount,
	}, nil
}

// composeContract resolves the request's participant emails against the
// person records and validates the reference number. excludeID is the
// contract being updated, zero on create.
func (s *contractService) composeContract(ctx context.Context, req dto.CreateContractRequest, excludeID uint) (*model.Contract, []uint, error) {
	client, err := s.persons.FindClientByEmail(ctx, req.ClientEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: client with email '%s' not found", apperror.ErrBadRequest, req.ClientEmail)
		}
		return nil, nil, err
	}

	administrator, err := s.persons.FindAdvisorByEmail(ctx, req.AdministratorEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: administrator with email '%s' not found", apperror.ErrBadRequest, req.AdministratorEmail)
		}
		return nil, nil, err
	}

	taken, err := s.contracts.ReferenceNumberTaken(ctx, req.ReferenceNumber, excludeID)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, fmt.Errorf("%w: a contract with the same reference number already exists", apperror.ErrConflict)
	}

	contractDate, err := model.ParseDate(req.ContractDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid contract date", apperror.ErrInvalidInput)
	}

	validityDate, err := model.ParseDate(req.ValidityDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid validity date", apperror.ErrInvalidInput)
	}

	var terminationDate *model.Date
	if req.TerminationDate != "" {
		parsed, err := model.ParseDate(req.TerminationDate)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid termination date", apperror.ErrInvalidInput)
		}
		terminationDate = &parsed
	}

	advisorIDs, err := s.resolveAdvisors(ctx, req.AdvisorEmails)
	if err != nil {
		return nil, nil, err
	}

	contract := &model.Contract{
		ReferenceNumber: req.ReferenceNumber,
		Institution:     req.Institution,
		ClientID:        client.ID,
		AdministratorID: administrator.ID,
		ContractDate:    contractDate,
		ValidityDate:    validityDate,
		TerminationDate: terminationDate,
	}

	return contract, advisorIDs, nil
}

// resolveAdvisors maps co-advisor emails to person ids. Emails that do not
// resolve to an advisor-capable person are dropped without error, and
// duplicates collapse to a single membership.
func (s *contractService) resolveAdvisors(ctx context.Context, emails []string) ([]uint, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	advisors, err := s.persons.FindAdvisorsByEmails(ctx, emails)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(advisors))
	ids := make([]uint, 0, len(advisors))
	for _, advisor := range advisors {
		if seen[advisor.ID] {
			continue
		}
		seen[advisor.ID] = true
		ids = append(ids, advisor.ID)
	}
	return ids, nil
}

func (s *contractService) toResponses(contracts []*model.Contract) []dto.ContractResponse {
	at := s.now()

	responses := make([]dto.ContractResponse, 0, len(contracts))
	for _, contract := range contracts {
		responses = append(responses, dto.NewContractResponse(contract, at))
	}
	return responses
}

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

type PersonService interface {
	CreatePerson(ctx context.Context, req dto.CreatePersonRequest) (*dto.PersonResponse, error)
	UpdatePerson(ctx context.Context, id uint, req dto.CreatePersonRequest) error
	DeletePerson(ctx context.Context, id uint) error
	GetPerson(ctx context.Context, id uint) (*dto.PersonDetailResponse, error)
	ListClients(ctx context.Context, filter dto.PersonFilter) ([]dto.PersonWithContractsResponse, error)
	ListAdvisors(ctx context.Context, filter dto.PersonFilter) ([]dto.PersonResponse, error)
	ListAdvisorsWithContracts(ctx context.Context, filter dto.PersonFilter) ([]dto.PersonWithContractsResponse, error)
}

type personService struct {
	repo repository.PersonRepository
	now  func() time.Time
}

func NewPersonService(repo repository.PersonRepository) PersonService {
	return &personService{repo: repo, now: time.Now}
}

func (s *personService) CreatePerson(ctx context.Context, req dto.CreatePersonRequest) (*dto.PersonResponse, error) {
	if err := s.ensureEmailFree(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	person := &model.Person{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		PersonalIDNumber: req.PersonalIdNumber,
		Age:              req.Age,
		Role:             model.PersonRole(req.Role),
	}

	if err := s.repo.Create(ctx, person); err != nil {
		return nil, err
	}

	resp := dto.NewPersonResponse(person)
	return &resp, nil
}

func (s *personService) UpdatePerson(ctx context.Context, id uint, req dto.CreatePersonRequest) error {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.ensureEmailFree(ctx, req.Email, id); err != nil {
		return err
	}

	person.FirstName = req.FirstName
	person.LastName = req.LastName
	person.Email = req.Email
	person.Phone = req.Phone
	person.PersonalIDNumber = req.PersonalIdNumber
	person.Age = req.Age
	person.Role = model.PersonRole(req.Role)

	if err := s.repo.Update(ctx, person); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return nil
}

func (s *personService) DeletePerson(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	referenced, err := s.repo.HasContractReferences(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: cannot delete person because they are associated with existing contracts", apperror.ErrBadRequest)
	}

	return s.repo.Delete(ctx, id)
}

func (s *personService) GetPerson(ctx context.Context, id uint) (*dto.PersonDetailResponse, error) {
	person, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	at := s.now()

	detail := &dto.PersonDetailResponse{
		PersonResponse:         dto.NewPersonResponse(person),
		ClientContracts:        summarizeContracts(person.ClientContracts, at),
		AdministratorContracts: summarizeContracts(person.AdministratorContracts, at),
		AdvisorContracts:       make([]dto.ContractSummary, 0, len(person.ContractAdvisors)),
	}

	for _, ca := range person.ContractAdvisors {
		contract := ca.Contract
		detail.AdvisorContracts = append(detail.AdvisorContracts, dto.NewContractSummary(&contract, at))
	}

	return detail, nil
}

func (s *personService) ListClients(ctx context.Context, filter dto.PersonFilter) ([]dto.PersonWithContractsResponse, error) {
	persons, err := s.repo.FindClients(ctx, filter.Search)
	if err != nil {
		return nil, err
	}

	at := s.now()

	responses := make([]dto.PersonWithContractsResponse, 0, len(persons))
	for _, person := range persons {
		responses = append(responses, dto.PersonWithContractsResponse{
			PersonResponse: dto.NewPersonResponse(person),
			Contracts:      summarizeContracts(person.ClientContracts, at),
		})
	}
	return responses, nil
}

func (s *personService) ListAdvisors(ctx context.Context, filter dto.PersonFilter) ([]dto.PersonResponse, error) {
	persons, err := s.repo.FindAdvisors(ctx, filter.Search)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PersonResponse, 0, len(persons))
	for _, person := range persons {
		responses = append(responses, dto.NewPersonResponse(person))
	}
	return responses, nil
}

func (s *personService) ListAdvisorsWithContracts(ctx context.Context, filter dto.PersonFilter) ([]dto.PersonWithContractsResponse, error) {
	persons, err := s.repo.FindAdvisorsWithContracts(ctx, filter.Search)
	if err != nil {
		return nil, err
	}

	at := s.now()

	responses := make([]dto.PersonWithContractsResponse, 0, len(persons))
	for _, person := range persons {
		contracts := make([]dto.ContractSummary, 0, len(person.ContractAdvisors))
		for _, ca := range person.ContractAdvisors {
			contract := ca.Contract
			contracts = append(contracts, dto.NewContractSummary(&contract, at))
		}

		responses = append(responses, dto.PersonWithContractsResponse{
			PersonResponse: dto.NewPersonResponse(person),
			Contracts:      contracts,
		})
	}
	return responses, nil
}

func (s *personService) ensureEmailFree(ctx context.Context, email string, excludeID uint) error {
	taken, err := s.repo.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: a person with this email already exists", apperror.ErrConflict)
	}
	return nil
}

func summarizeContracts(contracts []model.Contract, at time.Time) []dto.ContractSummary {
	summaries := make([]dto.ContractSummary, 0, len(contracts))
	for _, contract := range contracts {
		c := contract
		summaries = append(summaries, dto.NewContractSummary(&c, at))
	}
	return summaries
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pactumlogic/pactum-server/internal/model"
)

type ContractRepository interface {
	Create(ctx context.Context, contract *model.Contract, advisorIDs []uint) error
	Update(ctx context.Context, contract *model.Contract, advisorIDs []uint) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Contract, error)
	FindAll(ctx context.Context) ([]*model.Contract, error)
	FindRecent(ctx context.Context, limit int) ([]*model.Contract, error)
	ReferenceNumberTaken(ctx context.Context, referenceNumber string, excludeID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type contractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

// Create persists the contract row together with its advisor join rows so
// a failure leaves no half-written contract behind.
func (r *contractRepository) Create(ctx context.Context, contract *model.Contract, advisorIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contract).Error; err != nil {
			return err
		}

		return insertAdvisors(tx, contract.ID, advisorIDs)
	})
}

// Update rewrites the contract row and replaces the advisor set wholesale.
func (r *contractRepository) Update(ctx context.Context, contract *model.Contract, advisorIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Contract{}).
			Where("id = ?", contract.ID).
			Updates(map[string]interface{}{
				"reference_number": contract.ReferenceNumber,
				"institution":      contract.Institution,
				"client_id":        contract.ClientID,
				"administrator_id": contract.AdministratorID,
				"contract_date":    contract.ContractDate,
				"validity_date":    contract.ValidityDate,
				"termination_date": contract.TerminationDate,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Delete(&model.ContractAdvisor{}, "contract_id = ?", contract.ID).Error; err != nil {
			return err
		}

		return insertAdvisors(tx, contract.ID, advisorIDs)
	})
}

// Delete removes the contract and its join rows. Nothing else references
// contracts, so no further guard is needed.
func (r *contractRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ContractAdvisor{}, "contract_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Contract{}, "id = ?", id).Error
	})
}

func (r *contractRepository) FindByID(ctx context.Context, id uint) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Administrator").
		Preload("ContractAdvisors.Advisor").
		First(&contract, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindAll(ctx context.Context) ([]*model.Contract, error) {
	var contracts []*model.Contract
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Administrator").
		Preload("ContractAdvisors.Advisor").
		Order("contract_date DESC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *contractRepository) FindRecent(ctx context.Context, limit int) ([]*model.Contract, error) {
	var contracts []*model.Contract
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Administrator").
		Preload("ContractAdvisors.Advisor").
		Order("contract_date DESC").
		Limit(limit).
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *contractRepository) ReferenceNumberTaken(ctx context.Context, referenceNumber string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&model.Contract{}).
		Where("reference_number = ?", referenceNumber)

	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *contractRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Contract{}).Count(&count).Error
	return count, err
}

func insertAdvisors(tx *gorm.DB, contractID uint, advisorIDs []uint) error {
	for _, advisorID := range advisorIDs {
		join := model.ContractAdvisor{ContractID: contractID, AdvisorID: advisorID}
		if err := tx.Create(&join).Error; err != nil {
			return err
		}
	}
	return nil
}

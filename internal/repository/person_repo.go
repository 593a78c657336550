package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pactumlogic/pactum-server/internal/model"
)

type PersonRepository interface {
	Create(ctx context.Context, person *model.Person) error
	Update(ctx context.Context, person *model.Person) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Person, error)
	FindDetail(ctx context.Context, id uint) (*model.Person, error)
	FindClients(ctx context.Context, search string) ([]*model.Person, error)
	FindAdvisors(ctx context.Context, search string) ([]*model.Person, error)
	FindAdvisorsWithContracts(ctx context.Context, search string) ([]*model.Person, error)
	FindClientByEmail(ctx context.Context, email string) (*model.Person, error)
	FindAdvisorByEmail(ctx context.Context, email string) (*model.Person, error)
	FindAdvisorsByEmails(ctx context.Context, emails []string) ([]*model.Person, error)
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	HasContractReferences(ctx context.Context, id uint) (bool, error)
	CountClients(ctx context.Context) (int64, error)
	CountAdvisors(ctx context.Context) (int64, error)
}

type personRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &personRepository{db: db}
}

func (r *personRepository) Create(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *personRepository) Update(ctx context.Context, person *model.Person) error {
	result := r.db.WithContext(ctx).
		Model(&model.Person{}).
		Where("id = ?", person.ID).
		Select("first_name", "last_name", "email", "phone", "personal_id_number", "age", "role").
		Updates(person)
	if result.Error != nil {
		return result.Error
	}

	// The row vanished between read and write.
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *personRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Person{}, "id = ?", id).Error
}

func (r *personRepository) FindByID(ctx context.Context, id uint) (*model.Person, error) {
	var person model.Person
	if err := r.db.WithContext(ctx).First(&person, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) FindDetail(ctx context.Context, id uint) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Preload("ClientContracts").
		Preload("AdministratorContracts").
		Preload("ContractAdvisors.Contract").
		First(&person, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) FindClients(ctx context.Context, search string) ([]*model.Person, error) {
	var persons []*model.Person
	query := r.clientScope(r.db.WithContext(ctx)).Preload("ClientContracts")
	query = applySearch(query, search)

	if err := query.Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *personRepository) FindAdvisors(ctx context.Context, search string) ([]*model.Person, error) {
	var persons []*model.Person
	query := applySearch(r.advisorScope(r.db.WithContext(ctx)), search)

	if err := query.Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *personRepository) FindAdvisorsWithContracts(ctx context.Context, search string) ([]*model.Person, error) {
	var persons []*model.Person
	query := r.advisorScope(r.db.WithContext(ctx)).Preload("ContractAdvisors.Contract")
	query = applySearch(query, search)

	if err := query.Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *personRepository) FindClientByEmail(ctx context.Context, email string) (*model.Person, error) {
	var person model.Person
	err := r.clientScope(r.db.WithContext(ctx)).
		Where("email = ?", email).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) FindAdvisorByEmail(ctx context.Context, email string) (*model.Person, error) {
	var person model.Person
	err := r.advisorScope(r.db.WithContext(ctx)).
		Where("email = ?", email).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) FindAdvisorsByEmails(ctx context.Context, emails []string) ([]*model.Person, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	var persons []*model.Person
	err := r.advisorScope(r.db.WithContext(ctx)).
		Where("email IN ?", emails).
		Find(&persons).Error
	if err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *personRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&model.Person{}).
		Where("email = ?", email)

	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *personRepository) HasContractReferences(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Contract{}).
		Where("client_id = ? OR administrator_id = ?", id, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.WithContext(ctx).
		Model(&model.ContractAdvisor{}).
		Where("advisor_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *personRepository) CountClients(ctx context.Context) (int64, error) {
	var count int64
	err := r.clientScope(r.db.WithContext(ctx)).
		Model(&model.Person{}).
		Count(&count).Error
	return count, err
}

func (r *personRepository) CountAdvisors(ctx context.Context) (int64, error) {
	var count int64
	err := r.advisorScope(r.db.WithContext(ctx)).
		Model(&model.Person{}).
		Count(&count).Error
	return count, err
}

func (r *personRepository) clientScope(db *gorm.DB) *gorm.DB {
	return db.Where("role IN ?", []model.PersonRole{model.PersonRoleClient, model.PersonRoleBoth})
}

func (r *personRepository) advisorScope(db *gorm.DB) *gorm.DB {
	return db.Where("role IN ?", []model.PersonRole{model.PersonRoleAdvisor, model.PersonRoleBoth})
}

func applySearch(db *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return db
	}
	pattern := "%" + search + "%"
	return db.Where("first_name LIKE ? OR last_name LIKE ?", pattern, pattern)
}

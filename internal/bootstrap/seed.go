package bootstrap

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pactumlogic/pactum-server/internal/model"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Person{},
		&model.Contract{},
		&model.ContractAdvisor{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{Name: "admin", Description: "Super administrator"},
		{Name: "user", Description: "Regular user"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var adminRole model.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@pactum.com").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "Admin123!"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Email:        "admin@pactum.com",
		PasswordHash: string(hashedPasswordBytes),
		FirstName:    "Admin",
		LastName:     "User",
		RoleID:       &adminRole.ID,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully")
	log.Println("   Email: admin@pactum.com")
	log.Println("   Password: Admin123!")

	return nil
}

// SeedSampleData loads a small explorable dataset of persons and
// contracts. Development only; skipped if any person already exists.
func SeedSampleData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Person{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	persons := []model.Person{
		{FirstName: "Pavel", LastName: "Prochazka", Email: "pavel.prochazka@email.com", Phone: "+420111222333", PersonalIDNumber: "9001010001", Age: 34, Role: model.PersonRoleClient},
		{FirstName: "Anna", LastName: "Kratochvilova", Email: "anna.kratochvilova@email.com", Phone: "+420444555666", PersonalIDNumber: "8806061234", Age: 36, Role: model.PersonRoleClient},
		{FirstName: "Jan", LastName: "Novak", Email: "jan.novak@pactum.com", Phone: "+420123456789", PersonalIDNumber: "8001010123", Age: 44, Role: model.PersonRoleAdvisor},
		{FirstName: "Marie", LastName: "Svobodova", Email: "marie.svobodova@pactum.com", Phone: "+420987654321", PersonalIDNumber: "8505051234", Age: 39, Role: model.PersonRoleAdvisor},
		{FirstName: "Petr", LastName: "Dvorak", Email: "petr.dvorak@pactum.com", Phone: "+420777888999", PersonalIDNumber: "8203030456", Age: 42, Role: model.PersonRoleBoth},
	}

	if err := db.Create(&persons).Error; err != nil {
		return err
	}

	now := time.Now()
	lastYear := now.AddDate(0, -6, 0)

	contracts := []model.Contract{
		{
			ReferenceNumber: "CSOB-2024-001",
			Institution:     "CSOB",
			ClientID:        persons[0].ID,
			AdministratorID: persons[2].ID,
			ContractDate:    model.NewDate(lastYear.Year(), lastYear.Month(), 1),
			ValidityDate:    model.NewDate(now.Year()+1, now.Month(), 1),
		},
		{
			ReferenceNumber: "AEGON-2024-002",
			Institution:     "AEGON",
			ClientID:        persons[1].ID,
			AdministratorID: persons[3].ID,
			ContractDate:    model.NewDate(lastYear.Year(), lastYear.Month(), 15),
			ValidityDate:    model.NewDate(now.Year()+2, now.Month(), 15),
		},
	}

	if err := db.Create(&contracts).Error; err != nil {
		return err
	}

	joins := []model.ContractAdvisor{
		{ContractID: contracts[0].ID, AdvisorID: persons[3].ID},
		{ContractID: contracts[1].ID, AdvisorID: persons[4].ID},
	}

	if err := db.Create(&joins).Error; err != nil {
		return err
	}

	log.Println("Sample persons and contracts seeded successfully")
	return nil
}

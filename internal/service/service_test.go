package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pactumlogic/pactum-server/internal/bootstrap"
	"github.com/pactumlogic/pactum-server/internal/config"
	"github.com/pactumlogic/pactum-server/internal/dto"
	"github.com/pactumlogic/pactum-server/internal/repository"
)

// newTestDB opens a throwaway in-memory database migrated to the current
// schema. Each test gets its own named database so parallel tests do not
// share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))

	return db
}

func newPersonService(t *testing.T) (PersonService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewPersonService(repository.NewPersonRepository(db)), db
}

func newContractService(t *testing.T) (ContractService, PersonService) {
	t.Helper()
	db := newTestDB(t)
	personRepo := repository.NewPersonRepository(db)
	return NewContractService(repository.NewContractRepository(db), personRepo),
		NewPersonService(personRepo)
}

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, bootstrap.SeedRoles(db))

	cfg := &config.Config{
		JWTSecret:    "test-secret",
		JWTTTL:       time.Hour,
		LoginLockout: time.Minute,
	}
	return NewAuthService(repository.NewUserRepository(db), nil, cfg)
}

func seedPerson(t *testing.T, svc PersonService, firstName, email, role string) dto.PersonResponse {
	t.Helper()

	person, err := svc.CreatePerson(context.Background(), dto.CreatePersonRequest{
		FirstName: firstName,
		LastName:  "Tester",
		Email:     email,
		Phone:     "+420000000000",
		Age:       40,
		Role:      role,
	})
	require.NoError(t, err)
	return *person
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pactumlogic/pactum-server/internal/dto"
	"github.com/pactumlogic/pactum-server/pkg/apperror"
)

func TestCreateContract_ComposesParticipants(t *testing.T) {
	contractSvc, personSvc := newContractService(t)
	ctx := context.Background()

	seedPerson(t, personSvc, "Alice", "alice@x.com", "client")
	seedPerson(t, personSvc, "Bob", "bob@x.com", "advisor")

	contract, err := contractSvc.CreateContract(ctx, dto.CreateContractRequest{
		ReferenceNumber:    "REF-1",
		Institution:        "CSOB",
		ClientEmail:        "alice@x.com",
		AdministratorEmail: "bob@x.com",
		ContractDate:       "2024-01-01",
		ValidityDate:       "2024-06-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "REF-1", contract.ReferenceNumber)
	assert.Equal(t, "alice@x.com", contract.Client.Email)
	assert.Equal(t, "bob@x.com", contract.Administrator.Email)
	assert.Empty(t, contract.Advisors)
	assert.Nil(t, contract.TerminationDate)
	assert.Equal(t, "2024-01-01", contract.ContractDate.String())
	assert.Equal(t, "2024-06-01", contract.ValidityDate.String())
	// Validity date has passed, so the contract reads as inactive.
	assert.False(t, contract.IsActive)
}

func TestCreateContract_RequiresClientCapableRole(t *testing.T) {
	contractSvc, personSvc := newContractService(t)
	ctx := context.Background()

	seedPerson(t, personSvc, "Bob", "bob@x.com", "advisor")
	seedPerson(t, personSvc, "Carol", "carol@x.com", "advisor")

	_, err := contractSvc.CreateContract(ctx, dto.CreateContractRequest{
		ReferenceNumber:    "REF-1",
		Institution:        "CSOB",
		ClientEmail:        "carol@x.com", // advisor-only, cannot be the client
		AdministratorEmail: "bob@x.com",
		ContractDate:       "2024-01-01",
		ValidityDate:       "2030-06-01",
	})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestCreateContract_RequiresAdvisorCapableAdministrator(t *testing.T) {
	contractSvc, personSvc := newContractService(t)
	ctx := context.Background()

	seedPerson(t, personSvc, "Alice", "alice@x.com", "client")
	seedPerson(t, personSvc, "Dan", "dan@x.com", "client")

	_, err := contractSvc.CreateContract(ctx, dto.CreateContractRequest{
		ReferenceNumber:    "REF-1",
		Institution:        "CSOB",
		ClientEmail:        "alice@x.com",
		AdministratorEmail: "dan@x.com", // client-only, cannot administer
		ContractDate:       "2024-01-01",
		ValidityDate:       "2030-06-01",
	})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestCreateContract_UnknownEmails(t *testing.T) {
	contractSvc, personSvc := newContractService(t)
	ctx := context.Background()

	seedPerson(t, personSvc, "Bob", "bob@x.com", "advisor")

	_, err := contractSvc.CreateContract(ctx, dto.CreateContractRequest{
		ReferenceNumber:    "REF-1",
		Institution:        "CSOB",
		ClientEmail:        "nobody@x.com",
		AdministratorEmail: "bob@x.com",
		ContractDate:       "2024-01-01",
		ValidityDate:       "2030-06-01",
	})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestContract_ReferenceNumberUniqueness(t *testing.T) {
	contractSvc, personSvc := newContractService(t)
	ctx := context.Background()

	seedPerson(t, personSvc, "Alice", "alice@x.com", "client")
	seedPerson(t, personSvc, "Bob", "bob@x.com", "advisor")

	base := dto.CreateContractRequest{
		Institution:        "CSOB",
		ClientEmail:        "alice@x.com",
		AdministratorEmail: "bob@x.com",
		ContractDate:       "2024-01-01",
		ValidityDate:       "2030-06-01",
	}

	first := base
	first.ReferenceNumber = "REF-1"
	c1, err := contractSvc.CreateContract(ctx, first)
	require.NoError(t, err)

	second := base
	second.ReferenceNumber = "REF-2"
	c2, err := contractSvc.CreateContract(ctx, second)
	require.NoError(t, err)

	// A third contract reusing REF-1 conflicts.
	dup := base
	dup.ReferenceNumber = "REF-1"
	_, err = contractSvc.CreateContract(ctx, dup)
	require.ErrorIs(t, err, apperror.ErrConflict)

	// Updating REF-2's contract to REF-1 conflicts as well...
	steal := base
	steal.ReferenceNumber = "REF-1"
	err = contractSvc.UpdateContract(ctx, c2.ID, steal)
	require.ErrorIs(t, err, apperror.ErrConflict)

	// ...but re-submitting a contract's own reference number is fine.
	keep := base
	keep.ReferenceNumber = "REF-1"
	require.NoError(t, contractSvc.UpdateContract(ctx, c1.ID, keep))
}

func TestCreateContract_SilentlyDropsUnresolvedAdvisors(t *testing.T) {
	contractSvc, personSvc := newContractService(t)
	ctx := context.Background()

	seedPerson(t, personSvc, "Alice", "alice@x.com", "client")
	seedPerson(t, personSvc, "Bob", "bob@x.com", "advisor")
	seedPerson(t, personSvc, "Carol", "carol@x.com", "advisor")
	seedPerson(t, personSvc, "Dan", "dan@x.com", "client")

	contract, err := contractSvc.CreateContract(ctx, dto.CreateContractRequest{
		ReferenceNumber:    "REF-1",
		Institution:        "CSOB",
		ClientEmail:        "alice@x.com",
		AdministratorEmail: "bob@x.com",
		// Unknown and client-only emails are dropped; duplicates collapse.
		AdvisorEmails: []string{"carol@x.com", "nobody@x.com", "dan@x.com", "carol@x.com"},
		ContractDate:  "2024-01-01",
		ValidityDate:  "2030-06-01",
	})
	require.NoError(t, err)

	require.Len(t, contract.Advisors, 1)
	assert.Equal(t, "carol@x.com", contract.Advisors[0].Email)
}

func TestUpdateContract_ReplacesAdvisorSet(t *testing.T) {
	contractSvc, personSvc := newContractService(t)
	ctx := context.Background()

	seedPerson(t, personSvc, "Alice", "alice@x.com", "client")
	seedPerson(t, personSvc, "Bob", "bob@x.com", "advisor")
	seedPerson(t, personSvc, "Carol", "carol@x.com", "advisor")
	seedPerson(t, personSvc, "Eve", "eve@x.com", "advisor")

	contract, err := contractSvc.CreateContract(ctx, dto.CreateContractRequest{
		ReferenceNumber:    "REF-1",
		Institution:        "CSOB",
		ClientEmail:        "alice@x.com",
		AdministratorEmail: "bob@x.com",
		AdvisorEmails:      []string{"carol@x.com", "eve@x.com"},
		ContractDate:       "2024-01-01",
		ValidityDate:       "2030-06-01",
	})
	require.NoError(t, err)
	require.Len(t, contract.Advisors, 2)

	// Updating with an empty list removes every co-advisor association.
	err = contractSvc.UpdateContract(ctx, contract.ID, dto.CreateContractRequest{
		ReferenceNumber:    "REF-1",
		Institution:        "CSOB",
		ClientEmail:        "alice@x.com",
		AdministratorEmail: "bob@x.com",
		AdvisorEmails:      []string{},
		ContractDate:       "2024-01-01",
		ValidityDate:       "2030-06-01",
	})
	require.NoError(t, err)

	updated, err := contractSvc.GetContract(ctx, contract.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Advisors)
}

func TestUpdateContract_NotFound(t *testing.T) {
	contractSvc, personSvc := newContractService(t)
	ctx := context.Background()

	seedPerson(t, personSvc, "Alice", "alice@x.com", "client")
	seedPerson(t, personSvc, "Bob", "bob@x.com", "advisor")

	err := contractSvc.UpdateContract(ctx, 9999, dto.CreateContractRequest{
		ReferenceNumber:    "REF-1",
		Institution:        "CSOB",
		ClientEmail:        "alice@x.com",
		AdministratorEmail: "bob@x.com",
		ContractDate:       "2024-01-01",
		ValidityDate:       "2030-06-01",
	})
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateContract_PermitsValidityBeforeContractDate(t *testing.T) {
	contractSvc, personSvc := newContractService(t)
	ctx := context.Background()

	seedPerson(t, personSvc, "Alice", "alice@x.com", "client")
	seedPerson(t, personSvc, "Bob", "bob@x.com", "advisor")

	contract, err := contractSvc.CreateContract(ctx, dto.CreateContractRequest{
		ReferenceNumber:    "REF-1",
		Institution:        "CSOB",
		ClientEmail:        "alice@x.com",
		AdministratorEmail: "bob@x.com",
		ContractDate:       "2024-06-01",
		ValidityDate:       "2030-06-01",
	})
	require.NoError(t, err)

	// Date ordering is not validated at this layer; the UI is the only
	// place that warns about it.
	err = contractSvc.UpdateContract(ctx, contract.ID, dto.CreateContractRequest{
		ReferenceNumber:    "REF-1",
		Institution:        "CSOB",
		ClientEmail:        "alice@x.com",
		AdministratorEmail: "bob@x.com",
		ContractDate:       "2024-06-01",
		ValidityDate:       "2024-01-01",
	})
	require.NoError(t, err)
}

func TestContract_TerminationDateMakesInactive(t *testing.T) {
	contractSvc, personSvc := newContractService(t)
	ctx := context.Background()

	seedPerson(t, personSvc, "Alice", "alice@x.com", "client")
	seedPerson(t, personSvc, "Bob", "bob@x.com", "advisor")

	contract, err := contractSvc.CreateContract(ctx, dto.CreateContractRequest{
		ReferenceNumber:    "REF-1",
		Institution:        "CSOB",
		ClientEmail:        "alice@x.com",
		AdministratorEmail: "bob@x.com",
		ContractDate:       "2024-01-01",
		ValidityDate:       "2099-01-01",
		TerminationDate:    "2024-12-31",
	})
	require.NoError(t, err)

	require.NotNil(t, contract.TerminationDate)
	assert.Equal(t, "2024-12-31", contract.TerminationDate.String())
	assert.False(t, contract.IsActive)
}

func TestListRecentContracts(t *testing.T) {
	contractSvc, personSvc := newContractService(t)
	ctx := context.Background()

	seedPerson(t, personSvc, "Alice", "alice@x.com", "client")
	seedPerson(t, personSvc, "Bob", "bob@x.com", "advisor")

	dates := []string{"2024-01-01", "2024-03-01", "2024-02-01"}
	for i, date := range dates {
		_, err := contractSvc.CreateContract(ctx, dto.CreateContractRequest{
			ReferenceNumber:    "REF-" + string(rune('1'+i)),
			Institution:        "CSOB",
			ClientEmail:        "alice@x.com",
			AdministratorEmail: "bob@x.com",
			ContractDate:       date,
			ValidityDate:       "2030-06-01",
		})
		require.NoError(t, err)
	}

	recent, err := contractSvc.ListRecentContracts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2024-03-01", recent[0].ContractDate.String())
	assert.Equal(t, "2024-02-01", recent[1].ContractDate.String())

	// A non-positive limit falls back to the default of ten.
	all, err := contractSvc.ListRecentContracts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestGetStats(t *testing.T) {
	contractSvc, personSvc := newContractService(t)
	ctx := context.Background()

	// 4 client-capable, 3 advisor-capable; the "both" person counts twice.
	seedPerson(t, personSvc, "Alice", "alice@x.com", "client")
	seedPerson(t, personSvc, "Dan", "dan@x.com", "client")
	seedPerson(t, personSvc, "Fay", "fay@x.com", "client")
	seedPerson(t, personSvc, "Petr", "petr@x.com", "both")
	seedPerson(t, personSvc, "Bob", "bob@x.com", "advisor")
	seedPerson(t, personSvc, "Carol", "carol@x.com", "advisor")

	for i := 0; i < 5; i++ {
		_, err := contractSvc.CreateContract(ctx, dto.CreateContractRequest{
			ReferenceNumber:    "REF-" + string(rune('1'+i)),
			Institution:        "CSOB",
			ClientEmail:        "alice@x.com",
			AdministratorEmail: "bob@x.com",
			ContractDate:       "2024-01-01",
			ValidityDate:       "2030-06-01",
		})
		require.NoError(t, err)
	}

	stats, err := contractSvc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.ContractCount)
	assert.Equal(t, int64(4), stats.ClientCount)
	assert.Equal(t, int64(3), stats.AdvisorCount)
}

func TestDeleteContract_NotFound(t *testing.T) {
	contractSvc, _ := newContractService(t)
	err := contractSvc.DeleteContract(context.Background(), 8888)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

package service

import (
	"testing"

	"crm/internal/apperr"
	"crm/internal/authz"
	"crm/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContractCopiesClientContact(t *testing.T) {
	env := newTestEnv(t)
	client := env.client(t, env.commercial, "ada@engines.test")

	contract := env.contract(t, client, true)
	require.NotNil(t, contract.CommercialContactID)
	assert.Equal(t, env.commercial.ID, *contract.CommercialContactID)
	assert.Equal(t, client.ID, contract.Client.ID)
	assert.Contains(t, env.publisher.types(), queue.ContractSigned)

	_, err := env.svc.CreateContract(env.ctx, env.commercial, ContractInput{ClientID: client.ID, TotalAmount: 1})
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	_, err = env.svc.CreateContract(env.ctx, env.gestion, ContractInput{ClientID: 404, TotalAmount: 1})
	assert.EqualError(t, err, "Client not found")
}

func TestContractAmountValidation(t *testing.T) {
	env := newTestEnv(t)
	client := env.client(t, env.commercial, "ada@engines.test")

	tests := []struct {
		name      string
		total     float64
		remaining float64
	}{
		{name: "negative total", total: -1, remaining: 0},
		{name: "negative remaining", total: 10, remaining: -1},
		{name: "remaining above total", total: 10, remaining: 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.CreateContract(env.ctx, env.gestion, ContractInput{
				ClientID: client.ID, TotalAmount: tt.total, RemainingAmount: tt.remaining,
			})
			assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
		})
	}
}

func TestListContractsFilters(t *testing.T) {
	env := newTestEnv(t)
	client := env.client(t, env.commercial, "ada@engines.test")
	signed := env.contract(t, client, true)
	unsigned := env.contract(t, client, false)
	paid, err := env.svc.CreateContract(env.ctx, env.gestion, ContractInput{
		ClientID: client.ID, TotalAmount: 50, RemainingAmount: 0, Signed: true,
	})
	require.NoError(t, err)

	ids := func(filter ContractFilter) []uint {
		contracts, err := env.svc.ListContracts(env.ctx, env.gestion, filter)
		require.NoError(t, err)
		out := make([]uint, 0, len(contracts))
		for _, c := range contracts {
			out = append(out, c.ID)
		}
		return out
	}

	assert.Equal(t, []uint{signed.ID, unsigned.ID, paid.ID}, ids(ContractFilter{}))
	assert.Equal(t, []uint{signed.ID, paid.ID}, ids(ContractFilter{Status: "signed"}))
	assert.Equal(t, []uint{unsigned.ID}, ids(ContractFilter{Status: "Not Signed"}))
	assert.Equal(t, []uint{paid.ID}, ids(ContractFilter{Remain: "paid"}))
	assert.Equal(t, []uint{signed.ID}, ids(ContractFilter{Status: "signed", Remain: "rest to pay"}))

	_, err = env.svc.ListContracts(env.ctx, env.gestion, ContractFilter{Status: "maybe"})
	assert.EqualError(t, err, "Invalid status value")
	_, err = env.svc.ListContracts(env.ctx, env.gestion, ContractFilter{Remain: "some"})
	assert.EqualError(t, err, "Invalid remain value")

	_, err = env.svc.ListContracts(env.ctx, env.commercial, ContractFilter{})
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)
}

func TestUpdateContractByOwningCommercial(t *testing.T) {
	env := newTestEnv(t)
	client := env.client(t, env.commercial, "ada@engines.test")
	contract := env.contract(t, client, false)

	// commercial holds no contract permission but follows the contract
	updated, err := env.svc.UpdateContract(env.ctx, env.commercial, contract.ID, ContractChanges{Signed: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Signed)
	assert.Contains(t, env.publisher.types(), queue.ContractSigned)

	_, err = env.svc.UpdateContract(env.ctx, env.commercial, contract.ID, ContractChanges{RemainingAmount: ptr(5000.0)})
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	_, err = env.svc.UpdateContract(env.ctx, env.support, contract.ID, ContractChanges{Signed: ptr(false)})
	assert.ErrorIs(t, err, authz.ErrNotOwner)
}

func TestUpdateContractMovesContactWithClient(t *testing.T) {
	env := newTestEnv(t)
	other := env.user(t, "Com2", authz.RoleCommercial)
	first := env.client(t, env.commercial, "a@engines.test")
	second := env.client(t, other, "b@engines.test")
	contract := env.contract(t, first, false)

	updated, err := env.svc.UpdateContract(env.ctx, env.gestion, contract.ID, ContractChanges{ClientID: &second.ID})
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.ClientID)
	require.NotNil(t, updated.CommercialContactID)
	assert.Equal(t, other.ID, *updated.CommercialContactID)
}

func TestDeleteContract(t *testing.T) {
	env := newTestEnv(t)
	client := env.client(t, env.commercial, "ada@engines.test")
	contract := env.contract(t, client, true)

	err := env.svc.DeleteContract(env.ctx, env.gestion, contract.ID)
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	_, err = env.svc.CreateEvent(env.ctx, env.commercial, EventInput{
		Name: "Launch", ContractID: contract.ID, Start: "2024-04-01", End: "2024-04-02",
	})
	require.NoError(t, err)
	err = env.svc.DeleteContract(env.ctx, env.admin, contract.ID)
	assert.EqualError(t, err, "Delete the event of this contract first")

	spare := env.contract(t, client, false)
	require.NoError(t, env.svc.DeleteContract(env.ctx, env.commercial, spare.ID))
	_, err = env.svc.GetContract(env.ctx, env.admin, spare.ID)
	assert.EqualError(t, err, "Contract not found")
}

func TestOwnershipDoesNotGrantGetContract(t *testing.T) {
	env := newTestEnv(t)
	client := env.client(t, env.commercial, "ada@engines.test")
	contract := env.contract(t, client, false)
	require.True(t, env.commercial.Is(contract.CommercialContactID))
	require.False(t, authz.HasPermission(env.commercial, authz.GetContract))

	_, err := env.svc.GetContract(env.ctx, env.commercial, contract.ID)
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	editable, err := env.svc.ContractForUpdate(env.ctx, env.commercial, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.ID, editable.ID)

	other := env.user(t, "Com2", authz.RoleCommercial)
	_, err = env.svc.ContractForUpdate(env.ctx, other, contract.ID)
	assert.ErrorIs(t, err, authz.ErrNotOwner)
}

func TestMissingRecordIsDeniedWithoutPermission(t *testing.T) {
	env := newTestEnv(t)
	client := env.client(t, env.commercial, "ada@engines.test")
	contract := env.contract(t, client, false)

	tests := []struct {
		name string
		call func(id uint) error
	}{
		{name: "get contract", call: func(id uint) error {
			_, err := env.svc.GetContract(env.ctx, env.support, id)
			return err
		}},
		{name: "update contract", call: func(id uint) error {
			_, err := env.svc.UpdateContract(env.ctx, env.support, id, ContractChanges{Signed: ptr(true)})
			return err
		}},
		{name: "delete client", call: func(id uint) error {
			return env.svc.DeleteClient(env.ctx, env.support, id)
		}},
		{name: "delete event", call: func(id uint) error {
			return env.svc.DeleteEvent(env.ctx, env.commercial, id)
		}},
		{name: "update user", call: func(id uint) error {
			_, err := env.svc.UpdateUser(env.ctx, env.support, id, UserChanges{Name: ptr("Ghost")})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call(999)
			require.Error(t, err)
			assert.ErrorIs(t, err, authz.ErrPermissionDenied)
			assert.Equal(t, apperr.CodeAuthorization, apperr.CodeOf(err))
		})
	}

	existing := env.svc.DeleteClient(env.ctx, env.support, client.ID)
	missing := env.svc.DeleteClient(env.ctx, env.support, 999)
	assert.Equal(t, existing.Error(), missing.Error())

	_, err := env.svc.UpdateContract(env.ctx, env.gestion, 999, ContractChanges{Signed: ptr(true)})
	assert.EqualError(t, err, "Contract not found")
	_, err = env.svc.GetContract(env.ctx, env.gestion, contract.ID+100)
	assert.EqualError(t, err, "Contract not found")
}

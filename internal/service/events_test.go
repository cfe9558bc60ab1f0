package service

import (
	"testing"
	"time"

	"crm/internal/apperr"
	"crm/internal/authz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{input: "2024-05-07", ok: true},
		{input: " 2024-05-07 ", ok: true},
		{input: "2024-05-07 18:30", ok: true},
		{input: "07/05/2024"},
		{input: "2024-13-01"},
		{input: ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2024, got.Year())
			assert.Equal(t, time.May, got.Month())
		})
	}
}

func TestCreateEventRules(t *testing.T) {
	env := newTestEnv(t)
	client := env.client(t, env.commercial, "ada@engines.test")
	unsigned := env.contract(t, client, false)
	signed := env.contract(t, client, true)
	other := env.user(t, "Com2", authz.RoleCommercial)

	input := func(contractID uint) EventInput {
		return EventInput{
			Name: "Launch", ContractID: contractID, Location: "Paris", Attendees: 40,
			Start: "2024-04-01", End: "2024-04-02",
		}
	}

	_, err := env.svc.CreateEvent(env.ctx, env.gestion, input(signed.ID))
	assert.EqualError(t, err, "You don't have the permissions required")

	_, err = env.svc.CreateEvent(env.ctx, env.commercial, input(999))
	assert.EqualError(t, err, "Contract not found")

	_, err = env.svc.CreateEvent(env.ctx, env.commercial, input(unsigned.ID))
	assert.EqualError(t, err, "Contract must be sign to create an event")

	_, err = env.svc.CreateEvent(env.ctx, other, input(signed.ID))
	assert.ErrorIs(t, err, authz.ErrNotOwner)

	bad := input(signed.ID)
	bad.End = "2024-03-01"
	_, err = env.svc.CreateEvent(env.ctx, env.commercial, bad)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	bad = input(signed.ID)
	bad.Start = "01/04/2024"
	_, err = env.svc.CreateEvent(env.ctx, env.commercial, bad)
	assert.ErrorIs(t, err, ErrInvalidDate)

	bad = input(signed.ID)
	bad.SupportContactID = &env.gestion.ID
	_, err = env.svc.CreateEvent(env.ctx, env.commercial, bad)
	assert.EqualError(t, err, "Only a support user can be assigned")

	bad.SupportContactID = ptr(uint(999))
	_, err = env.svc.CreateEvent(env.ctx, env.commercial, bad)
	assert.EqualError(t, err, "User not found")

	ok := input(signed.ID)
	ok.SupportContactID = &env.support.ID
	event, err := env.svc.CreateEvent(env.ctx, env.commercial, ok)
	require.NoError(t, err)
	assert.Equal(t, signed.ID, event.ContractID)
	assert.Equal(t, 40, event.Attendees)
	require.NotNil(t, event.SupportContact)
	assert.Equal(t, "Sup", event.SupportContact.Name)

	_, err = env.svc.CreateEvent(env.ctx, env.commercial, input(signed.ID))
	assert.EqualError(t, err, "An event already exist for this contract.")
}

func TestEventOwnershipOverride(t *testing.T) {
	env := newTestEnv(t)
	client := env.client(t, env.commercial, "ada@engines.test")
	contract := env.contract(t, client, true)
	event, err := env.svc.CreateEvent(env.ctx, env.commercial, EventInput{
		Name: "Launch", ContractID: contract.ID, SupportContactID: &env.support.ID,
		Start: "2024-04-01", End: "2024-04-02",
	})
	require.NoError(t, err)
	otherSupport := env.user(t, "Sup2", authz.RoleSupport)

	notes := "Bring badges"
	updated, err := env.svc.UpdateEvent(env.ctx, otherSupport, event.ID, EventChanges{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)

	err = env.svc.DeleteEvent(env.ctx, otherSupport, event.ID)
	assert.ErrorIs(t, err, authz.ErrNotOwner)

	_, err = env.svc.UpdateEvent(env.ctx, env.commercial, event.ID, EventChanges{Notes: &notes})
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	require.NoError(t, env.svc.DeleteEvent(env.ctx, env.support, event.ID))
	_, err = env.svc.GetEvent(env.ctx, env.admin, event.ID)
	assert.EqualError(t, err, "Event not found")
}

func TestUpdateEventSchedule(t *testing.T) {
	env := newTestEnv(t)
	client := env.client(t, env.commercial, "ada@engines.test")
	contract := env.contract(t, client, true)
	event, err := env.svc.CreateEvent(env.ctx, env.commercial, EventInput{
		Name: "Launch", ContractID: contract.ID, Start: "2024-04-01", End: "2024-04-03",
	})
	require.NoError(t, err)

	before := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	_, err = env.svc.UpdateEvent(env.ctx, env.admin, event.ID, EventChanges{End: &before})
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	_, err = env.svc.UpdateEvent(env.ctx, env.admin, event.ID, EventChanges{SupportContactID: &env.commercial.ID})
	assert.ErrorIs(t, err, ErrNotSupportUser)

	updated, err := env.svc.UpdateEvent(env.ctx, env.admin, event.ID, EventChanges{
		SupportContactID: &env.support.ID,
		Attendees:        ptr(12),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.SupportContactID)
	assert.Equal(t, env.support.ID, *updated.SupportContactID)
	assert.Equal(t, 12, updated.Attendees)
}

func TestListEventsFilters(t *testing.T) {
	env := newTestEnv(t)
	client := env.client(t, env.commercial, "ada@engines.test")
	first := env.contract(t, client, true)
	second := env.contract(t, client, true)

	assigned, err := env.svc.CreateEvent(env.ctx, env.commercial, EventInput{
		Name: "Gala", ContractID: first.ID, SupportContactID: &env.support.ID,
		Start: "2024-04-01", End: "2024-04-01",
	})
	require.NoError(t, err)
	open, err := env.svc.CreateEvent(env.ctx, env.commercial, EventInput{
		Name: "Fair", ContractID: second.ID, Start: "2024-05-01", End: "2024-05-02",
	})
	require.NoError(t, err)

	events, err := env.svc.ListEvents(env.ctx, env.support, EventFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = env.svc.ListEvents(env.ctx, env.support, EventFilter{Mine: true})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, assigned.ID, events[0].ID)

	events, err = env.svc.ListEvents(env.ctx, env.admin, EventFilter{SupportName: "sup"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, assigned.ID, events[0].ID)

	events, err = env.svc.ListEvents(env.ctx, env.admin, EventFilter{Unassigned: true})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, open.ID, events[0].ID)

	_, err = env.svc.ListEvents(env.ctx, env.commercial, EventFilter{})
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)
}

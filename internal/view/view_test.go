package view

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"crm/internal/apperr"
	"crm/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestFormatRecords(t *testing.T) {
	contact := &entity.DbUser{ID: 2, Name: "Com", Email: "com@epic.test", Role: &entity.DbRole{Name: "Commercial"}}
	client := &entity.DbClient{
		ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@engines.test", Phone: "0102",
		CompanyName: "Engines", CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), EpicEventsContact: contact,
	}
	contract := &entity.DbContract{ID: 7, Client: client, TotalAmount: 1000, RemainingAmount: 250.5, Signed: true}
	event := &entity.DbEvent{
		ID: 3, Name: "Gala", ContractID: 7, Location: "Paris", Attendees: 80,
		StartDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "User n°2: Name: Com, Email: com@epic.test, Role: Commercial", User(contact))
	assert.Equal(t,
		"Client n°1: Name: Ada Lovelace, Email: ada@engines.test, Phone: 0102, Company name: Engines, Created at: 2024-03-01, Last contact: -, Contact: Com",
		Client(client))
	assert.Equal(t,
		"Contract n°7: Client: Ada Lovelace, Total amount: 1000.00, Remaining amount: 250.50, Signed: Yes, Created at: -, Contact: none",
		Contract(contract))
	assert.Equal(t,
		"Event n°3: Name: Gala, Contract n°7, Location: Paris, Attendees: 80, Notes: , Start date: 2024-04-01, End date: 2024-04-02, Support: none",
		Event(event))
}

func TestMessages(t *testing.T) {
	denied := apperr.New(apperr.CodeAuthorization, "You don't have the permissions required")
	owner := apperr.New(apperr.CodeAuthorization, "Unauthorized")

	assert.Nil(t, Messages(nil))
	assert.Equal(t, []string{"You don't have the permissions required", "Unauthorized"}, Messages(errors.Join(denied, owner)))
	assert.Equal(t, []string{"Error: boom"}, Messages(apperr.Internal(fmt.Errorf("boom"))))
	assert.Equal(t, []string{"Error: disk full"}, Messages(errors.New("disk full")))
}

func TestPrinterPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Success("Welcome %s", "Com")
	p.Error(apperr.NotFound("Client"))
	assert.Equal(t, "Welcome Com\nClient not found\n", buf.String())
}

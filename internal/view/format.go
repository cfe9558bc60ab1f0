package view

import (
	"crm/internal/apperr"
	"crm/internal/entity"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func contactName(u *entity.DbUser) string {
	if u == nil {
		return "none"
	}
	return u.Name
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// User renders a user on one line.
func User(u *entity.DbUser) string {
	return fmt.Sprintf("User n°%d: Name: %s, Email: %s, Role: %s", u.ID, u.Name, u.Email, u.RoleName())
}

// Client renders a client on one line.
func Client(c *entity.DbClient) string {
	return fmt.Sprintf("Client n°%d: Name: %s, Email: %s, Phone: %s, Company name: %s, Created at: %s, Last contact: %s, Contact: %s",
		c.ID, c.FullName(), c.Email, c.Phone, c.CompanyName,
		formatDate(c.CreatedAt), formatDate(c.LastContact), contactName(c.EpicEventsContact))
}

// Contract renders a contract on one line.
func Contract(c *entity.DbContract) string {
	return fmt.Sprintf("Contract n°%d: Client: %s, Total amount: %s, Remaining amount: %s, Signed: %s, Created at: %s, Contact: %s",
		c.ID, c.Client.FullName(), formatAmount(c.TotalAmount), formatAmount(c.RemainingAmount),
		yesNo(c.Signed), formatDate(c.CreatedAt), contactName(c.CommercialContact))
}

// Event renders an event on one line.
func Event(e *entity.DbEvent) string {
	return fmt.Sprintf("Event n°%d: Name: %s, Contract n°%d, Location: %s, Attendees: %d, Notes: %s, Start date: %s, End date: %s, Support: %s",
		e.ID, e.Name, e.ContractID, e.Location, e.Attendees, e.Notes,
		formatDate(e.StartDate), formatDate(e.EndDate), contactName(e.SupportContact))
}

// Messages flattens joined errors into their user-facing lines.
// Internal errors are prefixed with "Error: ".
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, Messages(e)...)
		}
		return out
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Code != apperr.CodeInternal {
		return []string{appErr.Error()}
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unexpected failure"
	}
	return []string{"Error: " + msg}
}

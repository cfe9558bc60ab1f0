package entity

import (
	"fmt"
	"strings"
	"time"
)

// DbContract binds a client to an amount to be paid.
type DbContract struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	ClientID            uint      `gorm:"column:client_id;index;not null" json:"client_id"`
	Client              *DbClient `gorm:"foreignKey:ClientID" json:"-"`
	CommercialContactID *uint     `gorm:"column:commercial_contact_id;index" json:"commercial_contact_id"`
	CommercialContact   *DbUser   `gorm:"foreignKey:CommercialContactID" json:"-"`
	TotalAmount         float64   `gorm:"column:total_amount;type:decimal(12,2);not null" json:"total_amount"`
	RemainingAmount     float64   `gorm:"column:remaining_amount;type:decimal(12,2);not null" json:"remaining_amount"`
	Signed              bool      `gorm:"column:signed;not null;default:false" json:"signed"`
	CreatedAt           time.Time `json:"created_at"`
}

func (DbContract) TableName() string {
	return "contracts"
}

// OwnerID returns the designated contact used for ownership checks.
func (c *DbContract) OwnerID() *uint {
	if c == nil {
		return nil
	}
	return c.CommercialContactID
}

// ContractStatus filters contracts on their signature state.
type ContractStatus int

const (
	StatusAny ContractStatus = iota
	StatusSigned
	StatusNotSigned
)

// ParseContractStatus accepts "", "signed" and "not signed" (case insensitive).
func ParseContractStatus(value string) (ContractStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return StatusAny, nil
	case "signed":
		return StatusSigned, nil
	case "not signed", "not-signed", "unsigned":
		return StatusNotSigned, nil
	default:
		return StatusAny, fmt.Errorf("Invalid status value")
	}
}

func (s ContractStatus) String() string {
	switch s {
	case StatusSigned:
		return "signed"
	case StatusNotSigned:
		return "not signed"
	default:
		return "all"
	}
}

// Match reports whether c satisfies the filter.
func (s ContractStatus) Match(c *DbContract) bool {
	switch s {
	case StatusSigned:
		return c.Signed
	case StatusNotSigned:
		return !c.Signed
	default:
		return true
	}
}

// PaymentState filters contracts on the amount left to pay.
type PaymentState int

const (
	PaymentAny PaymentState = iota
	PaymentOutstanding
	PaymentPaid
)

// ParsePaymentState accepts "", "rest to pay" and "paid" (case insensitive).
func ParsePaymentState(value string) (PaymentState, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return PaymentAny, nil
	case "rest to pay", "rest-to-pay", "outstanding":
		return PaymentOutstanding, nil
	case "paid":
		return PaymentPaid, nil
	default:
		return PaymentAny, fmt.Errorf("Invalid remain value")
	}
}

func (p PaymentState) String() string {
	switch p {
	case PaymentOutstanding:
		return "rest to pay"
	case PaymentPaid:
		return "paid"
	default:
		return "all"
	}
}

// Match reports whether c satisfies the filter.
func (p PaymentState) Match(c *DbContract) bool {
	switch p {
	case PaymentOutstanding:
		return c.RemainingAmount > 0
	case PaymentPaid:
		return c.RemainingAmount == 0
	default:
		return true
	}
}

// ContractQuery filters the contract listing. Status and Payment combine with AND.
type ContractQuery struct {
	Status    ContractStatus
	Payment   PaymentState
	ContactID *uint
	ClientID  *uint
}

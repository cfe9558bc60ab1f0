package entity

import "time"

// DbEvent is the single event organised for a signed contract.
type DbEvent struct {
	ID               uint        `gorm:"primarykey" json:"id"`
	Name             string      `gorm:"column:name;type:varchar(255);not null" json:"name"`
	ContractID       uint        `gorm:"column:contract_id;index;not null" json:"contract_id"`
	Contract         *DbContract `gorm:"foreignKey:ContractID" json:"-"`
	StartDate        time.Time   `gorm:"column:start_date;not null" json:"start_date"`
	EndDate          time.Time   `gorm:"column:end_date;not null" json:"end_date"`
	SupportContactID *uint       `gorm:"column:support_contact_id;index" json:"support_contact_id"`
	SupportContact   *DbUser     `gorm:"foreignKey:SupportContactID" json:"-"`
	Location         string      `gorm:"column:location;type:varchar(255)" json:"location"`
	Attendees        int         `gorm:"column:attendees;not null;default:0" json:"attendees"`
	Notes            string      `gorm:"column:notes;type:text" json:"notes"`
}

func (DbEvent) TableName() string {
	return "events"
}

// OwnerID returns the designated contact used for ownership checks.
func (e *DbEvent) OwnerID() *uint {
	if e == nil {
		return nil
	}
	return e.SupportContactID
}

// EventQuery filters the event listing.
type EventQuery struct {
	SupportName string
	Unassigned  bool
	SupportID   *uint
}

package entity

import "time"

// DbClient is a customer followed by a commercial contact.
type DbClient struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	FirstName           string    `gorm:"column:first_name;type:varchar(255);not null" json:"first_name"`
	LastName            string    `gorm:"column:last_name;type:varchar(255);not null" json:"last_name"`
	Email               string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone               string    `gorm:"column:phone;type:varchar(32)" json:"phone"`
	CompanyName         string    `gorm:"column:company_name;type:varchar(255)" json:"company_name"`
	CreatedAt           time.Time `json:"created_at"`
	LastContact         time.Time `gorm:"column:last_contact" json:"last_contact"`
	EpicEventsContactID *uint     `gorm:"column:epic_events_contact_id;index" json:"epic_events_contact_id"`
	EpicEventsContact   *DbUser   `gorm:"foreignKey:EpicEventsContactID" json:"-"`
}

func (DbClient) TableName() string {
	return "clients"
}

// OwnerID returns the designated contact used for ownership checks.
func (c *DbClient) OwnerID() *uint {
	if c == nil {
		return nil
	}
	return c.EpicEventsContactID
}

// FullName joins first and last name.
func (c *DbClient) FullName() string {
	if c == nil {
		return ""
	}
	return c.FirstName + " " + c.LastName
}

// ClientQuery filters the client listing.
type ClientQuery struct {
	ContactID *uint
}

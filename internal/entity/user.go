package entity

import "time"

// DbUser represents a persisted user account.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	RoleID       uint      `gorm:"column:role_id;index;not null" json:"role_id"`
	Role         *DbRole   `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// RoleName returns the name of the loaded role, or "" when the role was not preloaded.
func (u *DbUser) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// Is reports whether the user's identity equals id.
func (u *DbUser) Is(id *uint) bool {
	return u != nil && id != nil && u.ID != 0 && *id == u.ID
}

// UserQuery filters the user listing.
type UserQuery struct {
	RoleName string
}

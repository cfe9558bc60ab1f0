package entity

import "time"

// UserUpdates 用户更新字段
type UserUpdates struct {
	Name         *string
	Email        *string
	PasswordHash *string
	RoleID       *uint
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.RoleID != nil {
		updates["role_id"] = *u.RoleID
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ClientUpdates 客户更新字段
type ClientUpdates struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	CompanyName *string
	LastContact *time.Time
}

func (u ClientUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.FirstName != nil {
		updates["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		updates["last_name"] = *u.LastName
	}
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.Phone != nil {
		updates["phone"] = *u.Phone
	}
	if u.CompanyName != nil {
		updates["company_name"] = *u.CompanyName
	}
	if u.LastContact != nil {
		updates["last_contact"] = *u.LastContact
	}
	return updates
}

func (u ClientUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ContractUpdates 合同更新字段
type ContractUpdates struct {
	ClientID            *uint
	CommercialContactID *uint
	TotalAmount         *float64
	RemainingAmount     *float64
	Signed              *bool
}

func (u ContractUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.ClientID != nil {
		updates["client_id"] = *u.ClientID
	}
	if u.CommercialContactID != nil {
		updates["commercial_contact_id"] = *u.CommercialContactID
	}
	if u.TotalAmount != nil {
		updates["total_amount"] = *u.TotalAmount
	}
	if u.RemainingAmount != nil {
		updates["remaining_amount"] = *u.RemainingAmount
	}
	if u.Signed != nil {
		updates["signed"] = *u.Signed
	}
	return updates
}

func (u ContractUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// EventUpdates 活动更新字段
type EventUpdates struct {
	Name             *string
	StartDate        *time.Time
	EndDate          *time.Time
	SupportContactID *uint
	Location         *string
	Attendees        *int
	Notes            *string
}

func (u EventUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.StartDate != nil {
		updates["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		updates["end_date"] = *u.EndDate
	}
	if u.SupportContactID != nil {
		updates["support_contact_id"] = *u.SupportContactID
	}
	if u.Location != nil {
		updates["location"] = *u.Location
	}
	if u.Attendees != nil {
		updates["attendees"] = *u.Attendees
	}
	if u.Notes != nil {
		updates["notes"] = *u.Notes
	}
	return updates
}

func (u EventUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

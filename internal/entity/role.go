package entity

// DbRole is one of the fixed user roles.
type DbRole struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"column:name;type:varchar(64);uniqueIndex;not null" json:"name"`
	Permissions []DbPermission `gorm:"many2many:role_permissions;joinForeignKey:RoleID;joinReferences:PermissionID" json:"permissions,omitempty"`
}

func (DbRole) TableName() string {
	return "roles"
}

// DbPermission is a named "<action>-<resource>" capability.
type DbPermission struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"column:name;type:varchar(64);uniqueIndex;not null" json:"name"`
}

func (DbPermission) TableName() string {
	return "permissions"
}

// DbRolePermission joins roles to permissions. The composite key keeps each pair unique.
type DbRolePermission struct {
	RoleID       uint `gorm:"column:role_id;primaryKey;autoIncrement:false"`
	PermissionID uint `gorm:"column:permission_id;primaryKey;autoIncrement:false"`
}

func (DbRolePermission) TableName() string {
	return "role_permissions"
}

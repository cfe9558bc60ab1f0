package model

import (
	"context"
	"crm/internal/entity"
)

// Repository 定义数据库操作接口
type Repository interface {
	// Transaction runs fn against a repository bound to one database transaction.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// 角色与权限
	EnsureRole(ctx context.Context, name string) (*entity.DbRole, error)
	EnsurePermission(ctx context.Context, name string) (*entity.DbPermission, error)
	EnsureRolePermission(ctx context.Context, roleID, permissionID uint) error
	GetRoleByName(ctx context.Context, name string) (*entity.DbRole, error)
	ListRoles(ctx context.Context) ([]entity.DbRole, error)
	CountPermissions(ctx context.Context) (int64, error)
	CountRolePermissions(ctx context.Context) (int64, error)

	// 用户管理
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, error)
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)

	// 客户
	CreateClient(ctx context.Context, client *entity.DbClient) error
	UpdateClient(ctx context.Context, id uint, updates entity.ClientUpdates) error
	GetClient(ctx context.Context, id uint) (*entity.DbClient, error)
	ListClients(ctx context.Context, params *entity.ClientQuery) ([]entity.DbClient, error)
	DeleteClient(ctx context.Context, id uint) error

	// 合同
	CreateContract(ctx context.Context, contract *entity.DbContract) error
	UpdateContract(ctx context.Context, id uint, updates entity.ContractUpdates) error
	GetContract(ctx context.Context, id uint) (*entity.DbContract, error)
	ListContracts(ctx context.Context, params *entity.ContractQuery) ([]entity.DbContract, error)
	DeleteContract(ctx context.Context, id uint) error

	// 活动
	CreateEvent(ctx context.Context, event *entity.DbEvent) error
	UpdateEvent(ctx context.Context, id uint, updates entity.EventUpdates) error
	GetEvent(ctx context.Context, id uint) (*entity.DbEvent, error)
	ListEvents(ctx context.Context, params *entity.EventQuery) ([]entity.DbEvent, error)
	DeleteEvent(ctx context.Context, id uint) error
	EventExistsForContract(ctx context.Context, contractID uint) (bool, error)
}

package directory

import "context"

type StoreAPI interface {
	ListUsersByRole(ctx context.Context, role string) ([]User, error)
	ListUsersByManager(ctx context.Context, managerID int64) ([]User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	CreateUser(ctx context.Context, user NewUser, passwordHash string) (User, error)
	// UpdateUser writes patch as given, links included; the service resolves
	// links before calling it.
	UpdateUser(ctx context.Context, id int64, patch UserPatch, passwordHash string) (User, error)
	DeleteUser(ctx context.Context, id int64) error
}

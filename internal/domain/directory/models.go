package directory

import (
	"time"

	"hrportal/internal/domain/auth"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Username  string    `json:"username"`
	Password  string    `json:"password,omitempty"`
	Role      string    `json:"role"`
	HRID      *int64    `json:"hrId,omitempty"`
	ManagerID *int64    `json:"managerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser is the candidate record submitted to create a user.
type NewUser struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	HRID      *int64 `json:"hrId,omitempty"`
	ManagerID *int64 `json:"managerId,omitempty"`
}

// UserPatch carries every editable field; partial patches are rejected. The
// links are the exception: a nil link keeps the stored one.
type UserPatch struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	HRID      *int64 `json:"hrId,omitempty"`
	ManagerID *int64 `json:"managerId,omitempty"`
}

// Scope is the endpoint family a record is reached through: managers live
// under /manager, everybody else under /user.
type Scope string

const (
	ScopeUser    Scope = "user"
	ScopeManager Scope = "manager"
)

func (s Scope) Allows(role string) bool {
	if s == ScopeManager {
		return role == auth.RoleManager
	}
	return role != auth.RoleManager
}

package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hrportal/internal/domain/auth"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) ListByRole(ctx context.Context, role string) ([]User, error) {
	return s.Store.ListUsersByRole(ctx, auth.NormalizeRole(role))
}

func (s *Service) ListByManager(ctx context.Context, managerID int64) ([]User, error) {
	return s.Store.ListUsersByManager(ctx, managerID)
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.Store.GetUser(ctx, id)
}

// Create stores a new user after the caller has validated the payload with
// ValidateNewUser. The hr and manager links must point at users holding the
// matching role.
func (s *Service) Create(ctx context.Context, candidate NewUser) (User, error) {
	candidate = normalizeNewUser(candidate)
	if err := s.checkLink(ctx, candidate.HRID, auth.RoleHR, ErrInvalidHR); err != nil {
		return User{}, err
	}
	if err := s.checkLink(ctx, candidate.ManagerID, auth.RoleManager, ErrInvalidManager); err != nil {
		return User{}, err
	}

	hash, err := auth.HashPassword(candidate.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.Store.CreateUser(ctx, candidate, hash)
}

// Update replaces every editable field of a user reached through scope.
func (s *Service) Update(ctx context.Context, scope Scope, id int64, patch UserPatch) (User, error) {
	existing, err := s.Store.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}
	if !scope.Allows(existing.Role) {
		return User{}, ErrNotFound
	}

	patch = normalizePatch(patch)
	patch.HRID, patch.ManagerID, err = s.links(ctx, existing, patch)
	if err != nil {
		return User{}, err
	}
	if patch.Role != existing.Role {
		slog.Info("user role changed", "userId", id, "from", existing.Role, "to", patch.Role)
	}
	hash, err := auth.HashPassword(patch.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.Store.UpdateUser(ctx, id, patch, hash)
}

func (s *Service) Delete(ctx context.Context, scope Scope, id int64) error {
	existing, err := s.Store.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if !scope.Allows(existing.Role) {
		return ErrNotFound
	}
	return s.Store.DeleteUser(ctx, id)
}

// links resolves the hr and manager links a patched user ends up with. Links
// absent from the patch keep their stored value, and links the new role must
// not carry are cleared.
func (s *Service) links(ctx context.Context, existing User, patch UserPatch) (*int64, *int64, error) {
	hrID, managerID := existing.HRID, existing.ManagerID
	if patch.HRID != nil {
		hrID = patch.HRID
	}
	if patch.ManagerID != nil {
		managerID = patch.ManagerID
	}

	if existing.Role == auth.RoleHR && patch.Role != auth.RoleHR {
		linked, err := s.hasLinkedUsers(ctx, existing.ID)
		if err != nil {
			return nil, nil, err
		}
		if linked {
			return nil, nil, ErrHRInUse
		}
	}

	switch patch.Role {
	case auth.RoleHR:
		return nil, nil, nil
	case auth.RoleManager:
		managerID = nil
	case auth.RoleEmployee:
		if managerID == nil {
			return nil, nil, ErrManagerRequired
		}
		if *managerID == existing.ID {
			return nil, nil, ErrInvalidManager
		}
	}
	if hrID == nil {
		return nil, nil, ErrHRRequired
	}
	if *hrID == existing.ID {
		return nil, nil, ErrInvalidHR
	}
	if err := s.checkLink(ctx, hrID, auth.RoleHR, ErrInvalidHR); err != nil {
		return nil, nil, err
	}
	if err := s.checkLink(ctx, managerID, auth.RoleManager, ErrInvalidManager); err != nil {
		return nil, nil, err
	}
	return hrID, managerID, nil
}

// hasLinkedUsers reports whether any employee or manager names hrID as their HR.
func (s *Service) hasLinkedUsers(ctx context.Context, hrID int64) (bool, error) {
	for _, role := range []string{auth.RoleEmployee, auth.RoleManager} {
		users, err := s.Store.ListUsersByRole(ctx, role)
		if err != nil {
			return false, err
		}
		for _, u := range users {
			if u.HRID != nil && *u.HRID == hrID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *Service) checkLink(ctx context.Context, id *int64, role string, invalid error) error {
	if id == nil {
		return nil
	}
	linked, err := s.Store.GetUser(ctx, *id)
	if errors.Is(err, ErrNotFound) {
		return invalid
	}
	if err != nil {
		return err
	}
	if linked.Role != role {
		return invalid
	}
	return nil
}

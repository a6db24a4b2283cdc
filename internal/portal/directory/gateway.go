// Package directory is the portal's view of user records: a gateway over the
// /user and /manager endpoints plus per-role roster screens.
package directory

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"hrportal/internal/domain/auth"
	dirmodel "hrportal/internal/domain/directory"
	"hrportal/internal/portal/remote"
)

type (
	// Draft is a user about to be created.
	Draft = dirmodel.NewUser
	// Editable holds every field an edit must resend.
	Editable = dirmodel.UserPatch
)

type Gateway struct {
	client *remote.Client
}

func NewGateway(client *remote.Client) *Gateway {
	return &Gateway{client: client}
}

// family is the endpoint prefix records of role live under.
func family(role string) string {
	if auth.NormalizeRole(role) == auth.RoleManager {
		return "/manager"
	}
	return "/user"
}

func (g *Gateway) ListByRole(ctx context.Context, role string) ([]dirmodel.User, error) {
	role = auth.NormalizeRole(role)
	var users []dirmodel.User
	var err error
	if role == auth.RoleManager {
		err = g.client.Get(ctx, "/manager/all", nil, &users)
	} else {
		err = g.client.Get(ctx, "/user/all", url.Values{"role": {role}}, &users)
	}
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (g *Gateway) ListByManager(ctx context.Context, managerID int64) ([]dirmodel.User, error) {
	var users []dirmodel.User
	if err := g.client.Get(ctx, "/user/byManager/"+strconv.FormatInt(managerID, 10), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create validates the draft locally and only then posts it.
func (g *Gateway) Create(ctx context.Context, draft Draft) (dirmodel.User, error) {
	if issues := dirmodel.ValidateNewUser(draft); len(issues) > 0 {
		return dirmodel.User{}, remote.NewValidationError(issues)
	}
	var created dirmodel.User
	if err := g.client.Post(ctx, family(draft.Role)+"/add", nil, draft, &created); err != nil {
		return dirmodel.User{}, err
	}
	return created, nil
}

// Update resends every editable field of id, reached through role's family.
func (g *Gateway) Update(ctx context.Context, role string, id int64, edit Editable) (dirmodel.User, error) {
	if issues := dirmodel.ValidatePatch(edit); len(issues) > 0 {
		return dirmodel.User{}, remote.NewValidationError(issues)
	}
	var updated dirmodel.User
	if err := g.client.Put(ctx, fmt.Sprintf("%s/edit/%d", family(role), id), edit, &updated); err != nil {
		return dirmodel.User{}, err
	}
	return updated, nil
}

// Remove deletes id. A missing id surfaces as a RemoteError wrapping
// remote.ErrNotFound.
func (g *Gateway) Remove(ctx context.Context, role string, id int64) error {
	return g.client.Delete(ctx, fmt.Sprintf("%s/delete/%d", family(role), id), nil)
}

// ValidateProfile checks the self-service profile form.
func ValidateProfile(p dirmodel.Profile) error {
	if issues := dirmodel.ValidateProfile(p); len(issues) > 0 {
		return remote.NewValidationError(issues)
	}
	return nil
}

// SaveProfile validates the profile form of user id, who holds role, and
// stores it through the regular edit route. Every save resends a password,
// so the form's password is required here.
func (g *Gateway) SaveProfile(ctx context.Context, role string, id int64, p dirmodel.Profile) (dirmodel.User, error) {
	issues := dirmodel.ValidateProfile(p)
	if p.NewPassword == "" {
		issues["newPassword"] = "Password is required to save your profile"
	}
	if len(issues) > 0 {
		return dirmodel.User{}, remote.NewValidationError(issues)
	}
	return g.Update(ctx, role, id, Editable{
		Name:     p.FullName,
		Email:    p.EmailAddress,
		Phone:    p.ContactNumber,
		Role:     auth.NormalizeRole(role),
		Username: p.UserName,
		Password: p.NewPassword,
	})
}

package directory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"hrportal/internal/domain/auth"
	dirmodel "hrportal/internal/domain/directory"
	"hrportal/internal/portal/editsession"
	"hrportal/internal/portal/remote"
)

// Roster is the list screen for one role. Its records are a mirror of the
// last fetch, adjusted locally by removals and committed edits.
type Roster struct {
	gw   *Gateway
	role string

	mu      sync.Mutex
	records []dirmodel.User
	alert   remote.Alert
	edit    *editsession.Session[dirmodel.User, Editable]
}

func (g *Gateway) Roster(role string) *Roster {
	r := &Roster{gw: g, role: auth.NormalizeRole(role)}
	r.edit = editsession.New(editsession.Binding[dirmodel.User, Editable]{
		List:     r,
		Snapshot: snapshotUser,
		Set:      setField,
		Validate: dirmodel.ValidatePatch,
		Save:     r.save,
	})
	return r
}

func (r *Roster) Role() string { return r.role }

// Refresh replaces the mirror. On failure the previous records stay visible.
func (r *Roster) Refresh(ctx context.Context) error {
	users, err := r.gw.ListByRole(ctx, r.role)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.alert = remote.Failure("Failed to fetch data", err)
		return err
	}
	r.records = users
	return nil
}

func (r *Roster) Records() []dirmodel.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dirmodel.User, len(r.records))
	for i, u := range r.records {
		out[i] = cloneUser(u)
	}
	return out
}

// Remove drops id from the mirror at once, then deletes it remotely. The
// record is not restored if the delete fails.
func (r *Roster) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	r.records = without(r.records, id)
	r.mu.Unlock()

	err := r.gw.Remove(ctx, r.role, id)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.alert = remote.Failure(fmt.Sprintf("Failed to delete %s", noun(r.role)), err)
		return err
	}
	r.alert = remote.Success(fmt.Sprintf("%s deleted successfully!", title(noun(r.role))))
	return nil
}

// Edit returns the inline edit session bound to this roster.
func (r *Roster) Edit() *editsession.Session[dirmodel.User, Editable] {
	return r.edit
}

func (r *Roster) Alert() remote.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.alert
}

func (r *Roster) Find(id int64) (dirmodel.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.records {
		if u.ID == id {
			return cloneUser(u), true
		}
	}
	return dirmodel.User{}, false
}

// Replace writes a committed record back. A record whose role moved to
// another roster leaves this one.
func (r *Roster) Replace(id int64, user dirmodel.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if auth.NormalizeRole(user.Role) != r.role {
		r.records = without(r.records, id)
		return
	}
	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i] = cloneUser(user)
			return
		}
	}
}

func (r *Roster) save(ctx context.Context, id int64, edit Editable) (dirmodel.User, error) {
	updated, err := r.gw.Update(ctx, r.role, id, edit)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.alert = remote.Failure(fmt.Sprintf("Failed to update %s", noun(r.role)), err)
		return dirmodel.User{}, err
	}
	r.alert = remote.Success(fmt.Sprintf("%s details updated successfully!", title(noun(r.role))))
	return updated, nil
}

// snapshotUser copies the editable fields. Passwords are never sent back by
// the server, so the password starts empty and must be entered again.
func snapshotUser(u dirmodel.User) Editable {
	u = cloneUser(u)
	return Editable{Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role, Username: u.Username,
		HRID: u.HRID, ManagerID: u.ManagerID}
}

func setField(e *Editable, field, value string) error {
	switch field {
	case "name":
		e.Name = value
	case "email":
		e.Email = value
	case "phone":
		e.Phone = value
	case "role":
		e.Role = value
	case "username":
		e.Username = value
	case "password":
		e.Password = value
	case "hrId", "managerId":
		id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %q is not an id", field, value)
		}
		if field == "hrId" {
			e.HRID = &id
		} else {
			e.ManagerID = &id
		}
	default:
		return fmt.Errorf("%w: %s", editsession.ErrUnknownField, field)
	}
	return nil
}

func without(users []dirmodel.User, id int64) []dirmodel.User {
	out := users[:0:0]
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

func cloneUser(u dirmodel.User) dirmodel.User {
	if u.HRID != nil {
		v := *u.HRID
		u.HRID = &v
	}
	if u.ManagerID != nil {
		v := *u.ManagerID
		u.ManagerID = &v
	}
	return u
}

func noun(role string) string {
	switch role {
	case auth.RoleEmployee, auth.RoleManager:
		return strings.ToLower(role)
	}
	return role
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

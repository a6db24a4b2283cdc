package directory

import (
	"regexp"
	"strings"

	"hrportal/internal/domain/auth"
)

const AllFieldsRequired = "All fields are required"

var (
	emailPattern = regexp.MustCompile(`^[\w-]+(\.[\w-]+)*@([\w-]+\.)+[a-zA-Z]{2,7}$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// ValidateNewUser returns field-keyed problems with a create candidate. The
// link requirements depend on the role: HR needs none, a Manager needs an HR,
// an Employee needs both an HR and a Manager.
func ValidateNewUser(u NewUser) map[string]string {
	issues := map[string]string{}
	required := []struct {
		field, value, message string
	}{
		{"name", u.Name, "Name is required"},
		{"email", u.Email, "Email is required"},
		{"phone", u.Phone, "Phone is required"},
		{"username", u.Username, "Username is required"},
		{"password", u.Password, "Password is required"},
		{"role", u.Role, "Role is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			issues[r.field] = r.message
		}
	}

	role := auth.NormalizeRole(u.Role)
	if role != "" && !auth.ValidRole(role) {
		issues["role"] = "Role must be Employee, Manager or HR"
	}
	switch role {
	case auth.RoleManager:
		if u.HRID == nil || *u.HRID <= 0 {
			issues["hrId"] = "HR ID is required"
		}
	case auth.RoleEmployee:
		if u.HRID == nil || *u.HRID <= 0 {
			issues["hrId"] = "HR ID is required"
		}
		if u.ManagerID == nil || *u.ManagerID <= 0 {
			issues["managerId"] = "Manager ID is required"
		}
	}
	return issues
}

// ValidatePatch requires every editable field to be present and non-empty.
func ValidatePatch(p UserPatch) map[string]string {
	issues := map[string]string{}
	fields := map[string]string{
		"name":     p.Name,
		"email":    p.Email,
		"phone":    p.Phone,
		"role":     p.Role,
		"username": p.Username,
		"password": p.Password,
	}
	for field, value := range fields {
		if strings.TrimSpace(value) == "" {
			issues[field] = AllFieldsRequired
		}
	}
	if role := auth.NormalizeRole(p.Role); role != "" && !auth.ValidRole(role) {
		issues["role"] = "Role must be Employee, Manager or HR"
	}
	if p.HRID != nil && *p.HRID <= 0 {
		issues["hrId"] = "HR ID is required"
	}
	if p.ManagerID != nil && *p.ManagerID <= 0 {
		issues["managerId"] = "Manager ID is required"
	}
	return issues
}

// Profile is the self-service form an employee uses for their own details.
type Profile struct {
	FullName      string
	EmailAddress  string
	UserName      string
	NewPassword   string
	ContactNumber string
}

func ValidateProfile(p Profile) map[string]string {
	issues := map[string]string{}
	if strings.TrimSpace(p.FullName) == "" {
		issues["fullName"] = "Full Name is required"
	}
	if !emailPattern.MatchString(p.EmailAddress) {
		issues["emailAddress"] = "Invalid email address"
	}
	if strings.TrimSpace(p.UserName) == "" {
		issues["userName"] = "Username is required"
	}
	if p.NewPassword != "" && len(p.NewPassword) < 6 {
		issues["newPassword"] = "Password must be at least 6 characters long"
	}
	if !phonePattern.MatchString(p.ContactNumber) {
		issues["contactNumber"] = "Phone number must be 10 digits long"
	}
	return issues
}

func normalizeNewUser(u NewUser) NewUser {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Phone = strings.TrimSpace(u.Phone)
	u.Username = strings.TrimSpace(u.Username)
	u.Role = auth.NormalizeRole(u.Role)
	switch u.Role {
	case auth.RoleHR:
		u.HRID = nil
		u.ManagerID = nil
	case auth.RoleManager:
		u.ManagerID = nil
	}
	return u
}

func normalizePatch(p UserPatch) UserPatch {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Username = strings.TrimSpace(p.Username)
	p.Role = auth.NormalizeRole(p.Role)
	return p
}

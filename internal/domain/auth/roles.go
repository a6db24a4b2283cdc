package auth

import "strings"

const (
	RoleEmployee = "Employee"
	RoleManager  = "Manager"
	RoleHR       = "HR"
)

var Roles = []string{RoleEmployee, RoleManager, RoleHR}

// NormalizeRole maps a case-insensitive role name onto its canonical spelling.
// Unknown roles are returned trimmed but otherwise unchanged.
func NormalizeRole(role string) string {
	trimmed := strings.TrimSpace(role)
	for _, candidate := range Roles {
		if strings.EqualFold(trimmed, candidate) {
			return candidate
		}
	}
	return trimmed
}

func ValidRole(role string) bool {
	for _, candidate := range Roles {
		if role == candidate {
			return true
		}
	}
	return false
}

// ApproverRole returns the role allowed to decide leave filed by requesterRole.
func ApproverRole(requesterRole string) (string, bool) {
	switch requesterRole {
	case RoleEmployee:
		return RoleManager, true
	case RoleManager:
		return RoleHR, true
	default:
		return "", false
	}
}

// RequesterRole is the inverse of ApproverRole.
func RequesterRole(approverRole string) (string, bool) {
	switch approverRole {
	case RoleManager:
		return RoleEmployee, true
	case RoleHR:
		return RoleManager, true
	default:
		return "", false
	}
}

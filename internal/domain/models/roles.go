// internal/domain/models/roles.go
package models

// Role values. Every account starts as RoleUnverified; the student role is
// assigned through verification approval, and alumni either through approval
// or through the graduate auto-upgrade.
const (
	RoleUnverified = "unverified"
	RoleStudent    = "student"
	RoleAlumni     = "alumni"
	RoleProfessor  = "professor"
	RoleAdmin      = "admin"
)

// Verification status values. Transitions:
// none → pending_review → {verified, rejected}; rejected may re-enter
// pending_review on resubmission.
const (
	VerificationNone    = "none"
	VerificationPending = "pending_review"
	VerificationOK      = "verified"
	VerificationDenied  = "rejected"
)

// AllRoles lists every valid role value. Used for validation.
var AllRoles = []string{RoleUnverified, RoleStudent, RoleAlumni, RoleProfessor, RoleAdmin}

// IsValidRole checks if a value is a valid role.
func IsValidRole(value string) bool {
	for _, r := range AllRoles {
		if r == value {
			return true
		}
	}
	return false
}

// AssignableRoles lists the roles an admin may assign through verification
// approval. Admin itself is excluded; admins are created out of band.
var AssignableRoles = []string{RoleStudent, RoleAlumni, RoleProfessor}

// IsAssignableRole checks if a role may be granted via verification approval.
func IsAssignableRole(value string) bool {
	for _, r := range AssignableRoles {
		if r == value {
			return true
		}
	}
	return false
}

// IsValidVerificationStatus checks if a value is a valid verification status.
func IsValidVerificationStatus(value string) bool {
	switch value {
	case VerificationNone, VerificationPending, VerificationOK, VerificationDenied:
		return true
	}
	return false
}

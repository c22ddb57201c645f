// Package accesspolicy is the single authority for which roles may create
// and act on shared resources. Every feature consults this table instead of
// comparing role strings inline.
//
// Rules:
//   - ProjectIdea: created by professors only.
//   - InterviewQuestion, WorkOpportunity: created by professors and alumni.
//   - Group: created by students only.
//   - VerificationRequest: any authenticated user whose verification status
//     is "none" or "rejected" (resubmission after rejection is allowed;
//     blocked while pending review or already verified).
//   - Viewing any resource: any authenticated user.
//   - Applying to a work opportunity: students only.
//   - Requesting to join a group: students only (the store additionally
//     rejects owners, members, and duplicate requests).
//
// Policies are pure functions over normalized role strings; they perform no
// I/O and have no side effects.
package accesspolicy

import (
	"errors"

	"github.com/campuslink/careerhub/internal/app/system/normalize"
	"github.com/campuslink/careerhub/internal/domain/models"
)

// ErrPermissionDenied is returned by Require* helpers when the caller's
// role does not satisfy the policy for the attempted action. Callers must
// not attempt the underlying write after seeing it.
var ErrPermissionDenied = errors.New("permission denied")

// ResourceKind names a creatable resource type.
type ResourceKind string

const (
	KindProjectIdea         ResourceKind = "project_idea"
	KindInterviewQuestion   ResourceKind = "interview_question"
	KindWorkOpportunity     ResourceKind = "work_opportunity"
	KindGroup               ResourceKind = "group"
	KindVerificationRequest ResourceKind = "verification_request"
)

// createRoles is the creation allow-list per resource kind. A missing kind
// means nobody may create it.
var createRoles = map[ResourceKind][]string{
	KindProjectIdea:       {models.RoleProfessor},
	KindInterviewQuestion: {models.RoleProfessor, models.RoleAlumni},
	KindWorkOpportunity:   {models.RoleProfessor, models.RoleAlumni},
	KindGroup:             {models.RoleStudent},
}

// CanCreate reports whether a user with the given role and verification
// status may create a resource of the given kind.
func CanCreate(kind ResourceKind, role, verificationStatus string) bool {
	role = normalize.Role(role)

	if kind == KindVerificationRequest {
		// Any authenticated role may submit, gated on current status only.
		if role == "" {
			return false
		}
		switch normalize.Status(verificationStatus) {
		case models.VerificationNone, models.VerificationDenied:
			return true
		}
		return false
	}

	for _, allowed := range createRoles[kind] {
		if role == allowed {
			return true
		}
	}
	return false
}

// RequireCreate returns ErrPermissionDenied unless CanCreate allows it.
func RequireCreate(kind ResourceKind, role, verificationStatus string) error {
	if !CanCreate(kind, role, verificationStatus) {
		return ErrPermissionDenied
	}
	return nil
}

// CanView reports whether a role may read shared resources. Reads are
// unrestricted once authenticated.
func CanView(role string) bool {
	return normalize.Role(role) != ""
}

// CanApply reports whether a role may apply to a work opportunity.
func CanApply(role string) bool {
	return normalize.Role(role) == models.RoleStudent
}

// CanRequestJoin reports whether a role may request to join a group. The
// member/pending/owner exclusions are enforced by the group store's guarded
// update, which sees current truth.
func CanRequestJoin(role string) bool {
	return normalize.Role(role) == models.RoleStudent
}

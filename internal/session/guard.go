package session

import "github.com/wetube/tube/internal/domain"

// Requirement is the access precondition a view declares.
type Requirement int

const (
	// RequireNone allows anyone
	RequireNone Requirement = iota
	// RequireLoggedIn allows any authenticated user
	RequireLoggedIn
	// RequireAdmin allows authenticated users with the ADMIN role
	RequireAdmin
)

// Verdict is the guard's decision for a mount attempt.
type Verdict int

const (
	// Allow renders the view
	Allow Verdict = iota
	// RedirectLogin sends the user to the sign-in view
	RedirectLogin
	// RedirectHome sends the user to the home view
	RedirectHome
)

// Check evaluates an access requirement against a session snapshot. It runs
// once per view mount; server-side enforcement is the real authority, this
// is a UX convenience only.
func Check(s Snapshot, req Requirement) Verdict {
	switch req {
	case RequireLoggedIn:
		if !s.IsLoggedIn {
			return RedirectLogin
		}
	case RequireAdmin:
		if !s.IsLoggedIn || s.User == nil || s.User.Role != domain.RoleAdmin {
			return RedirectHome
		}
	}
	return Allow
}

// Package policy decides which roles may perform which operations.
//
// All role checks in the service go through Decide; handlers and services
// never compare role strings themselves.
package policy

import (
	"errors"

	"creditsea/internal/model"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden: you do not have permission for this action")
)

// Identity is an authenticated user resolved from a session
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// Operation names a permission-checked action
type Operation int

const (
	SubmitLoan Operation = iota
	ViewOwnLoans
	ViewAllLoans
	ReviewLoan
	ListUsers
	ChangeUserRole
	DeleteUser
)

func (o Operation) String() string {
	switch o {
	case SubmitLoan:
		return "submit_loan"
	case ViewOwnLoans:
		return "view_own_loans"
	case ViewAllLoans:
		return "view_all_loans"
	case ReviewLoan:
		return "review_loan"
	case ListUsers:
		return "list_users"
	case ChangeUserRole:
		return "change_user_role"
	case DeleteUser:
		return "delete_user"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a policy check
type Decision int

const (
	Allow Decision = iota
	Unauthenticated
	Forbidden
)

var rules = map[string]map[Operation]bool{
	model.RoleUser: {
		SubmitLoan:   true,
		ViewOwnLoans: true,
	},
	model.RoleVerifier: {
		ViewAllLoans: true,
		ReviewLoan:   true,
	},
	model.RoleAdmin: {
		ViewAllLoans:   true,
		ReviewLoan:     true,
		ListUsers:      true,
		ChangeUserRole: true,
		DeleteUser:     true,
	},
}

// Decide returns whether identity may perform op. A nil identity is anonymous.
func Decide(identity *Identity, op Operation) Decision {
	if identity == nil {
		return Unauthenticated
	}
	if rules[identity.Role][op] {
		return Allow
	}
	return Forbidden
}

// Permit reports whether identity may perform op.
func Permit(identity *Identity, op Operation) bool {
	return Decide(identity, op) == Allow
}

// Authorize is Decide expressed as an error: nil, ErrUnauthenticated or ErrForbidden.
func Authorize(identity *Identity, op Operation) error {
	switch Decide(identity, op) {
	case Allow:
		return nil
	case Unauthenticated:
		return ErrUnauthenticated
	default:
		return ErrForbidden
	}
}

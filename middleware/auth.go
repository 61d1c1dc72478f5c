package middleware

import (
	"fmt"
	"net/http"

	"go-storefront/models"
	"go-storefront/session"
)

// Capability is the access requirement of a route family
type Capability int

const (
	// Anonymous needs no identity
	Anonymous Capability = iota
	// CustomerOnly needs a signed-in customer
	CustomerOnly
	// ClerkOnly needs a signed-in clerk
	ClerkOnly
	// NotClerk admits anyone except clerks
	NotClerk
)

func (c Capability) String() string {
	switch c {
	case Anonymous:
		return "anonymous"
	case CustomerOnly:
		return "customer-only"
	case ClerkOnly:
		return "clerk-only"
	case NotClerk:
		return "not-clerk"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

// AuthorizationError is a denied access decision
type AuthorizationError struct {
	Capability Capability
	Message    string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("unauthorized (%s): %s", e.Capability, e.Message)
}

// Authorize decides whether identity (nil when signed out) satisfies c.
// message is the user-facing reason attached to a denial.
func Authorize(identity *models.SessionIdentity, c Capability, message string) error {
	allowed := true
	switch c {
	case CustomerOnly:
		allowed = identity != nil && identity.Role == models.RoleCustomer
	case ClerkOnly:
		allowed = identity != nil && identity.Role == models.RoleClerk
	case NotClerk:
		allowed = identity == nil || identity.Role != models.RoleClerk
	}
	if allowed {
		return nil
	}
	return &AuthorizationError{Capability: c, Message: message}
}

// DenyFunc writes the response for a denied request
type DenyFunc func(w http.ResponseWriter, r *http.Request, status int, err *AuthorizationError)

// Guard turns capabilities into route middleware. Every denial uses Status.
type Guard struct {
	Status int
	Deny   DenyFunc
}

// NewGuard creates a Guard. A zero status means 401.
func NewGuard(status int, deny DenyFunc) *Guard {
	if status == 0 {
		status = http.StatusUnauthorized
	}
	return &Guard{Status: status, Deny: deny}
}

// Require returns middleware admitting only sessions that satisfy c
func (g *Guard) Require(c Capability, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := session.FromContext(r.Context())
			if err := Authorize(s.User, c, message); err != nil {
				g.Deny(w, r, g.Status, err.(*AuthorizationError))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

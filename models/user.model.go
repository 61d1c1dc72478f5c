package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the account's access level
type Role string

const (
	RoleCustomer Role = "customer"
	RoleClerk    Role = "clerk"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleClerk
}

// User represents an account in the system
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName   string             `bson:"firstName" json:"first_name"`
	LastName    string             `bson:"lastName" json:"last_name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"` // bcrypt hash
	DateCreated time.Time          `bson:"dateCreated" json:"date_created"`
	Role        Role               `bson:"role" json:"role"`
}

// SessionIdentity is the authenticated principal attached to a session
type SessionIdentity struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// IdentityFor derives the session identity from a stored account
func IdentityFor(u User) *SessionIdentity {
	role := u.Role
	if !role.Valid() {
		role = RoleCustomer
	}
	return &SessionIdentity{
		ID:        u.ID.Hex(),
		FirstName: u.FirstName,
		Email:     u.Email,
		Role:      role,
	}
}

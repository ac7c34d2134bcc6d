// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// Role describes the authorization level of an authenticated principal.
type Role string

const (
	// RoleCustomer is the default role for a registered shopper.
	RoleCustomer Role = "customer"
	// RoleAdmin grants access to the back-office operations (orders, coupons, review moderation).
	RoleAdmin Role = "admin"
)

// Identity is the resolved authenticated principal of the current session.
// The absence of an Identity (a nil pointer) means the session is a guest:
// no cart or wishlist operations are permitted for guests.
type Identity struct {
	ID       string `json:"id"`                 // Server-issued unique identifier for the account.
	Name     string `json:"name"`               // The user's display name.
	Email    string `json:"email"`              // The user's primary contact email, used as the login identifier.
	Role     Role   `json:"role"`               // Authorization role, either "customer" or "admin".
	ImageURL string `json:"imageUrl,omitempty"` // Optional reference to the user's profile image.
}

// IsAdmin reports whether this identity may perform back-office operations.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Merge overlays the non-zero fields of other onto a copy of i and returns it.
// The ID is never overwritten by a merge.
func (i Identity) Merge(other Identity) Identity {
	if other.Name != "" {
		i.Name = other.Name
	}
	if other.Email != "" {
		i.Email = other.Email
	}
	if other.Role != "" {
		i.Role = other.Role
	}
	if other.ImageURL != "" {
		i.ImageURL = other.ImageURL
	}

	return i
}

package model

import "time"

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleMember UserRole = "member" // Default role
	UserRoleAdmin  UserRole = "admin"  // May edit or delete any post, manages roles
)

// IsValid reports whether r is a known role
func (r UserRole) IsValid() bool {
	return r == UserRoleMember || r == UserRoleAdmin
}

// User represents a user account
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  *string   `json:"username,omitempty"`
	Hash      *string   `json:"-"` // Never expose password hash
	Role      UserRole  `json:"role"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// DisplayName returns the username when set, otherwise the email
func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.Email
}

// Actor is the authenticated caller of a request, as asserted by a verified token
type Actor struct {
	UserID string   `json:"user_id,omitempty"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}

// IsAdmin returns true if the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == UserRoleAdmin
}

// UserItem is the admin listing view of a user
type UserItem struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  *string   `json:"username,omitempty"`
	Role      UserRole  `json:"role"`
	CreatedOn time.Time `json:"created_on"`
}

// ToItem converts a User to its listing representation
func (u *User) ToItem() UserItem {
	return UserItem{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role,
		CreatedOn: u.CreatedOn,
	}
}

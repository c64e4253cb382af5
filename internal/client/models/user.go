// Package models defines the client-side view of the remote API's records
// and request payloads.
package models

import "time"

// Role is the authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the current-user record returned by the API. Username is unique
// and immutable; the display fields may be changed through UpdateProfile.
// Timestamps are assigned by the server.
type User struct {
	ID        uint64    `json:"ID"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt,omitzero"`
}

// IsAdmin reports whether u has the admin role. A nil user is not an admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName is the nickname when set, else the username.
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}

// Clone returns a copy of u, or nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterPayload is the body of POST /auth/register.
type RegisterPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname,omitempty"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// UpdateProfilePayload is the body of PUT /user/profile. Every field is
// independently optional; nil fields are not sent.
type UpdateProfilePayload struct {
	Nickname *string `json:"nickname,omitempty"`
	Email    *string `json:"email,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Password *string `json:"password,omitempty"`
}

// IsEmpty reports whether no field is set.
func (p UpdateProfilePayload) IsEmpty() bool {
	return p.Nickname == nil && p.Email == nil && p.Avatar == nil && p.Password == nil
}

// AuthResponse is returned by login and register. Register may include the
// freshly created user.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// ChangeRoleRequest is the body of PATCH /admin/users/:id/role.
type ChangeRoleRequest struct {
	Role Role `json:"role"`
}

// RoleChange is the server's acknowledgement of a role update.
type RoleChange struct {
	Message string `json:"message"`
	UserID  uint64 `json:"user_id"`
	NewRole Role   `json:"new_role"`
}

// AvatarUpload is the response of POST /user/upload/avatar.
type AvatarUpload struct {
	Message string `json:"message"`
	Avatar  string `json:"avatar"`
}

// StringPtr returns a pointer to s. Handy for UpdateProfilePayload literals.
func StringPtr(s string) *string {
	return &s
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the authorization role of a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// Roles lists every known role.
var Roles = []Role{RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// DefaultPhoto is assigned to users that did not upload a photo.
const DefaultPhoto = "default.jpg"

// User represents an account used for authentication and authorization.
// Credential fields are never serialized to JSON.
type User struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name,omitempty"`
	Email string `db:"email" json:"email,omitempty"`
	Photo string `db:"photo" json:"photo,omitempty"`
	Role  Role   `db:"role" json:"role,omitempty"`

	// Password holds the bcrypt hash once stored. Before the write pipeline
	// runs it carries the plaintext candidate.
	Password string `db:"password" json:"-"`

	// PasswordConfirm is only used by validation and never persisted.
	PasswordConfirm string `db:"-" json:"-"`

	PasswordChangedAt    *time.Time `db:"password_changed_at" json:"passwordChangedAt,omitempty"`
	PasswordResetToken   *string    `db:"password_reset_token" json:"-"`
	PasswordResetExpires *time.Time `db:"password_reset_expires" json:"-"`

	// Active is false for soft-deleted accounts.
	Active bool `db:"active" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"createdAt,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// GetID returns the user identifier.
func (u *User) GetID() string { return u.ID }

// SetID sets the user identifier.
func (u *User) SetID(id string) { u.ID = id }

// HasRole reports whether the user has one of the given roles.
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. Both instants are compared at second precision,
// since JWT "iat" carries whole seconds.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > issuedAt.Unix()
}

// ClearPasswordReset drops the stored reset hash and its expiry.
func (u *User) ClearPasswordReset() {
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
}

// SignupRequest is the body of POST /users/signup.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Photo           string `json:"photo"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the body of POST /users/forgotPassword.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of PATCH /users/resetPassword/{token}.
type ResetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UpdatePasswordRequest is the body of PATCH /users/updateMyPassword.
type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

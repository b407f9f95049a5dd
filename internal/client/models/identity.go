package models

import "time"

// Identity is the authenticated user's profile as returned by the backend.
// It is derived from the credential and owned by the auth context; other
// components treat it as read-only.
type Identity struct {
	ID        ID        `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

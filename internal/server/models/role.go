// Package models defines server-side data models persisted in the database
// and the session/role values derived from them.
package models

import "fmt"

// Role classifies a signed-in user and decides which operations are allowed.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role string coming from a signup form.
// Admin is deliberately excluded: nobody signs up as admin.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient, RoleDoctor:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

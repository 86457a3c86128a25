// Package common defines shared constants and sentinel errors used across
// the AfyaLink server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Generic internal flow control.
	ErrorInternal = errors.New("internal error")

	// Authentication errors: the identity provider rejected the credentials
	// or returned no user.
	ErrAuthentication = errors.New("authentication failed")

	// Authorization errors, checked in this order by the access guard.
	ErrNotAuthenticated = errors.New("not_authenticated")
	ErrWrongRole        = errors.New("wrong_role")

	// Validation errors: a required field is missing or malformed; raised
	// before any store call.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a write rejected because the target already exists,
	// such as signing up an email twice.
	ErrConflict = errors.New("already exists")

	// Store/storage errors.
	ErrStore              = errors.New("store error")
	ErrStoreTimeout       = errors.New("store timeout")
	ErrStorageUpload      = errors.New("storage upload failed")
	ErrCredentialRequired = errors.New("credential required")

	// ErrRoleUnresolved marks a role lookup that failed at the store level.
	// It is distinct from "resolved to admin" and must never be treated as
	// an admin grant.
	ErrRoleUnresolved = errors.New("role unresolved")
)

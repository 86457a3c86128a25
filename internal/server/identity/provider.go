// Package identity abstracts the hosted authentication service. The server
// consumes it through the Provider interface; it never stores or verifies
// provider passwords itself in remote mode.
package identity

import "context"

// User is the identity returned by the provider.
type User struct {
	ID       string
	Email    string
	FullName string
}

// SignInResult bundles the authenticated user with an optional access token.
// A missing token is not a login failure: the session is degraded but valid.
type SignInResult struct {
	User        *User
	AccessToken string
}

// Provider authenticates users. Success requires a non-nil User and no
// error; the presence of AccessToken is optional by contract. SignUp must
// persist fullName where a later SignInWithPassword can see it, or the
// session greeting degrades to the generic fallback.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error)
	SignUp(ctx context.Context, email, password, fullName string) (*User, error)
}

package models

// Session is the per-login record of the authenticated identity and its role,
// valid until explicit logout. Credential is the identity provider's access
// token; it may be empty (a degraded but accepted state).
type Session struct {
	UserID     string
	Role       Role
	FullName   string
	Credential string
}

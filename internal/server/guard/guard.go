// Package guard gates every protected operation on session presence and role
// match. The check order is fixed: authentication before authorization, since
// a role comparison is meaningless without a resolved identity.
package guard

import (
	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/server/models"
)

// Require returns nil when sess is live and carries the expected role.
// A nil session always yields ErrNotAuthenticated, never ErrWrongRole.
func Require(sess *models.Session, expected models.Role) error {
	if sess == nil {
		return common.ErrNotAuthenticated
	}
	if sess.Role != expected {
		return common.ErrWrongRole
	}
	return nil
}

// RequireAny is Require for pages open to more than one role, such as the
// shared appointments view.
func RequireAny(sess *models.Session, expected ...models.Role) error {
	if sess == nil {
		return common.ErrNotAuthenticated
	}
	for _, role := range expected {
		if sess.Role == role {
			return nil
		}
	}
	return common.ErrWrongRole
}

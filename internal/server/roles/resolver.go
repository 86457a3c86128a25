// Package roles derives a user's role by probing the patient and doctor
// membership tables. The probe order is load-bearing: patients first, so a
// user erroneously present in both sets deterministically resolves to
// patient. A double miss resolves to admin; there is no admin table.
package roles

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/server/models"
	"github.com/afyalink/afyalink/internal/server/repositories/repomanager"
)

// Resolver classifies user ids into roles.
type Resolver struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewResolver(db *sql.DB, m repomanager.RepositoryManager) *Resolver {
	return &Resolver{db: db, repomanager: m}
}

// Resolve returns the role for userID. A failed membership query returns
// common.ErrRoleUnresolved wrapping the cause; callers must treat that as an
// authorization failure, never as an admin grant.
func (r *Resolver) Resolve(ctx context.Context, userID string) (models.Role, error) {
	patientRepo := r.repomanager.Patients(r.db)
	isPatient, err := patientRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrRoleUnresolved, err)
	}
	if isPatient {
		return models.RolePatient, nil
	}

	doctorRepo := r.repomanager.Doctors(r.db)
	isDoctor, err := doctorRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrRoleUnresolved, err)
	}
	if isDoctor {
		return models.RoleDoctor, nil
	}

	return models.RoleAdmin, nil
}

// Package doctors provides a PostgreSQL-backed repository for doctor
// enrollment. Membership here is what makes a user a "doctor" for role
// resolution.
package doctors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/dbx"
	"github.com/afyalink/afyalink/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create enrolls a new doctor and returns it with the generated id.
func (r *PostgresRepository) Create(ctx context.Context, doctor *models.Doctor) (*models.Doctor, error) {

	query :=
		`INSERT INTO doctors (user_id, full_name, email)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		doctor.UserID, doctor.FullName, doctor.Email).Scan(&doctor.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doctor, nil
}

// ExistsByUserID reports whether userID is enrolled as a doctor.
func (r *PostgresRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM doctors WHERE user_id = $1)
		 `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// GetByUserID returns the doctor row enrolled for userID.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	query :=
		`SELECT id, user_id, full_name, email FROM doctors
		 WHERE user_id = $1
		 `

	doctor := &models.Doctor{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&doctor.ID, &doctor.UserID, &doctor.FullName, &doctor.Email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doctor, nil
}

// ListAll returns every doctor, for the admin assignment picker.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Doctor, error) {
	query :=
		`SELECT id, user_id, full_name, email FROM doctors
		 ORDER BY full_name
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Doctor
	for rows.Next() {
		var item models.Doctor
		if err := rows.Scan(&item.ID, &item.UserID, &item.FullName, &item.Email); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

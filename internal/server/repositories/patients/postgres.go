// Package patients provides a PostgreSQL-backed repository for patients and
// their doctor assignments. Membership here is also what makes a user a
// "patient" for role resolution.
package patients

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

// Create inserts a new patient. DoctorID and UserID are nullable: an empty
// string is stored as NULL.
func (r *PostgresRepository) Create(ctx context.Context, patient *models.Patient) (*models.Patient, error) {

	query :=
		`INSERT INTO patients (user_id, name, age, doctor_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		nullIfEmpty(patient.UserID), patient.Name, patient.Age, nullIfEmpty(patient.DoctorID)).Scan(&patient.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return patient, nil
}

// ListByDoctor returns patients whose doctor_id equals doctorID. Unassigned
// patients never appear here.
func (r *PostgresRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*models.Patient, error) {
	query :=
		`SELECT id, COALESCE(user_id::text, ''), name, age, COALESCE(doctor_id::text, '') FROM patients
		 WHERE doctor_id = $1
		 ORDER BY name
		 `
	return r.list(ctx, query, doctorID)
}

// ListAll returns every patient, for the admin directory.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Patient, error) {
	query :=
		`SELECT id, COALESCE(user_id::text, ''), name, age, COALESCE(doctor_id::text, '') FROM patients
		 ORDER BY name
		 `
	return r.list(ctx, query)
}

// ExistsByUserID reports whether userID is enrolled as a patient.
func (r *PostgresRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM patients WHERE user_id = $1)
		 `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// GetByUserID returns the patient row enrolled for userID.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	query :=
		`SELECT id, COALESCE(user_id::text, ''), name, age, COALESCE(doctor_id::text, '') FROM patients
		 WHERE user_id = $1
		 `

	patient := &models.Patient{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&patient.ID, &patient.UserID, &patient.Name, &patient.Age, &patient.DoctorID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return patient, nil
}

// Unassign clears the doctor assignment for patientID.
func (r *PostgresRepository) Unassign(ctx context.Context, patientID string) error {
	query :=
		`UPDATE patients SET doctor_id = NULL
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, patientID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Reassign points patientID at a new doctor.
func (r *PostgresRepository) Reassign(ctx context.Context, patientID, doctorID string) error {
	query :=
		`UPDATE patients SET doctor_id = $2
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, patientID, doctorID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Patient, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Patient
	for rows.Next() {
		var item models.Patient
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Age, &item.DoctorID); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

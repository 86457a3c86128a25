// Package records provides a PostgreSQL-backed repository for medical
// records. Records are append-only; there is no update or delete.
package records

import (
	"context"
	"fmt"
	"time"

	"github.com/afyalink/afyalink/internal/dbx"
	"github.com/afyalink/afyalink/internal/server/models"
	"github.com/afyalink/afyalink/internal/timex"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a record. The creation timestamp is written as ISO-8601
// text; the column is text, not timestamptz.
func (r *PostgresRepository) Create(ctx context.Context, record *models.MedicalRecord) (*models.MedicalRecord, error) {

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	query :=
		`INSERT INTO medical_records (patient_id, record_title, description, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		record.PatientID, record.Title, record.Description, timex.FormatISO(record.CreatedAt)).Scan(&record.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

// ListByPatient returns the records owned by patientID, oldest first.
func (r *PostgresRepository) ListByPatient(ctx context.Context, patientID string) ([]*models.MedicalRecord, error) {
	query :=
		`SELECT id, patient_id, record_title, description, created_at FROM medical_records
		 WHERE patient_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.MedicalRecord
	for rows.Next() {
		var item models.MedicalRecord
		var createdAt string
		if err := rows.Scan(&item.ID, &item.PatientID, &item.Title, &item.Description, &createdAt); err != nil {
			return nil, err
		}
		if item.CreatedAt, err = timex.ParseISO(createdAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

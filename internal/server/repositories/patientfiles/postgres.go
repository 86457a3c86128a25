// Package patientfiles provides a PostgreSQL-backed repository for uploaded
// file metadata. A row only exists after the object storage write succeeded.
package patientfiles

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

// Create inserts file metadata and returns it with the generated id.
func (r *PostgresRepository) Create(ctx context.Context, file *models.PatientFile) (*models.PatientFile, error) {

	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now().UTC().Truncate(time.Second)
	}

	query :=
		`INSERT INTO patient_files (patient_id, file_name, original_name, uploaded_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		file.PatientID, file.FileName, file.OriginalName, timex.FormatISO(file.UploadedAt)).Scan(&file.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

// ListByPatient returns metadata for patientID's uploads, newest first, the
// order the dashboard displays them in.
func (r *PostgresRepository) ListByPatient(ctx context.Context, patientID string) ([]*models.PatientFile, error) {
	query :=
		`SELECT id, patient_id, file_name, original_name, uploaded_at FROM patient_files
		 WHERE patient_id = $1
		 ORDER BY uploaded_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.PatientFile
	for rows.Next() {
		var item models.PatientFile
		var uploadedAt string
		if err := rows.Scan(&item.ID, &item.PatientID, &item.FileName, &item.OriginalName, &uploadedAt); err != nil {
			return nil, err
		}
		if item.UploadedAt, err = timex.ParseISO(uploadedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

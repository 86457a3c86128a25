// Package appointments provides a PostgreSQL-backed repository for
// appointments. Times travel as ISO-8601 text and the table carries no
// double-booking constraint.
package appointments

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

// Create inserts an appointment and returns it with the generated id.
func (r *PostgresRepository) Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {

	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	query :=
		`INSERT INTO appointments (doctor_id, patient_id, appointment_time, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		appointment.DoctorID, appointment.PatientID,
		timex.FormatISO(appointment.AppointmentTime), appointment.Status,
		timex.FormatISO(appointment.CreatedAt)).Scan(&appointment.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return appointment, nil
}

// ListByDoctor returns appointments where doctor_id equals doctorID.
func (r *PostgresRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*models.Appointment, error) {
	query :=
		`SELECT id, doctor_id, patient_id, appointment_time, status, created_at FROM appointments
		 WHERE doctor_id = $1
		 ORDER BY appointment_time
		 `
	return r.list(ctx, query, doctorID)
}

// ListByPatient returns appointments where patient_id equals patientID.
func (r *PostgresRepository) ListByPatient(ctx context.Context, patientID string) ([]*models.Appointment, error) {
	query :=
		`SELECT id, doctor_id, patient_id, appointment_time, status, created_at FROM appointments
		 WHERE patient_id = $1
		 ORDER BY appointment_time
		 `
	return r.list(ctx, query, patientID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Appointment
	for rows.Next() {
		var item models.Appointment
		var when, createdAt string
		if err := rows.Scan(&item.ID, &item.DoctorID, &item.PatientID, &when, &item.Status, &createdAt); err != nil {
			return nil, err
		}
		if item.AppointmentTime, err = timex.ParseISO(when); err != nil {
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

package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/server/config"
	"github.com/afyalink/afyalink/internal/server/models"
	"github.com/afyalink/afyalink/internal/server/repositories/repomanager"
)

// AppointmentService schedules and lists appointments. There is no
// double-booking check; two concurrent schedulers can book the same slot.
type AppointmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewAppointmentService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AppointmentService {
	return &AppointmentService{db: db, repomanager: m, config: cfg}
}

// ScheduleAppointment books doctorID with patientID at when, always with
// status "scheduled". Returns the created appointment so the page can
// refresh without re-querying.
func (s *AppointmentService) ScheduleAppointment(ctx context.Context, doctorID, patientID string, when time.Time) (*models.Appointment, error) {
	if doctorID == "" || patientID == "" {
		return nil, fmt.Errorf("%w: doctor id and patient id are required", common.ErrValidation)
	}
	if when.IsZero() {
		return nil, fmt.Errorf("%w: appointment time is required", common.ErrValidation)
	}

	opCtx, cancel := storeCtx(ctx, s.config)
	defer cancel()

	repo := s.repomanager.Appointments(s.db)
	appointment, err := repo.Create(opCtx, &models.Appointment{
		DoctorID:        doctorID,
		PatientID:       patientID,
		AppointmentTime: when.UTC().Truncate(time.Second),
		Status:          models.AppointmentScheduled,
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return appointment, nil
}

// ListAppointmentsFor filters by doctor_id or patient_id depending on role.
func (s *AppointmentService) ListAppointmentsFor(ctx context.Context, id string, role models.Role) ([]*models.Appointment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", common.ErrValidation)
	}
	if role != models.RoleDoctor && role != models.RolePatient {
		return nil, fmt.Errorf("%w: no appointment view for role %q", common.ErrValidation, role)
	}

	repo := s.repomanager.Appointments(s.db)

	var result []*models.Appointment
	err := readWithRetry(ctx, s.config, func(ctx context.Context) error {
		var err error
		if role == models.RoleDoctor {
			result, err = repo.ListByDoctor(ctx, id)
		} else {
			result, err = repo.ListByPatient(ctx, id)
		}
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if result == nil {
		result = []*models.Appointment{}
	}
	return result, nil
}

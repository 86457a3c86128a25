package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/server/config"
	"github.com/afyalink/afyalink/internal/server/models"
	"github.com/afyalink/afyalink/internal/server/repositories/repomanager"
)

// DirectoryService covers the patient/doctor/user listings and assignment
// changes driven from the admin and doctor dashboards.
type DirectoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewDirectoryService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *DirectoryService {
	return &DirectoryService{db: db, repomanager: m, config: cfg}
}

// ListPatientsForDoctor returns the patients assigned to doctorID. No
// assigned patients is an empty slice, not an error.
func (s *DirectoryService) ListPatientsForDoctor(ctx context.Context, doctorID string) ([]*models.Patient, error) {
	if doctorID == "" {
		return nil, fmt.Errorf("%w: doctor id is required", common.ErrValidation)
	}

	repo := s.repomanager.Patients(s.db)

	var result []*models.Patient
	err := readWithRetry(ctx, s.config, func(ctx context.Context) error {
		var err error
		result, err = repo.ListByDoctor(ctx, doctorID)
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if result == nil {
		result = []*models.Patient{}
	}
	return result, nil
}

// ListAllPatients returns every patient for the admin directory.
func (s *DirectoryService) ListAllPatients(ctx context.Context) ([]*models.Patient, error) {
	repo := s.repomanager.Patients(s.db)

	var result []*models.Patient
	err := readWithRetry(ctx, s.config, func(ctx context.Context) error {
		var err error
		result, err = repo.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if result == nil {
		result = []*models.Patient{}
	}
	return result, nil
}

// ListAllDoctors returns every doctor for the admin assignment picker.
func (s *DirectoryService) ListAllDoctors(ctx context.Context) ([]*models.Doctor, error) {
	repo := s.repomanager.Doctors(s.db)

	var result []*models.Doctor
	err := readWithRetry(ctx, s.config, func(ctx context.Context) error {
		var err error
		result, err = repo.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if result == nil {
		result = []*models.Doctor{}
	}
	return result, nil
}

// ListAllUsers returns every login account for the admin user directory.
func (s *DirectoryService) ListAllUsers(ctx context.Context) ([]*models.Account, error) {
	repo := s.repomanager.Accounts(s.db)

	var result []*models.Account
	err := readWithRetry(ctx, s.config, func(ctx context.Context) error {
		var err error
		result, err = repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if result == nil {
		result = []*models.Account{}
	}
	return result, nil
}

// DoctorForUser returns the doctor row enrolled for the signed-in user.
func (s *DirectoryService) DoctorForUser(ctx context.Context, userID string) (*models.Doctor, error) {
	repo := s.repomanager.Doctors(s.db)

	var doctor *models.Doctor
	err := readWithRetry(ctx, s.config, func(ctx context.Context) error {
		var err error
		doctor, err = repo.GetByUserID(ctx, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, storeErr(err)
	}
	return doctor, nil
}

// PatientForUser returns the patient row enrolled for the signed-in user.
func (s *DirectoryService) PatientForUser(ctx context.Context, userID string) (*models.Patient, error) {
	repo := s.repomanager.Patients(s.db)

	var patient *models.Patient
	err := readWithRetry(ctx, s.config, func(ctx context.Context) error {
		var err error
		patient, err = repo.GetByUserID(ctx, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, storeErr(err)
	}
	return patient, nil
}

// AddPatient registers a patient, optionally pre-assigned to a doctor.
func (s *DirectoryService) AddPatient(ctx context.Context, name string, age int, doctorID string) (*models.Patient, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: patient name is required", common.ErrValidation)
	}
	if age < 0 {
		return nil, fmt.Errorf("%w: age cannot be negative", common.ErrValidation)
	}

	opCtx, cancel := storeCtx(ctx, s.config)
	defer cancel()

	repo := s.repomanager.Patients(s.db)
	patient, err := repo.Create(opCtx, &models.Patient{Name: name, Age: age, DoctorID: doctorID})
	if err != nil {
		return nil, storeErr(err)
	}
	return patient, nil
}

// UnassignPatient clears the doctor assignment; the patient drops out of the
// former doctor's list on the next read.
func (s *DirectoryService) UnassignPatient(ctx context.Context, patientID string) error {
	if patientID == "" {
		return fmt.Errorf("%w: patient id is required", common.ErrValidation)
	}

	opCtx, cancel := storeCtx(ctx, s.config)
	defer cancel()

	if err := s.repomanager.Patients(s.db).Unassign(opCtx, patientID); err != nil {
		return storeErr(err)
	}
	return nil
}

// ReassignPatient points a patient at a new doctor. Concurrent reassignments
// are last-writer-wins; the store offers per-row atomicity only.
func (s *DirectoryService) ReassignPatient(ctx context.Context, patientID, doctorID string) error {
	if patientID == "" || doctorID == "" {
		return fmt.Errorf("%w: patient id and doctor id are required", common.ErrValidation)
	}

	opCtx, cancel := storeCtx(ctx, s.config)
	defer cancel()

	if err := s.repomanager.Patients(s.db).Reassign(opCtx, patientID, doctorID); err != nil {
		return storeErr(err)
	}
	return nil
}

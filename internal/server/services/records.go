package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/server/config"
	"github.com/afyalink/afyalink/internal/server/models"
	"github.com/afyalink/afyalink/internal/server/repositories/repomanager"
)

// RecordService manages append-only medical records.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *RecordService {
	return &RecordService{db: db, repomanager: m, config: cfg}
}

// AddMedicalRecord creates a record for patientID. Patient id and title are
// required and rejected before any store call. The acting doctor's
// assignment to the patient is NOT verified here.
// TODO: plumb the acting doctor's id through and check it against the
// patient's doctor_id before writing.
func (s *RecordService) AddMedicalRecord(ctx context.Context, patientID, title, description string) (*models.MedicalRecord, error) {
	if patientID == "" || title == "" {
		return nil, fmt.Errorf("%w: patient id and record title are required", common.ErrValidation)
	}

	opCtx, cancel := storeCtx(ctx, s.config)
	defer cancel()

	repo := s.repomanager.Records(s.db)
	record, err := repo.Create(opCtx, &models.MedicalRecord{
		PatientID:   patientID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return record, nil
}

// ListRecordsForPatient returns the records owned by patientID only.
func (s *RecordService) ListRecordsForPatient(ctx context.Context, patientID string) ([]*models.MedicalRecord, error) {
	if patientID == "" {
		return nil, fmt.Errorf("%w: patient id is required", common.ErrValidation)
	}

	repo := s.repomanager.Records(s.db)

	var result []*models.MedicalRecord
	err := readWithRetry(ctx, s.config, func(ctx context.Context) error {
		var err error
		result, err = repo.ListByPatient(ctx, patientID)
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if result == nil {
		result = []*models.MedicalRecord{}
	}
	return result, nil
}

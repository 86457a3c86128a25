package services

import (
	"context"
	"database/sql"
	"fmt"
	"path"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/server/config"
	"github.com/afyalink/afyalink/internal/server/models"
	"github.com/afyalink/afyalink/internal/server/repositories/repomanager"
	"github.com/afyalink/afyalink/internal/server/storage"
	"github.com/google/uuid"
)

// FileService uploads patient documents to object storage and tracks their
// metadata. The ordering is strict: bytes first, metadata second, so a
// failed upload never leaves an orphan metadata row.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     storage.ObjectStorage
	config      *config.Config
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, store storage.ObjectStorage, cfg *config.Config) *FileService {
	return &FileService{db: db, repomanager: m, storage: store, config: cfg}
}

// StorageKey generates a unique object key scoped under the owning patient:
// "<patient_id>/<uuid><ext>". The prefix makes ownership visible in the
// bucket layout; the uuid rules out collisions.
func StorageKey(patientID, originalName string) string {
	return fmt.Sprintf("%s/%s%s", patientID, uuid.New(), path.Ext(originalName))
}

// UploadPatientFile stores the bytes and then records metadata. A session
// credential is required: there is no anonymous upload path. Retrying after
// a storage failure cannot duplicate metadata, because none was written.
func (s *FileService) UploadPatientFile(ctx context.Context, patientID string, data []byte, originalName, contentType, credential string) (*models.PatientFile, error) {
	if credential == "" {
		return nil, common.ErrCredentialRequired
	}
	if patientID == "" || originalName == "" {
		return nil, fmt.Errorf("%w: patient id and file name are required", common.ErrValidation)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", common.ErrValidation)
	}

	key := StorageKey(patientID, originalName)

	uploadCtx, cancel := storeCtx(ctx, s.config)
	defer cancel()

	if err := s.storage.Upload(uploadCtx, key, data, contentType); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUpload, err)
	}

	opCtx, cancel := storeCtx(ctx, s.config)
	defer cancel()

	repo := s.repomanager.PatientFiles(s.db)
	file, err := repo.Create(opCtx, &models.PatientFile{
		PatientID:    patientID,
		FileName:     key,
		OriginalName: originalName,
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return file, nil
}

// ListPatientFiles returns metadata for patientID's uploads, newest first.
// The requester's ownership of patientID is not verified here; the HTTP
// layer scopes the route to the patient role only.
func (s *FileService) ListPatientFiles(ctx context.Context, patientID string) ([]*models.PatientFile, error) {
	if patientID == "" {
		return nil, fmt.Errorf("%w: patient id is required", common.ErrValidation)
	}

	repo := s.repomanager.PatientFiles(s.db)

	var result []*models.PatientFile
	err := readWithRetry(ctx, s.config, func(ctx context.Context) error {
		var err error
		result, err = repo.ListByPatient(ctx, patientID)
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if result == nil {
		result = []*models.PatientFile{}
	}
	return result, nil
}

// FileURL returns the stable public URL for a stored file.
func (s *FileService) FileURL(key string) string {
	return s.storage.PublicURL(key)
}

// PresignedFileURL returns a temporary download URL for a stored file.
func (s *FileService) PresignedFileURL(ctx context.Context, key string) (string, error) {
	url, err := s.storage.PresignedGetURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrStorageUpload, err)
	}
	return url, nil
}

package patientfiles

import (
	"context"

	"github.com/afyalink/afyalink/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.PatientFile) (*models.PatientFile, error)
	ListByPatient(ctx context.Context, patientID string) ([]*models.PatientFile, error)
}

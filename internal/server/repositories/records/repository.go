package records

import (
	"context"

	"github.com/afyalink/afyalink/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, record *models.MedicalRecord) (*models.MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID string) ([]*models.MedicalRecord, error)
}

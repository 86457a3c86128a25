package patients

import (
	"context"

	"github.com/afyalink/afyalink/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, patient *models.Patient) (*models.Patient, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*models.Patient, error)
	ListAll(ctx context.Context) ([]*models.Patient, error)
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	GetByUserID(ctx context.Context, userID string) (*models.Patient, error)
	Unassign(ctx context.Context, patientID string) error
	Reassign(ctx context.Context, patientID, doctorID string) error
}

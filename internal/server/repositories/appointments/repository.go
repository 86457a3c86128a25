package appointments

import (
	"context"

	"github.com/afyalink/afyalink/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]*models.Appointment, error)
}

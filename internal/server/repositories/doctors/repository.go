package doctors

import (
	"context"

	"github.com/afyalink/afyalink/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, doctor *models.Doctor) (*models.Doctor, error)
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	GetByUserID(ctx context.Context, userID string) (*models.Doctor, error)
	ListAll(ctx context.Context) ([]*models.Doctor, error)
}

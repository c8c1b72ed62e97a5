package videos

import (
	"context"

	"github.com/dmaia/clipstream/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, video *models.Video) (*models.Video, error)
	GetByID(ctx context.Context, id int64) (*models.Video, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Video, error)
}

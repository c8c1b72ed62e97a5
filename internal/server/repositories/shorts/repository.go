package shorts

import (
	"context"

	"github.com/dmaia/clipstream/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, short *models.Short) (*models.Short, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Short, error)
	ListByVideo(ctx context.Context, userID, videoID int64) ([]*models.Short, error)
}

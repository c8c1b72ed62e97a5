package videos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmaia/clipstream/internal/common"
	"github.com/dmaia/clipstream/internal/dbx"
	"github.com/dmaia/clipstream/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, video *models.Video) (*models.Video, error) {

	query :=
		`INSERT INTO videos (user_id, title, description, url, thumbnail_url, metadata)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, status, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		video.UserID, video.Title, video.Description, video.URL, video.ThumbnailURL, video.Metadata).
		Scan(&video.ID, &video.Status, &video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return video, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	query :=
		`SELECT id, user_id, title, COALESCE(description, ''), url, COALESCE(thumbnail_url, ''), status, metadata, created_at, updated_at
		 FROM videos
		 WHERE id = $1
		 `

	video := &models.Video{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&video.ID, &video.UserID, &video.Title, &video.Description, &video.URL,
			&video.ThumbnailURL, &video.Status, &video.Metadata, &video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return video, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Video, error) {
	query :=
		`SELECT id, user_id, title, COALESCE(description, ''), url, COALESCE(thumbnail_url, ''), status, metadata, created_at, updated_at
		 FROM videos
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Video
	for rows.Next() {
		video := &models.Video{}
		if err := rows.Scan(&video.ID, &video.UserID, &video.Title, &video.Description, &video.URL,
			&video.ThumbnailURL, &video.Status, &video.Metadata, &video.CreatedAt, &video.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

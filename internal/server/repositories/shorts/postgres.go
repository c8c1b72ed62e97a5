package shorts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmaia/clipstream/internal/dbx"
	"github.com/dmaia/clipstream/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, short *models.Short) (*models.Short, error) {

	query :=
		`INSERT INTO shorts (user_id, video_id, title, description, metadata)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, status, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		short.UserID, short.VideoID, short.Title, short.Description, short.Metadata).
		Scan(&short.ID, &short.Status, &short.CreatedAt, &short.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return short, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Short, error) {
	query :=
		`SELECT id, user_id, video_id, title, COALESCE(description, ''), status, metadata, created_at, updated_at
		 FROM shorts
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collect(rows)
}

func (r *PostgresRepository) ListByVideo(ctx context.Context, userID, videoID int64) ([]*models.Short, error) {
	query :=
		`SELECT id, user_id, video_id, title, COALESCE(description, ''), status, metadata, created_at, updated_at
		 FROM shorts
		 WHERE user_id = $1 AND video_id = $2
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, videoID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]*models.Short, error) {
	defer rows.Close()

	var result []*models.Short
	for rows.Next() {
		short := &models.Short{}
		if err := rows.Scan(&short.ID, &short.UserID, &short.VideoID, &short.Title, &short.Description,
			&short.Status, &short.Metadata, &short.CreatedAt, &short.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, short)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

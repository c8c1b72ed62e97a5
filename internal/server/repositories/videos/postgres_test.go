package videos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmaia/clipstream/internal/common"
	"github.com/dmaia/clipstream/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+videos\s*\(user_id,\s*title,\s*description,\s*url,\s*thumbnail_url,\s*metadata\)`
const selectByIDQ = `(?s)^SELECT\s+.*\s+FROM\s+videos\s+WHERE\s+id\s*=\s*\$1`
const listByUserQ = `(?s)^SELECT\s+.*\s+FROM\s+videos\s+WHERE\s+user_id\s*=\s*\$1`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	meta := json.RawMessage(`{"codec":"h264"}`)
	rows := sqlmock.NewRows([]string{"id", "status", "created_at", "updated_at"}).
		AddRow(7, "pending", now, now)
	mock.ExpectQuery(insertQ).
		WithArgs(int64(1), "clip", "desc", "https://cdn/x.mp4", "https://cdn/x.jpg", []byte(meta)).
		WillReturnRows(rows)

	v := &models.Video{UserID: 1, Title: "clip", Description: "desc",
		URL: "https://cdn/x.mp4", ThumbnailURL: "https://cdn/x.jpg", Metadata: meta}
	got, err := repo.Create(context.Background(), v)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 || got.Status != "pending" {
		t.Fatalf("unexpected video: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByIDQ).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListByUser_ReturnsAllRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "url", "thumbnail_url", "status", "metadata", "created_at", "updated_at"}).
		AddRow(1, 5, "a", "", "u1", "", "pending", nil, now, now).
		AddRow(2, 5, "b", "d", "u2", "t2", "ready", []byte(`{}`), now, now)
	mock.ExpectQuery(listByUserQ).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "a" || got[1].Status != "ready" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestListByUser_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listByUserQ).
		WithArgs(int64(5)).
		WillReturnError(errors.New("db down"))

	if _, err := repo.ListByUser(context.Background(), 5); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

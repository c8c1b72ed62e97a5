package repomanager

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestManager_HandsOutRepositories(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := NewPostgresRepositoryManager()

	require.NotNil(t, m.Users(db))
	require.NotNil(t, m.Videos(db))
	require.NotNil(t, m.Shorts(db))
}

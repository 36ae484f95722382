package testutil

import (
	"context"
	"testing"

	"board/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteDB_IsMigrated(t *testing.T) {
	db := NewSQLiteDB(t)
	for _, model := range []any{&models.Post{}, &models.Tag{}, &models.Comment{}} {
		assert.True(t, db.Migrator().HasTable(model), "%T table missing", model)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Tag{}, "idx_tags_post_position"))
}

func TestNewRedis(t *testing.T) {
	client, mr := NewRedis(t)
	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

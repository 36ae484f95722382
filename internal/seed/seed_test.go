package seed

import (
	"context"
	"testing"

	"board/internal/likes"
	"board/internal/models"
	"board/internal/repository"
	"board/internal/service"
	"board/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSeeder(t *testing.T, db *gorm.DB, opts Options) (*Seeder, *service.PostService) {
	t.Helper()
	postRepo := repository.NewPostRepository(db, nil)
	counter := likes.NewMemoryCounter()
	posts := service.NewPostService(postRepo, repository.NewTagRepository(db), repository.NewTransactor(db), counter, 0)
	return NewSeeder(db, posts, service.NewLikeService(postRepo, counter), repository.NewCommentRepository(db), opts), posts
}

func TestFactory_BuildPost(t *testing.T) {
	f := NewFactory(Options{RandomSeed: 42, MaxTags: 3})
	vocab := make(map[string]bool, len(tagVocabulary))
	for _, v := range tagVocabulary {
		vocab[v] = true
	}

	for i := 0; i < 50; i++ {
		in := f.BuildPost("kane")
		assert.NotEmpty(t, in.Title)
		assert.LessOrEqual(t, len(in.Title), 300)
		assert.Equal(t, "kane", in.CreatedBy)
		assert.LessOrEqual(t, len(in.Tags), 3)
		for _, tag := range in.Tags {
			assert.True(t, vocab[tag], "tag %q not in vocabulary", tag)
		}
	}
}

func TestFactory_AuthorsAreDistinct(t *testing.T) {
	authors := NewFactory(Options{RandomSeed: 7}).Authors(20)
	require.Len(t, authors, 20)
	seen := make(map[string]bool)
	for _, a := range authors {
		assert.False(t, seen[a], "duplicate author %q", a)
		seen[a] = true
	}
}

func TestSeeder_Run(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	s, posts := newSeeder(t, db, Options{NumPosts: 15, NumAuthors: 4, MaxComments: 2, MaxLikes: 3, RandomSeed: 1})
	ctx := context.Background()

	report, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, report.Posts)

	var postCount, tagCount, commentCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Tag{}).Count(&tagCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	assert.Equal(t, int64(15), postCount)
	assert.Equal(t, int64(report.Tags), tagCount)
	assert.Equal(t, int64(report.Comments), commentCount)

	page, err := posts.FindPage(ctx, models.PageRequest{PageSize: 20}, models.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(15), page.TotalElements)
	var likesSeen int64
	for _, p := range page.Content {
		likesSeen += p.LikeCount
	}
	assert.Equal(t, int64(report.Likes), likesSeen)
}

func TestSeeder_ClearAll(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	s, _ := newSeeder(t, db, Options{NumPosts: 5, RandomSeed: 3})
	ctx := context.Background()
	_, err := s.Run(ctx)
	require.NoError(t, err)

	require.NoError(t, s.ClearAll(ctx))

	for _, model := range []any{&models.Post{}, &models.Tag{}, &models.Comment{}} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%T rows left", model)
	}
}

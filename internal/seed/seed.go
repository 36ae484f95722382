package seed

import (
	"context"
	"fmt"
	"log/slog"

	"board/internal/models"
	"board/internal/observability"
	"board/internal/repository"
	"board/internal/service"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumPosts    int
	NumAuthors  int
	MaxTags     int
	MaxComments int
	MaxLikes    int
	ShouldClean bool
	// RandomSeed makes runs reproducible when non-zero.
	RandomSeed int64
}

func (o Options) withDefaults() Options {
	if o.NumPosts <= 0 {
		o.NumPosts = 100
	}
	if o.NumAuthors <= 0 {
		o.NumAuthors = 10
	}
	if o.MaxTags <= 0 {
		o.MaxTags = 4
	}
	if o.MaxComments < 0 {
		o.MaxComments = 0
	}
	if o.MaxLikes < 0 {
		o.MaxLikes = 0
	}
	return o
}

// Report summarizes what a seeding run created.
type Report struct {
	Posts    int
	Tags     int
	Comments int
	Likes    int
}

// Seeder fills the board through the services.
type Seeder struct {
	db       *gorm.DB
	posts    *service.PostService
	likes    *service.LikeService
	comments repository.CommentRepository
	factory  *Factory
	opts     Options
}

func NewSeeder(
	db *gorm.DB,
	posts *service.PostService,
	likes *service.LikeService,
	comments repository.CommentRepository,
	opts Options,
) *Seeder {
	opts = opts.withDefaults()
	return &Seeder{
		db:       db,
		posts:    posts,
		likes:    likes,
		comments: comments,
		factory:  NewFactory(opts),
		opts:     opts,
	}
}

// ClearAll removes every post with its tags and comments. Like counters are
// left alone; callers reset the counter store separately.
func (s *Seeder) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Tag{}, &models.Comment{}, &models.Post{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// Run creates opts.NumPosts posts with tags, comments and likes.
func (s *Seeder) Run(ctx context.Context) (*Report, error) {
	if s.opts.ShouldClean {
		if err := s.ClearAll(ctx); err != nil {
			return nil, err
		}
	}

	authors := s.factory.Authors(s.opts.NumAuthors)
	report := &Report{}
	for i := 0; i < s.opts.NumPosts; i++ {
		in := s.factory.BuildPost(s.factory.Pick(authors))
		id, err := s.posts.CreatePost(ctx, in)
		if err != nil {
			return report, fmt.Errorf("seed post %d: %w", i, err)
		}
		report.Posts++
		report.Tags += len(in.Tags)

		for c, n := 0, s.factory.Between(0, s.opts.MaxComments); c < n; c++ {
			if err := s.comments.Create(ctx, &models.Comment{
				Content:   s.factory.Comment(),
				PostID:    id,
				CreatedBy: s.factory.Pick(authors),
			}); err != nil {
				return report, fmt.Errorf("seed comment on post %d: %w", id, err)
			}
			report.Comments++
		}

		var count int64
		for l, n := 0, s.factory.Between(0, s.opts.MaxLikes); l < n; l++ {
			count, err = s.likes.CreateLike(ctx, id, s.factory.Pick(authors))
			if err != nil {
				return report, fmt.Errorf("seed like on post %d: %w", id, err)
			}
		}
		report.Likes += int(count)
	}

	observability.Logger.InfoContext(ctx, "seeding completed",
		slog.Int("posts", report.Posts),
		slog.Int("tags", report.Tags),
		slog.Int("comments", report.Comments),
		slog.Int("likes", report.Likes),
	)
	return report, nil
}

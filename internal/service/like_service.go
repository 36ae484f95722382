package service

import (
	"context"
	"log/slog"
	"strings"

	"board/internal/likes"
	"board/internal/models"
	"board/internal/observability"
	"board/internal/repository"
)

// LikeService records likes on existing posts.
type LikeService struct {
	postRepo repository.PostRepository
	likes    likes.Counter
}

func NewLikeService(postRepo repository.PostRepository, counter likes.Counter) *LikeService {
	return &LikeService{postRepo: postRepo, likes: counter}
}

// CreateLike counts likerID's like on postID once and returns the post's like
// count afterwards.
func (s *LikeService) CreateLike(ctx context.Context, postID uint, likerID string) (int64, error) {
	if err := s.requirePost(ctx, postID, likerID); err != nil {
		return 0, err
	}
	added, err := s.likes.Increment(ctx, postID, likerID)
	if err != nil {
		return 0, err
	}
	if added {
		observability.Logger.DebugContext(ctx, "post liked",
			slog.Uint64("post_id", uint64(postID)),
			slog.String("liker", likerID),
		)
	}
	return s.likes.Count(ctx, postID)
}

// RemoveLike withdraws likerID's like on postID, if any, and returns the post's
// like count afterwards.
func (s *LikeService) RemoveLike(ctx context.Context, postID uint, likerID string) (int64, error) {
	if err := s.requirePost(ctx, postID, likerID); err != nil {
		return 0, err
	}
	if _, err := s.likes.Decrement(ctx, postID, likerID); err != nil {
		return 0, err
	}
	return s.likes.Count(ctx, postID)
}

func (s *LikeService) requirePost(ctx context.Context, postID uint, likerID string) error {
	if strings.TrimSpace(likerID) == "" {
		return models.NewValidationError("liker is required")
	}
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewPostNotFoundError(postID)
	}
	return nil
}

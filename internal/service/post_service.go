package service

import (
	"context"
	"log/slog"
	"time"

	"board/internal/likes"
	"board/internal/models"
	"board/internal/observability"
	"board/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultMaxPageSize bounds FindPage when no limit is configured.
const DefaultMaxPageSize = 100

// PostService composes the post store and the like counter into the post
// operations used by the presentation layer.
type PostService struct {
	postRepo    repository.PostRepository
	tagRepo     repository.TagRepository
	tx          repository.Transactor
	likes       likes.Counter
	maxPageSize int
	locks       *keyedMutex
}

type CreatePostInput struct {
	Title     string   `validate:"notblank,max=300"`
	Content   string   `validate:"max=50000"`
	CreatedBy string   `validate:"notblank"`
	Tags      []string `validate:"dive,notblank,max=50"`
}

// UpdatePostInput replaces a post's title and content. A nil Tags leaves the
// tags untouched; a non-nil empty Tags removes them all.
type UpdatePostInput struct {
	Title     string `validate:"notblank,max=300"`
	Content   string `validate:"max=50000"`
	UpdatedBy string
	Tags      []string `validate:"dive,notblank,max=50"`
}

// CommentDetail is a comment as shown with its post.
type CommentDetail struct {
	Content   string `json:"content"`
	CreatedBy string `json:"created_by"`
}

// PostDetail is the full view of one post.
type PostDetail struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	Tags      []string        `json:"tags"`
	Comments  []CommentDetail `json:"comments"`
	LikeCount int64           `json:"like_count"`
}

// PostSummary is one entry of a post search page.
type PostSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	FirstTag  *string   `json:"first_tag,omitempty"`
	LikeCount int64     `json:"like_count"`
}

// NewPostService wires the store and like counter. Post and tag writes of one
// operation commit together through tx. maxPageSize <= 0 selects
// DefaultMaxPageSize.
func NewPostService(
	postRepo repository.PostRepository,
	tagRepo repository.TagRepository,
	tx repository.Transactor,
	counter likes.Counter,
	maxPageSize int,
) *PostService {
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}
	return &PostService{
		postRepo:    postRepo,
		tagRepo:     tagRepo,
		tx:          tx,
		likes:       counter,
		maxPageSize: maxPageSize,
		locks:       newKeyedMutex(),
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (_ uint, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.CreatePost",
		attribute.String("post.created_by", in.CreatedBy),
		attribute.Int("post.tag_count", len(in.Tags)),
	)
	defer func() {
		recordMutation("create", err)
		observability.EndSpan(span, err)
	}()

	if err := validateInput(in); err != nil {
		return 0, err
	}

	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		CreatedBy: in.CreatedBy,
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.postRepo.Create(ctx, post); err != nil {
			return err
		}
		if len(in.Tags) == 0 {
			return nil
		}
		_, err := s.tagRepo.Apply(ctx, ReconcileTags(post.ID, nil, in.Tags, in.CreatedBy))
		return err
	})
	if err != nil {
		return 0, err
	}

	observability.Logger.InfoContext(ctx, "post created",
		slog.Uint64("post_id", uint64(post.ID)),
		slog.String("created_by", post.CreatedBy),
	)
	return post.ID, nil
}

// UpdatePost overwrites title and content and, when in.Tags is non-nil,
// reconciles the tag sequence. Only the author may update a post.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in UpdatePostInput) (_ uint, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.UpdatePost",
		attribute.Int64("post.id", int64(id)),
		attribute.Bool("post.tags_provided", in.Tags != nil),
	)
	defer func() {
		recordMutation("update", err)
		observability.EndSpan(span, err)
	}()

	if err := validateInput(in); err != nil {
		return 0, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if post.CreatedBy != in.UpdatedBy {
		return 0, models.NewPostNotUpdatableError(id)
	}

	post.Title = in.Title
	post.Content = in.Content
	post.UpdatedBy = in.UpdatedBy
	post.UpdatedAt = time.Now()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.postRepo.Update(ctx, post); err != nil {
			return err
		}
		if in.Tags == nil {
			return nil
		}
		_, err := s.tagRepo.Apply(ctx, ReconcileTags(id, post.Tags, in.Tags, in.UpdatedBy))
		return err
	})
	if err != nil {
		return 0, err
	}

	observability.Logger.InfoContext(ctx, "post updated",
		slog.Uint64("post_id", uint64(id)),
		slog.String("updated_by", in.UpdatedBy),
	)
	return id, nil
}

// DeletePost removes a post with its tags and comments. Only the author may
// delete a post.
func (s *PostService) DeletePost(ctx context.Context, id uint, requestedBy string) (_ uint, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.DeletePost",
		attribute.Int64("post.id", int64(id)),
	)
	defer func() {
		recordMutation("delete", err)
		observability.EndSpan(span, err)
	}()

	unlock := s.locks.Lock(id)
	defer unlock()

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if post.CreatedBy != requestedBy {
		return 0, models.NewPostNotDeletableError(id)
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return 0, err
	}

	// Stale counters only cost memory; the post is already gone.
	if err := s.likes.Forget(ctx, id); err != nil {
		observability.Logger.WarnContext(ctx, "failed to drop like counter",
			slog.Uint64("post_id", uint64(id)),
			slog.String("error", err.Error()),
		)
	}

	observability.Logger.InfoContext(ctx, "post deleted",
		slog.Uint64("post_id", uint64(id)),
		slog.String("deleted_by", requestedBy),
	)
	return id, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (_ *PostDetail, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.GetPost",
		attribute.Int64("post.id", int64(id)),
	)
	defer func() { observability.EndSpan(span, err) }()

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.likes.Count(ctx, id)
	if err != nil {
		return nil, err
	}

	comments := make([]CommentDetail, len(post.Comments))
	for i, c := range post.Comments {
		comments[i] = CommentDetail{Content: c.Content, CreatedBy: c.CreatedBy}
	}
	return &PostDetail{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedBy: post.CreatedBy,
		CreatedAt: post.CreatedAt,
		Tags:      post.TagNames(),
		Comments:  comments,
		LikeCount: count,
	}, nil
}

// FindPage searches posts newest first. Like counts for the whole page come
// from a single batched counter lookup.
func (s *PostService) FindPage(ctx context.Context, req models.PageRequest, filter models.PostFilter) (_ *models.Page[PostSummary], err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.FindPage",
		attribute.Int("page.number", req.PageNumber),
		attribute.Int("page.size", req.PageSize),
		attribute.String("filter.tag", filter.Tag),
	)
	defer func() { observability.EndSpan(span, err) }()

	if req.PageNumber < 0 {
		return nil, models.NewValidationError("page number must not be negative")
	}
	if req.PageSize < 1 {
		return nil, models.NewValidationError("page size must be at least 1")
	}
	if req.PageSize > s.maxPageSize {
		req.PageSize = s.maxPageSize
	}

	rows, total, err := s.postRepo.FindPage(ctx, req, filter)
	if err != nil {
		return nil, err
	}

	page := &models.Page[PostSummary]{
		Content:       make([]PostSummary, len(rows)),
		Number:        req.PageNumber,
		Size:          req.PageSize,
		TotalElements: total,
	}
	if len(rows) == 0 {
		return page, nil
	}

	ids := make([]uint, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	counts, err := s.likes.CountBatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i, r := range rows {
		page.Content[i] = PostSummary{
			ID:        r.ID,
			Title:     r.Title,
			CreatedBy: r.CreatedBy,
			CreatedAt: r.CreatedAt,
			FirstTag:  r.FirstTag,
			LikeCount: counts[r.ID],
		}
	}
	return page, nil
}

func recordMutation(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = models.ErrorKind(err)
	}
	observability.PostMutations.WithLabelValues(op, outcome).Inc()
}

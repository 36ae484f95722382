// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"board/internal/models"
	"board/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// GetByID loads a post with its tags (position order) and comments (creation order).
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	// Update writes the scalar columns only; tags and comments are untouched.
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post with its tags and comments.
	Delete(ctx context.Context, id uint) error
	// FindPage returns one row per matching post, newest first, and the total match count.
	FindPage(ctx context.Context, page models.PageRequest, filter models.PostFilter) ([]models.PostSummaryRow, int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db     *gorm.DB
	readDB *gorm.DB
	log    *observability.RepoLogger
}

// NewPostRepository creates a new post repository. Searches run on readDB when
// it is non-nil.
func NewPostRepository(db, readDB *gorm.DB) PostRepository {
	if readDB == nil {
		readDB = db
	}
	return &postRepository{db: db, readDB: readDB, log: observability.NewRepoLogger("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()
	if err := conn(ctx, r.db).Omit("Tags", "Comments").Create(post).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return translatePostError(err, post.ID, "create")
	}
	r.log.LogCreate(ctx, map[string]any{"post_id": post.ID, "created_by": post.CreatedBy})
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get", "posts")()
	var post models.Post
	err := conn(ctx, r.db).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.position ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id ASC")
		}).
		First(&post, id).Error
	if err != nil {
		return nil, translatePostError(err, id, "get")
	}
	return &post, nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	defer observability.TrackQuery("exists", "posts")()
	var count int64
	if err := conn(ctx, r.db).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translatePostError(err, id, "exists")
	}
	return count > 0, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = time.Now()
	}
	result := conn(ctx, r.db).
		Model(&models.Post{ID: post.ID}).
		Updates(map[string]any{
			"title":      post.Title,
			"content":    post.Content,
			"updated_by": post.UpdatedBy,
			"updated_at": post.UpdatedAt,
		})
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "update")
		return translatePostError(result.Error, post.ID, "update")
	}
	if result.RowsAffected == 0 {
		return models.NewPostNotFoundError(post.ID)
	}
	r.log.LogUpdate(ctx, map[string]any{"post_id": post.ID, "updated_by": post.UpdatedBy})
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		r.log.LogError(ctx, err, "delete")
		return translatePostError(err, id, "delete")
	}
	r.log.LogDelete(ctx, map[string]any{"post_id": id})
	return nil
}

// firstTagColumn selects the lowest-position tag name of each post.
const firstTagColumn = "(SELECT tags.name FROM tags WHERE tags.post_id = posts.id ORDER BY tags.position ASC LIMIT 1) AS first_tag"

func (r *postRepository) FindPage(ctx context.Context, page models.PageRequest, filter models.PostFilter) ([]models.PostSummaryRow, int64, error) {
	defer observability.TrackQuery("find_page", "posts")()

	var total int64
	if err := applyPostFilter(r.readDB.WithContext(ctx).Model(&models.Post{}), filter).
		Count(&total).Error; err != nil {
		r.log.LogError(ctx, err, "count")
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	rows := make([]models.PostSummaryRow, 0, page.PageSize)
	if total == 0 || int64(page.Offset()) >= total {
		return rows, total, nil
	}

	err := applyPostFilter(r.readDB.WithContext(ctx).Model(&models.Post{}), filter).
		Select("posts.id, posts.title, posts.created_by, posts.created_at, " + firstTagColumn).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Scan(&rows).Error
	if err != nil {
		r.log.LogError(ctx, err, "find_page")
		return nil, 0, fmt.Errorf("find post page: %w", err)
	}
	return rows, total, nil
}

// applyPostFilter adds the conjunctive search conditions. The tag condition is a
// semi-join so a post matches at most once however many of its tags match.
func applyPostFilter(db *gorm.DB, filter models.PostFilter) *gorm.DB {
	if filter.Title != "" {
		db = db.Where(`posts.title LIKE ? ESCAPE '\'`, "%"+escapeLike(filter.Title)+"%")
	}
	if filter.CreatedBy != "" {
		db = db.Where("posts.created_by = ?", filter.CreatedBy)
	}
	if filter.Tag != "" {
		db = db.Where("EXISTS (SELECT 1 FROM tags WHERE tags.post_id = posts.id AND tags.name = ?)", filter.Tag)
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

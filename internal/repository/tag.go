package repository

import (
	"context"
	"time"

	"board/internal/models"
	"board/internal/observability"

	"gorm.io/gorm"
)

// TagRepository stores the ordered tag sequence of each post.
type TagRepository interface {
	ListByPost(ctx context.Context, postID uint) ([]models.Tag, error)
	// Apply executes plan in one transaction, joining the caller's transaction
	// when ctx carries one, and returns the resulting sequence
	// with ids assigned.
	Apply(ctx context.Context, plan models.TagPlan) ([]models.Tag, error)
}

type tagRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db, log: observability.NewRepoLogger("tags")}
}

func (r *tagRepository) ListByPost(ctx context.Context, postID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := conn(ctx, r.db).
		Where("post_id = ?", postID).
		Order("position ASC").
		Find(&tags).Error
	if err != nil {
		return nil, translatePostError(err, postID, "list tags of")
	}
	return tags, nil
}

func (r *tagRepository) Apply(ctx context.Context, plan models.TagPlan) ([]models.Tag, error) {
	result := append([]models.Tag(nil), plan.Tags...)
	if plan.Empty() {
		return result, nil
	}
	defer observability.TrackQuery("apply", "tags")()

	created := append([]models.Tag(nil), plan.Create...)
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if len(plan.Delete) > 0 {
			ids := make([]uint, len(plan.Delete))
			for i, t := range plan.Delete {
				ids[i] = t.ID
			}
			if err := tx.Where("post_id = ? AND id IN ?", plan.PostID, ids).Delete(&models.Tag{}).Error; err != nil {
				return err
			}
		}
		now := time.Now()
		for _, t := range plan.Rename {
			if err := tx.Model(&models.Tag{ID: t.ID}).Updates(map[string]any{
				"name":       t.Name,
				"updated_by": t.UpdatedBy,
				"updated_at": now,
			}).Error; err != nil {
				return err
			}
		}
		if len(created) > 0 {
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.log.LogError(ctx, err, "apply")
		return nil, translatePostError(err, plan.PostID, "reconcile tags of")
	}

	for _, t := range created {
		if t.Position >= 0 && t.Position < len(result) {
			result[t.Position] = t
		}
	}
	r.log.LogUpdate(ctx, map[string]any{
		"post_id": plan.PostID,
		"created": len(plan.Create),
		"renamed": len(plan.Rename),
		"deleted": len(plan.Delete),
	})
	return result, nil
}

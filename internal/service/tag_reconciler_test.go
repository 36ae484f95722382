package service

import (
	"testing"

	"board/internal/models"

	"github.com/stretchr/testify/assert"
)

func storedTags(postID uint, names ...string) []models.Tag {
	tags := make([]models.Tag, len(names))
	for i, name := range names {
		tags[i] = models.Tag{ID: uint(i + 1), Name: name, PostID: postID, Position: i, CreatedBy: "author"}
	}
	return tags
}

func ids(tags []models.Tag) []uint {
	out := make([]uint, len(tags))
	for i, t := range tags {
		out[i] = t.ID
	}
	return out
}

func TestReconcileTags(t *testing.T) {
	tests := []struct {
		name        string
		current     []string
		desired     []string
		wantIDs     []uint
		wantCreate  []string
		wantRenamed []uint
		wantDeleted []uint
	}{
		{
			name:       "create from nothing",
			desired:    []string{"a", "b"},
			wantIDs:    []uint{0, 0},
			wantCreate: []string{"a", "b"},
		},
		{
			name:    "unchanged",
			current: []string{"a", "b", "c"},
			desired: []string{"a", "b", "c"},
			wantIDs: []uint{1, 2, 3},
		},
		{
			name:        "rename keeps identity",
			current:     []string{"a", "b", "c"},
			desired:     []string{"x", "b", "c"},
			wantIDs:     []uint{1, 2, 3},
			wantRenamed: []uint{1},
		},
		{
			name:        "reorder renames ends",
			current:     []string{"t1", "t2", "t3"},
			desired:     []string{"t3", "t2", "t1"},
			wantIDs:     []uint{1, 2, 3},
			wantRenamed: []uint{1, 3},
		},
		{
			name:       "append",
			current:    []string{"a"},
			desired:    []string{"a", "b", "b"},
			wantIDs:    []uint{1, 0, 0},
			wantCreate: []string{"b", "b"},
		},
		{
			name:        "truncate",
			current:     []string{"a", "b", "c"},
			desired:     []string{"a"},
			wantIDs:     []uint{1},
			wantDeleted: []uint{2, 3},
		},
		{
			name:        "clear",
			current:     []string{"a", "b"},
			desired:     []string{},
			wantIDs:     []uint{},
			wantDeleted: []uint{1, 2},
		},
		{
			name:        "rename and truncate",
			current:     []string{"a", "b", "c"},
			desired:     []string{"b"},
			wantIDs:     []uint{1},
			wantRenamed: []uint{1},
			wantDeleted: []uint{2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := storedTags(7, tt.current...)
			plan := ReconcileTags(7, current, tt.desired, "editor")

			assert.Equal(t, uint(7), plan.PostID)
			assert.Equal(t, tt.desired, plan.Names())
			assert.Equal(t, tt.wantIDs, ids(plan.Tags))
			for i, tag := range plan.Tags {
				assert.Equal(t, i, tag.Position)
				assert.Equal(t, uint(7), tag.PostID)
			}

			var created []string
			for _, c := range plan.Create {
				created = append(created, c.Name)
				assert.Equal(t, "editor", c.CreatedBy)
			}
			assert.Equal(t, tt.wantCreate, created)

			var renamed []uint
			for _, r := range plan.Rename {
				renamed = append(renamed, r.ID)
				assert.Equal(t, "author", r.CreatedBy)
				assert.Equal(t, "editor", r.UpdatedBy)
			}
			assert.Equal(t, tt.wantRenamed, renamed)

			var deleted []uint
			for _, d := range plan.Delete {
				deleted = append(deleted, d.ID)
			}
			assert.Equal(t, tt.wantDeleted, deleted)

			changed := tt.wantCreate != nil || tt.wantRenamed != nil || tt.wantDeleted != nil
			assert.Equal(t, !changed, plan.Empty())
		})
	}
}

func TestReconcileTags_DoesNotMutateInput(t *testing.T) {
	current := storedTags(1, "a", "b")
	ReconcileTags(1, current, []string{"x"}, "editor")

	assert.Equal(t, "a", current[0].Name)
	assert.Empty(t, current[0].UpdatedBy)
	assert.Equal(t, "b", current[1].Name)
}

package service

import "board/internal/models"

// ReconcileTags diffs a post's stored tags against the desired name sequence by
// position. current must be in position order with positions 0..len-1.
//
// Within the overlap a changed name is renamed in place, so the tag keeps its
// ID, position and author. Extra desired names are appended as new tags owned by
// actor, and surplus trailing tags are deleted. An empty desired sequence
// deletes every tag. Duplicate names are allowed.
func ReconcileTags(postID uint, current []models.Tag, desired []string, actor string) models.TagPlan {
	plan := models.TagPlan{
		PostID: postID,
		Tags:   make([]models.Tag, 0, len(desired)),
	}

	for i, name := range desired {
		if i < len(current) {
			tag := current[i]
			if tag.Name != name {
				tag.Name = name
				tag.UpdatedBy = actor
				plan.Rename = append(plan.Rename, tag)
			}
			plan.Tags = append(plan.Tags, tag)
			continue
		}
		tag := models.Tag{
			Name:      name,
			PostID:    postID,
			Position:  i,
			CreatedBy: actor,
		}
		plan.Create = append(plan.Create, tag)
		plan.Tags = append(plan.Tags, tag)
	}

	if len(current) > len(desired) {
		plan.Delete = append(plan.Delete, current[len(desired):]...)
	}
	return plan
}

// Package likes is the gateway to the fast counter store that holds per-post
// like counts. Counts are eventually consistent with recent writes; a post
// without an entry has zero likes.
package likes

import "context"

// Counter counts likes per post. A (post, liker) pair is counted at most once.
type Counter interface {
	// Increment counts likerID's like on postID. It reports false when the
	// pair was already counted.
	Increment(ctx context.Context, postID uint, likerID string) (bool, error)
	// Decrement removes likerID's like on postID. It reports false when the
	// pair was not counted.
	Decrement(ctx context.Context, postID uint, likerID string) (bool, error)
	// Count returns the like count for one post.
	Count(ctx context.Context, postID uint) (int64, error)
	// CountBatch returns a count for every id in postIDs in a single round trip.
	CountBatch(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	// Forget drops all counter state for a post.
	Forget(ctx context.Context, postID uint) error
}

package cache

import "fmt"

// The post id is a hash tag so both keys of one post land in the same
// cluster slot.
const (
	LikeCountKeyPattern = "%spost:{%d}:likes"
	LikersKeyPattern    = "%spost:{%d}:likers"
)

// LikeCountKey is the counter holding the number of likes for a post.
func LikeCountKey(prefix string, postID uint) string {
	return fmt.Sprintf(LikeCountKeyPattern, prefix, postID)
}

// LikersKey is the set of liker ids already counted for a post.
func LikersKey(prefix string, postID uint) string {
	return fmt.Sprintf(LikersKeyPattern, prefix, postID)
}

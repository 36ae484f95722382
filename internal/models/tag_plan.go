package models

// TagPlan is the set of changes that turns a post's stored tags into a desired
// name sequence. Tags is the resulting sequence in position order; entries that
// come from Create have a zero ID until the plan is applied.
type TagPlan struct {
	PostID uint
	Tags   []Tag
	Create []Tag
	Rename []Tag
	Delete []Tag
}

// Empty reports whether applying the plan would change nothing.
func (p TagPlan) Empty() bool {
	return len(p.Create) == 0 && len(p.Rename) == 0 && len(p.Delete) == 0
}

// Names returns the tag names of the resulting sequence.
func (p TagPlan) Names() []string {
	names := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		names[i] = t.Name
	}
	return names
}

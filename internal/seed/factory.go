// Package seed provides helpers to create demo data for the board. Everything
// goes through the post and like services so seeded data obeys the same rules
// as real traffic. These helpers are intended for development and testing only.
package seed

import (
	"time"

	"board/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// tagVocabulary is the pool seeded tags are drawn from. It is small on purpose
// so tag searches return several posts.
var tagVocabulary = []string{
	"go", "postgres", "redis", "rust", "python", "docker", "linux", "devops",
	"frontend", "backend", "testing", "career", "books", "music", "games",
}

// Factory builds service inputs filled with fake content.
type Factory struct {
	faker *gofakeit.Faker
	opts  Options
}

// NewFactory creates a Factory. A zero opts.RandomSeed seeds from the clock.
func NewFactory(opts Options) *Factory {
	seed := opts.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{faker: gofakeit.New(seed), opts: opts.withDefaults()}
}

// Authors returns n distinct author names.
func (f *Factory) Authors(n int) []string {
	seen := make(map[string]struct{}, n)
	authors := make([]string, 0, n)
	for len(authors) < n {
		name := f.faker.Username()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		authors = append(authors, name)
	}
	return authors
}

// BuildPost returns a create input by author with 0..MaxTags tags. Tag names
// may repeat within a post.
func (f *Factory) BuildPost(author string) service.CreatePostInput {
	in := service.CreatePostInput{
		Title:     f.faker.Sentence(5),
		Content:   f.faker.Paragraph(1, 3, 8, "\n"),
		CreatedBy: author,
	}
	for i, n := 0, f.faker.Number(0, f.opts.MaxTags); i < n; i++ {
		in.Tags = append(in.Tags, f.faker.RandomString(tagVocabulary))
	}
	return in
}

// Comment returns fake comment content.
func (f *Factory) Comment() string {
	return f.faker.Sentence(f.faker.Number(3, 12))
}

// Pick returns a random element of names.
func (f *Factory) Pick(names []string) string {
	return f.faker.RandomString(names)
}

// Between returns a random int in [lo, hi].
func (f *Factory) Between(lo, hi int) int {
	return f.faker.Number(lo, hi)
}

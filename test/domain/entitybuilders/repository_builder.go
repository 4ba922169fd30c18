//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
)

const (
	defaultName  = "legacy-service"
	defaultOwner = "my-org"
)

// defaultPushedAt is the push date of repositories built without WithPushedAt.
var defaultPushedAt = time.Date(2019, time.May, 1, 10, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // builder default

// RepositoryBuilder helps create test repositories with a fluent interface.
type RepositoryBuilder struct {
	*testkit.BaseBuilder
	name     string
	url      string
	pushedAt time.Time
	owner    string
}

// NewRepositoryBuilder creates a new repository builder with sensible defaults.
func NewRepositoryBuilder() *RepositoryBuilder {
	return &RepositoryBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        defaultName,
		pushedAt:    defaultPushedAt,
		owner:       defaultOwner,
	}
}

// WithName sets the repository name.
func (b *RepositoryBuilder) WithName(name string) *RepositoryBuilder {
	b.name = name
	return b
}

// WithURL sets the clone URL. By default it is derived from owner and name.
func (b *RepositoryBuilder) WithURL(url string) *RepositoryBuilder {
	b.url = url
	return b
}

// WithPushedAt sets the last push date.
func (b *RepositoryBuilder) WithPushedAt(pushedAt time.Time) *RepositoryBuilder {
	b.pushedAt = pushedAt
	return b
}

// WithOwner sets the owner login.
func (b *RepositoryBuilder) WithOwner(owner string) *RepositoryBuilder {
	b.owner = owner
	return b
}

// Build creates the repository (satisfies testkit.Builder interface).
func (b *RepositoryBuilder) Build() interface{} {
	return b.BuildRepository()
}

// BuildRepository creates the repository with a concrete return type.
func (b *RepositoryBuilder) BuildRepository() entities.Repository {
	url := b.url
	if url == "" {
		url = "https://github.com/" + b.owner + "/" + b.name
	}
	return entities.Repository{
		Name:     b.name,
		URL:      url,
		PushedAt: b.pushedAt,
		Owner:    b.owner,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = defaultName
	b.url = ""
	b.pushedAt = defaultPushedAt
	b.owner = defaultOwner
	return b
}

// Clone creates a deep copy of the RepositoryBuilder.
func (b *RepositoryBuilder) Clone() testkit.Builder {
	return &RepositoryBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		url:         b.url,
		pushedAt:    b.pushedAt,
		owner:       b.owner,
	}
}

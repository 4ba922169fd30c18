package repositories

import (
	"context"
	"iter"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
)

// SourceControlRepository abstracts the Git hosting service that owns the
// repositories to archive.
type SourceControlRepository interface {
	// ListRepositories lazily enumerates the repositories of an organization,
	// in server order. Pages are fetched only when the previous one has been
	// consumed, so stopping the range early issues no further request.
	// The sequence ends after the first non-nil error.
	ListRepositories(
		ctx context.Context,
		credentials entities.SourceControlCredentials,
		organization string,
		pageSize int,
	) iter.Seq2[entities.Repository, error]

	// DeleteRepository permanently deletes owner/name. Any non-2xx response
	// is returned as an *entities.RemoteAPIError.
	DeleteRepository(
		ctx context.Context,
		credentials entities.SourceControlCredentials,
		owner, name string,
	) error
}

//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"iter"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	"github.com/rios0rios0/repoarchiver/internal/domain/repositories"
)

// SpySourceControlRepository implements repositories.SourceControlRepository as a configurable spy.
type SpySourceControlRepository struct {
	Log *CallLog

	// --- ListRepositories ---
	Repositories []entities.Repository
	ListErr      error // yielded after every repository
	ListedOrgs   []string
	PageSizes    []int
	Yielded      int

	// --- DeleteRepository ---
	DeleteErr  error
	Deleted    []string // owner/name
	DeleteAuth []entities.SourceControlCredentials
}

var _ repositories.SourceControlRepository = (*SpySourceControlRepository)(nil)

func (s *SpySourceControlRepository) ListRepositories(
	_ context.Context,
	_ entities.SourceControlCredentials,
	organization string,
	pageSize int,
) iter.Seq2[entities.Repository, error] {
	s.ListedOrgs = append(s.ListedOrgs, organization)
	s.PageSizes = append(s.PageSizes, pageSize)
	return func(yield func(entities.Repository, error) bool) {
		for _, repo := range s.Repositories {
			s.Yielded++
			if !yield(repo, nil) {
				return
			}
		}
		if s.ListErr != nil {
			yield(entities.Repository{}, s.ListErr)
		}
	}
}

func (s *SpySourceControlRepository) DeleteRepository(
	_ context.Context,
	credentials entities.SourceControlCredentials,
	owner, name string,
) error {
	s.Log.Record("delete " + owner + "/" + name)
	s.Deleted = append(s.Deleted, owner+"/"+name)
	s.DeleteAuth = append(s.DeleteAuth, credentials)
	return s.DeleteErr
}

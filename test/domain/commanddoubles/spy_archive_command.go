//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repoarchiver/internal/domain/commands"
	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	doubles "github.com/rios0rios0/repoarchiver/test/infrastructure/repositorydoubles"
)

// SpyArchiveCommand is a spy implementation of commands.Archive.
type SpyArchiveCommand struct {
	Log *doubles.CallLog

	Archived   []entities.Repository
	ExecuteErr error
}

var _ commands.Archive = (*SpyArchiveCommand)(nil)

func (s *SpyArchiveCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	repo entities.Repository,
) error {
	s.Log.Record("archive " + repo.Name)
	s.Archived = append(s.Archived, repo)
	return s.ExecuteErr
}

//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repoarchiver/internal/domain/commands"
	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
)

// StubRunCommand is a stub implementation of commands.Run.
type StubRunCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
}

var _ commands.Run = (*StubRunCommand)(nil)

func (s *StubRunCommand) Execute(_ context.Context, settings *entities.Settings) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.ExecuteErr
}

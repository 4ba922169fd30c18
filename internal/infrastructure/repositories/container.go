package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/repoarchiver/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/repoarchiver/internal/infrastructure/repositories/gitclone"
	"github.com/rios0rios0/repoarchiver/internal/infrastructure/repositories/googledrive"
	"github.com/rios0rios0/repoarchiver/internal/infrastructure/repositories/terminal"
	"github.com/rios0rios0/repoarchiver/internal/infrastructure/repositories/ziparchive"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	providers := []any{
		github.NewSourceControlRepository,
		terminal.NewStdPromptRepository,
		googledrive.NewOAuthRepository,
		googledrive.NewStorageRepository,
		gitclone.NewCloneRepository,
		ziparchive.NewArchiveRepository,
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}
	return nil
}

package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	"github.com/rios0rios0/repoarchiver/internal/domain/repositories"
)

const tempDirMode = 0o700

// Run is the interface for the run command.
type Run interface {
	Execute(ctx context.Context, settings *entities.Settings) error
}

// RunCommand orchestrates the full decommission flow:
// list repositories -> ask the operator -> archive the chosen ones.
type RunCommand struct {
	sourceControl repositories.SourceControlRepository
	prompt        repositories.PromptRepository
	archive       Archive
}

// NewRunCommand creates a new RunCommand.
func NewRunCommand(
	sourceControl repositories.SourceControlRepository,
	prompt repositories.PromptRepository,
	archive Archive,
) *RunCommand {
	return &RunCommand{
		sourceControl: sourceControl,
		prompt:        prompt,
		archive:       archive,
	}
}

// Execute walks the organization's repositories in the order they are listed.
// A repository is fully archived before the next one is looked at, and the
// first error aborts the run. Repositories already archived stay archived.
func (it *RunCommand) Execute(ctx context.Context, settings *entities.Settings) error {
	if err := os.MkdirAll(settings.TempDir, tempDirMode); err != nil {
		return &entities.LocalToolError{Tool: "temp dir", Path: settings.TempDir, Err: err}
	}
	if settings.SweepStale {
		SweepStaleArtifacts(settings.TempDir)
	}

	listed, archived, skipped := 0, 0, 0
	repos := it.sourceControl.ListRepositories(ctx, settings.Credentials, settings.Organization, settings.PageSize)
	for repo, err := range repos {
		if err != nil {
			return fmt.Errorf("failed to list repositories of %q: %w", settings.Organization, err)
		}
		listed++

		disposition, err := it.askDisposition(repo)
		if err != nil {
			return err
		}
		if disposition == entities.DispositionSkip {
			skipped++
			continue
		}

		if archiveErr := it.archive.Execute(ctx, settings, repo); archiveErr != nil {
			return fmt.Errorf("failed to archive %s: %w", repo.FullName(), archiveErr)
		}
		archived++
	}

	logger.Infof(
		"Run complete: %d repositories listed, %d archived, %d skipped",
		listed, archived, skipped,
	)
	return nil
}

func (it *RunCommand) askDisposition(repo entities.Repository) (entities.Disposition, error) {
	question := fmt.Sprintf(
		"What should I do with %s (last pushed to on %s)? (A)rchive, (S)kip: ",
		repo.Name, repo.PushedAt.Local().Format(time.RFC1123),
	)
	answer, err := it.prompt.Choose(question, entities.DispositionHotkeys())
	if err != nil {
		return "", err
	}
	return entities.ParseDisposition(answer)
}

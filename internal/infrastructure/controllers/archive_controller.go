package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repoarchiver/internal/domain/commands"
	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
)

// ArchiveController is the interactive decommission session behind the root command.
type ArchiveController struct {
	command commands.Run
	load    entities.SettingsLoader
}

// NewArchiveController creates a new ArchiveController.
func NewArchiveController(command commands.Run, load entities.SettingsLoader) *ArchiveController {
	return &ArchiveController{command: command, load: load}
}

// GetBind returns the Cobra command metadata for the archive controller.
func (it *ArchiveController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "repoarchiver",
		Short: "Archive old GitHub organization repositories to Google Drive",
		Long: `List every repository of a GitHub organization, least recently pushed first,
and ask what to do with each one. Archived repositories are cloned, zipped,
uploaded to Google Drive and then deleted from GitHub.

Configuration is read from the environment (ORG_USERNAME, ORG_TOKEN, ORG_NAME,
PAGE_SIZE, DRIVE_ID, DRIVE_FOLDER_ID, GOOGLE_CREDENTIALS_FILE, GOOGLE_TOKEN_FILE,
ARCHIVE_TEMP_DIR, SWEEP_STALE_ARTIFACTS), optionally on top of ./repoarchiver.yaml or
$XDG_CONFIG_HOME/repoarchiver/config.yaml.`,
	}
}

// Execute loads the settings and runs the session. Settings are validated
// before anything reaches the network.
func (it *ArchiveController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := it.load()
	if err != nil {
		return err
	}

	logger.Infof("Listing repositories of %q, %d per page", settings.Organization, settings.PageSize)
	return it.command.Execute(cmd.Context(), settings)
}

package commands

import (
	"context"
	"errors"
	"os"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	"github.com/rios0rios0/repoarchiver/internal/domain/repositories"
)

// Archive is the interface for the per-repository archive pipeline.
type Archive interface {
	Execute(ctx context.Context, settings *entities.Settings, repo entities.Repository) error
}

// ArchiveCommand runs clone -> package -> upload -> delete -> cleanup for a
// single repository, one step at a time.
type ArchiveCommand struct {
	sourceControl repositories.SourceControlRepository
	storage       repositories.CloudStorageRepository
	cloner        repositories.CloneRepository
	archiver      repositories.ArchiveRepository
	now           func() time.Time
}

// NewArchiveCommand creates a new ArchiveCommand.
func NewArchiveCommand(
	sourceControl repositories.SourceControlRepository,
	storage repositories.CloudStorageRepository,
	cloner repositories.CloneRepository,
	archiver repositories.ArchiveRepository,
) *ArchiveCommand {
	return &ArchiveCommand{
		sourceControl: sourceControl,
		storage:       storage,
		cloner:        cloner,
		archiver:      archiver,
		now:           time.Now,
	}
}

// Execute archives repo. The repository is deleted only once the upload has
// succeeded. Local artifacts of the job are removed on every exit path.
func (it *ArchiveCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	repo entities.Repository,
) (err error) {
	job := entities.NewArchivalJob(repo, settings.TempDir, it.now())
	log := logger.WithFields(logger.Fields{
		"job":        job.ID,
		"repository": repo.FullName(),
	})

	defer func() {
		if err != nil {
			job.Fail()
			log.Debugf("Job reached %s", job.Stage)
		}
		cleanup(job, log)
		if err == nil {
			err = it.advance(job, entities.StageCleaned, log)
		}
	}()

	// Clone
	log.Infof("Cloning to %s", job.CloneDir)
	cloneURL, err := settings.Credentials.AuthenticatedURL(repo.URL)
	if err != nil {
		return err
	}
	if err = it.cloner.Clone(ctx, cloneURL, job.CloneDir); err != nil {
		return err
	}
	if err = it.advance(job, entities.StageCloned, log); err != nil {
		return err
	}

	// Zip
	log.Infof("Zipping to %s", job.ArchivePath)
	if err = it.archiver.Package(ctx, job.CloneDir, repo.Name, job.ArchivePath); err != nil {
		return err
	}
	if err = it.advance(job, entities.StagePackaged, log); err != nil {
		return err
	}

	// Upload
	log.Infof("Uploading to Google Drive (drive: %s, folder: %s)",
		valueOr(settings.Drive.ID, "My Drive"), valueOr(settings.Drive.FolderID, "root"))
	fileID, err := it.storage.Upload(ctx, settings.OAuth, entities.UploadInput{
		LocalPath: job.ArchivePath,
		Name:      job.ArchiveName,
		MimeType:  entities.ArchiveMimeType,
		DriveID:   settings.Drive.ID,
		FolderID:  settings.Drive.FolderID,
	})
	if err != nil {
		return err
	}
	log.Debugf("Uploaded as Drive file %s", fileID)
	if err = it.advance(job, entities.StageUploaded, log); err != nil {
		return err
	}

	// Delete
	log.Infof("Deleting %s", repo.URL)
	if err = it.sourceControl.DeleteRepository(ctx, settings.Credentials, repo.Owner, repo.Name); err != nil {
		return err
	}
	if err = it.advance(job, entities.StageDeleted, log); err != nil {
		return err
	}

	log.Info("All done, cleaning up")
	return nil
}

func (it *ArchiveCommand) advance(job *entities.ArchivalJob, next entities.Stage, log *logger.Entry) error {
	if err := job.Advance(next); err != nil {
		return err
	}
	log.Debugf("Job reached %s", job.Stage)
	return nil
}

// cleanup removes the clone directory and the archive file of job. Failures
// are logged and never returned.
func cleanup(job *entities.ArchivalJob, log *logger.Entry) {
	if err := os.RemoveAll(job.CloneDir); err != nil {
		log.Warnf("Unable to remove clone directory %s: %v", job.CloneDir, err)
	}
	if err := os.Remove(job.ArchivePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Unable to remove archive %s: %v", job.ArchivePath, err)
	}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

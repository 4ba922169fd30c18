package entities

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	// CloneDirPrefix prefixes every temporary clone directory.
	CloneDirPrefix = "github-archiver-"
	// ArchivePrefix prefixes every temporary archive file.
	ArchivePrefix = "github-archive-"
	// ArchiveExtension is the extension of every archive file.
	ArchiveExtension = ".zip"
)

// Stage is a state of the per-repository archival state machine.
type Stage int

const (
	StageStart Stage = iota
	StageCloned
	StagePackaged
	StageUploaded
	StageDeleted
	StageCleaned
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "START"
	case StageCloned:
		return "CLONED"
	case StagePackaged:
		return "PACKAGED"
	case StageUploaded:
		return "UPLOADED"
	case StageDeleted:
		return "DELETED"
	case StageCleaned:
		return "CLEANED"
	case StageFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// ArchivalJob holds the transient state of one repository going through the
// archive pipeline. CloneDir and ArchivePath are owned exclusively by the job.
type ArchivalJob struct {
	ID          string
	Repository  Repository
	CloneDir    string
	ArchiveName string
	ArchivePath string
	Stage       Stage
}

// NewArchivalJob creates a job in the START stage. The clone directory name
// carries the timestamp so that two jobs never share a directory.
func NewArchivalJob(repo Repository, tempDir string, now time.Time) *ArchivalJob {
	archiveName := ArchivePrefix + repo.Name + ArchiveExtension
	return &ArchivalJob{
		ID:          uuid.NewString(),
		Repository:  repo,
		CloneDir:    filepath.Join(tempDir, fmt.Sprintf("%s%s-%d", CloneDirPrefix, repo.Name, now.UnixMilli())),
		ArchiveName: archiveName,
		ArchivePath: filepath.Join(tempDir, archiveName),
		Stage:       StageStart,
	}
}

// Advance moves the job to the given stage. Only the immediate successor of
// the current stage is accepted; FAILED is absorbing.
func (j *ArchivalJob) Advance(next Stage) error {
	if j.Stage == StageFailed || next == StageFailed || next != j.Stage+1 {
		return fmt.Errorf("invalid stage transition %s -> %s", j.Stage, next)
	}
	j.Stage = next
	return nil
}

// Fail moves the job to the absorbing FAILED stage.
func (j *ArchivalJob) Fail() {
	j.Stage = StageFailed
}

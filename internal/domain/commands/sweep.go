package commands

import (
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
)

// SweepStaleArtifacts removes clone directories and archives left in tempDir
// by an earlier run that did not reach its cleanup. Failures are logged only.
func SweepStaleArtifacts(tempDir string) int {
	patterns := []string{
		entities.CloneDirPrefix + "*",
		entities.ArchivePrefix + "*" + entities.ArchiveExtension,
	}

	removed := 0
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(tempDir, pattern))
		if err != nil {
			logger.Warnf("Unable to sweep %q: %v", pattern, err)
			continue
		}
		for _, match := range matches {
			if removeErr := os.RemoveAll(match); removeErr != nil {
				logger.Warnf("Unable to remove stale artifact %s: %v", match, removeErr)
				continue
			}
			logger.Infof("Removed stale artifact %s", match)
			removed++
		}
	}
	return removed
}

//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rios0rios0/repoarchiver/internal/domain/repositories"
)

const fileMode = 0o600

// SpyCloneRepository implements repositories.CloneRepository. Unless CloneErr
// is set it creates dir with a single README file, like a real clone would.
type SpyCloneRepository struct {
	Log *CallLog

	CloneErr error
	URLs     []string
	Dirs     []string
}

var _ repositories.CloneRepository = (*SpyCloneRepository)(nil)

func (s *SpyCloneRepository) Clone(_ context.Context, url, dir string) error {
	s.Log.Record("clone " + dir)
	s.URLs = append(s.URLs, url)
	s.Dirs = append(s.Dirs, dir)
	if s.CloneErr != nil {
		return s.CloneErr
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "README.md"), []byte("# readme\n"), fileMode)
}

// SpyArchiveRepository implements repositories.ArchiveRepository. Unless
// PackageErr is set it writes a placeholder file at destPath.
type SpyArchiveRepository struct {
	Log *CallLog

	PackageErr error
	Calls      []PackageCall
}

// PackageCall records a single invocation of Package.
type PackageCall struct {
	SourceDir string
	RootName  string
	DestPath  string
}

var _ repositories.ArchiveRepository = (*SpyArchiveRepository)(nil)

func (s *SpyArchiveRepository) Package(_ context.Context, sourceDir, rootName, destPath string) error {
	s.Log.Record("package " + rootName)
	s.Calls = append(s.Calls, PackageCall{SourceDir: sourceDir, RootName: rootName, DestPath: destPath})
	if s.PackageErr != nil {
		return s.PackageErr
	}
	return os.WriteFile(destPath, []byte("PK"), fileMode)
}

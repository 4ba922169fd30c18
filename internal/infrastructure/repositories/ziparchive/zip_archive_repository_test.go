//go:build unit

package ziparchive_test

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	"github.com/rios0rios0/repoarchiver/internal/infrastructure/repositories/ziparchive"
)

func readArchive(t *testing.T, path string) map[string]*zip.File {
	t.Helper()
	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })

	entries := make(map[string]*zip.File, len(reader.File))
	for _, f := range reader.File {
		entries[f.Name] = f
	}
	return entries
}

func readEntry(t *testing.T, f *zip.File) string {
	t.Helper()
	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestArchiveRepositoryPackage(t *testing.T) {
	t.Parallel()

	t.Run("should root every entry under the repository name", func(t *testing.T) {
		t.Parallel()

		// given
		source := filepath.Join(t.TempDir(), "github-archiver-my-repo-1700000000000")
		require.NoError(t, os.MkdirAll(filepath.Join(source, "src", "pkg"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(source, "README.md"), []byte("# my-repo\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(source, "src", "pkg", "lib.go"), []byte("package pkg\n"), 0o600))
		dest := filepath.Join(t.TempDir(), "github-archive-my-repo.zip")

		// when
		err := ziparchive.NewArchiveRepository().Package(context.Background(), source, "my-repo", dest)

		// then
		require.NoError(t, err)
		entries := readArchive(t, dest)
		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}
		sort.Strings(names)
		assert.Equal(t, []string{
			"my-repo/",
			"my-repo/README.md",
			"my-repo/src/",
			"my-repo/src/pkg/",
			"my-repo/src/pkg/lib.go",
		}, names)
		assert.Equal(t, "# my-repo\n", readEntry(t, entries["my-repo/README.md"]))
		assert.Equal(t, "package pkg\n", readEntry(t, entries["my-repo/src/pkg/lib.go"]))
	})

	t.Run("should include hidden directories such as .git", func(t *testing.T) {
		t.Parallel()

		// given
		source := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(source, ".git"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(source, ".git", "HEAD"), []byte("ref: refs/heads/main\n"), 0o600))
		dest := filepath.Join(t.TempDir(), "archive.zip")

		// when
		err := ziparchive.NewArchiveRepository().Package(context.Background(), source, "repo", dest)

		// then
		require.NoError(t, err)
		entries := readArchive(t, dest)
		require.Contains(t, entries, "repo/.git/HEAD")
		assert.Equal(t, "ref: refs/heads/main\n", readEntry(t, entries["repo/.git/HEAD"]))
	})

	t.Run("should store symbolic links without following them", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need elevated privileges on Windows")
		}

		// given
		source := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(source, "target.txt"), []byte("content"), 0o600))
		require.NoError(t, os.Symlink("target.txt", filepath.Join(source, "link.txt")))
		dest := filepath.Join(t.TempDir(), "archive.zip")

		// when
		err := ziparchive.NewArchiveRepository().Package(context.Background(), source, "repo", dest)

		// then
		require.NoError(t, err)
		entries := readArchive(t, dest)
		require.Contains(t, entries, "repo/link.txt")
		assert.NotZero(t, entries["repo/link.txt"].Mode()&os.ModeSymlink)
		assert.Equal(t, "target.txt", readEntry(t, entries["repo/link.txt"]))
	})

	t.Run("should fail with a local tool error when the source is missing", func(t *testing.T) {
		t.Parallel()

		// given
		source := filepath.Join(t.TempDir(), "missing")
		dest := filepath.Join(t.TempDir(), "archive.zip")

		// when
		err := ziparchive.NewArchiveRepository().Package(context.Background(), source, "repo", dest)

		// then
		var toolErr *entities.LocalToolError
		require.ErrorAs(t, err, &toolErr)
		assert.Equal(t, dest, toolErr.Path)
	})
}

package ziparchive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	"github.com/rios0rios0/repoarchiver/internal/domain/repositories"
)

const archiveFileMode = 0o600

// ArchiveRepository implements repositories.ArchiveRepository with zip files.
type ArchiveRepository struct{}

// NewArchiveRepository creates a zip archive repository.
func NewArchiveRepository() repositories.ArchiveRepository {
	return &ArchiveRepository{}
}

// Package streams sourceDir into a zip file at destPath. Every entry lives
// under rootName/, so extracting the archive yields a folder named rootName.
// Symbolic links are stored as links, not followed.
func (it *ArchiveRepository) Package(ctx context.Context, sourceDir, rootName, destPath string) error {
	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, archiveFileMode)
	if err != nil {
		return &entities.LocalToolError{Tool: "zip", Path: destPath, Err: err}
	}

	writer := zip.NewWriter(out)
	count, walkErr := writeTree(ctx, writer, sourceDir, rootName)
	closeErr := writer.Close()
	fileErr := out.Close()

	for _, err := range []error{walkErr, closeErr, fileErr} {
		if err != nil {
			return &entities.LocalToolError{Tool: "zip", Path: destPath, Err: err}
		}
	}
	logger.Debugf("Archived %d entries of %s into %s", count, sourceDir, destPath)
	return nil
}

func writeTree(ctx context.Context, writer *zip.Writer, sourceDir, rootName string) (int, error) {
	count := 0
	err := filepath.WalkDir(sourceDir, func(current string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, err := filepath.Rel(sourceDir, current)
		if err != nil {
			return err
		}
		name := path.Join(rootName, filepath.ToSlash(rel))

		info, err := entry.Info()
		if err != nil {
			return err
		}
		if err := writeEntry(writer, current, name, info); err != nil {
			return fmt.Errorf("failed to archive %s: %w", current, err)
		}
		count++
		return nil
	})
	return count, err
}

func writeEntry(writer *zip.Writer, current, name string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name

	switch {
	case info.IsDir():
		header.Name += "/"
		header.Method = zip.Store
		_, err = writer.CreateHeader(header)
		return err

	case info.Mode()&os.ModeSymlink != 0:
		target, linkErr := os.Readlink(current)
		if linkErr != nil {
			return linkErr
		}
		header.Method = zip.Store
		w, createErr := writer.CreateHeader(header)
		if createErr != nil {
			return createErr
		}
		_, err = io.WriteString(w, target)
		return err

	case info.Mode().IsRegular():
		header.Method = zip.Deflate
		w, createErr := writer.CreateHeader(header)
		if createErr != nil {
			return createErr
		}
		file, openErr := os.Open(current)
		if openErr != nil {
			return openErr
		}
		defer file.Close()
		_, err = io.Copy(w, file)
		return err

	default:
		// sockets, devices and pipes have no archivable content
		return nil
	}
}

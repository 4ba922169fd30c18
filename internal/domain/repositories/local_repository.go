package repositories

import "context"

// CloneRepository clones a remote Git repository into a local directory.
type CloneRepository interface {
	// Clone clones url into dir. The url may carry credentials.
	Clone(ctx context.Context, url, dir string) error
}

// ArchiveRepository packages a directory into a single archive file.
type ArchiveRepository interface {
	// Package writes sourceDir into destPath under the root entry rootName.
	// The archive is fully flushed when Package returns.
	Package(ctx context.Context, sourceDir, rootName, destPath string) error
}

// PromptRepository interacts with the operator. Calls block until an answer
// is read and never time out.
type PromptRepository interface {
	// Ask shows question and returns the next line entered.
	Ask(question string) (string, error)

	// Choose shows question until the answer is one of accepted.
	Choose(question string, accepted []string) (string, error)

	// Println shows an informational line.
	Println(args ...any)
}

package gitclone

import (
	"context"
	"errors"
	"net/url"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	"github.com/rios0rios0/repoarchiver/internal/domain/repositories"
)

const cloneDirMode = 0o755

// CloneRepository implements repositories.CloneRepository with go-git, so no
// git binary is required on the host.
type CloneRepository struct{}

// NewCloneRepository creates a go-git based clone repository.
func NewCloneRepository() repositories.CloneRepository {
	return &CloneRepository{}
}

// Clone performs a full, non-bare clone of rawURL into dir. Credentials
// embedded in rawURL as user-info are sent as HTTP basic authentication and
// never written to the clone's remote configuration.
func (it *CloneRepository) Clone(ctx context.Context, rawURL, dir string) error {
	remoteURL, auth := splitCredentials(rawURL)

	options := &git.CloneOptions{
		URL:  remoteURL,
		Tags: git.AllTags,
	}
	if auth != nil {
		options.Auth = auth
	}

	_, err := git.PlainCloneContext(ctx, dir, false, options)
	if err == nil {
		return nil
	}

	// An empty repository still gets archived, as an empty folder.
	if errors.Is(err, transport.ErrEmptyRemoteRepository) {
		if mkdirErr := os.MkdirAll(dir, cloneDirMode); mkdirErr != nil {
			return &entities.LocalToolError{Tool: "git clone", Path: dir, Err: mkdirErr}
		}
		return nil
	}
	return &entities.LocalToolError{Tool: "git clone", Path: dir, Err: err}
}

// splitCredentials removes the user-info of rawURL. Local paths and URLs
// without user-info come back unchanged with a nil auth.
func splitCredentials(rawURL string) (string, *githttp.BasicAuth) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil || parsed.Host == "" {
		return rawURL, nil
	}

	password, _ := parsed.User.Password()
	auth := &githttp.BasicAuth{
		Username: parsed.User.Username(),
		Password: password,
	}
	parsed.User = nil
	return parsed.String(), auth
}

package repositories

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
)

// CloudStorageRepository stores archives in a cloud drive.
type CloudStorageRepository interface {
	// Upload creates a new file from input.LocalPath and returns its id.
	Upload(ctx context.Context, auth entities.OAuthSettings, input entities.UploadInput) (string, error)
}

// AuthorizationRepository resolves the OAuth2 authorization of the cloud
// drive. The token is read or acquired at most once per process.
type AuthorizationRepository interface {
	Token(ctx context.Context, auth entities.OAuthSettings, scopes []string) (*oauth2.Token, error)
	HTTPClient(ctx context.Context, auth entities.OAuthSettings, scopes []string) (*http.Client, error)
}

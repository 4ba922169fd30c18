//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"net/http"
	"os"

	"golang.org/x/oauth2"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	"github.com/rios0rios0/repoarchiver/internal/domain/repositories"
)

// SpyCloudStorageRepository implements repositories.CloudStorageRepository as a configurable spy.
type SpyCloudStorageRepository struct {
	Log *CallLog

	FileID    string
	UploadErr error
	Inputs    []entities.UploadInput
	// ExistedOnUpload tells whether the local file existed when Upload ran.
	ExistedOnUpload []bool
}

var _ repositories.CloudStorageRepository = (*SpyCloudStorageRepository)(nil)

func (s *SpyCloudStorageRepository) Upload(
	_ context.Context,
	_ entities.OAuthSettings,
	input entities.UploadInput,
) (string, error) {
	s.Log.Record("upload " + input.Name)
	s.Inputs = append(s.Inputs, input)
	_, statErr := os.Stat(input.LocalPath)
	s.ExistedOnUpload = append(s.ExistedOnUpload, statErr == nil)
	if s.UploadErr != nil {
		return "", s.UploadErr
	}
	return s.FileID, nil
}

// StubAuthorizationRepository implements repositories.AuthorizationRepository
// with fixed answers.
type StubAuthorizationRepository struct {
	Client    *http.Client
	AuthToken *oauth2.Token
	Err       error
	Scopes    [][]string
}

var _ repositories.AuthorizationRepository = (*StubAuthorizationRepository)(nil)

func (s *StubAuthorizationRepository) Token(
	_ context.Context, _ entities.OAuthSettings, scopes []string,
) (*oauth2.Token, error) {
	s.Scopes = append(s.Scopes, scopes)
	return s.AuthToken, s.Err
}

func (s *StubAuthorizationRepository) HTTPClient(
	_ context.Context, _ entities.OAuthSettings, scopes []string,
) (*http.Client, error) {
	s.Scopes = append(s.Scopes, scopes)
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Client == nil {
		return http.DefaultClient, nil
	}
	return s.Client, nil
}

package googledrive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	"github.com/rios0rios0/repoarchiver/internal/domain/repositories"
)

const (
	oauthServiceName = "google-oauth2"
	cacheFileMode    = 0o600
)

// OAuthRepository implements repositories.AuthorizationRepository with the
// installed-application flow: the client descriptor comes from a local
// credentials file, the token from a local cache file or, when the cache is
// absent or unreadable, from a code pasted by the operator.
type OAuthRepository struct {
	prompt repositories.PromptRepository

	mu     sync.Mutex
	config *oauth2.Config
	token  *oauth2.Token
}

// NewOAuthRepository creates an authorization repository asking the operator
// through prompt when a fresh token is needed.
func NewOAuthRepository(prompt repositories.PromptRepository) repositories.AuthorizationRepository {
	return &OAuthRepository{prompt: prompt}
}

// Token returns the cloud-storage token. Once resolved, the same token is
// returned for the rest of the process.
func (it *OAuthRepository) Token(
	ctx context.Context,
	auth entities.OAuthSettings,
	scopes []string,
) (*oauth2.Token, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.token != nil {
		return it.token, nil
	}

	config, err := readCredentialsFile(auth.CredentialsFile, scopes)
	if err != nil {
		return nil, err
	}

	token, err := readTokenCache(auth.TokenCacheFile)
	if err != nil {
		logger.Debugf("No usable token cache at %q: %v", auth.TokenCacheFile, err)
		token, err = it.acquireToken(ctx, config)
		if err != nil {
			return nil, err
		}
		if writeErr := writeTokenCache(auth.TokenCacheFile, token); writeErr != nil {
			logger.Warnf("Unable to write cache file %q: %v", auth.TokenCacheFile, writeErr)
		}
	}

	it.config = config
	it.token = token
	return token, nil
}

// HTTPClient returns an HTTP client authorized with the cloud-storage token.
// The client refreshes the token transparently when it carries a refresh token.
func (it *OAuthRepository) HTTPClient(
	ctx context.Context,
	auth entities.OAuthSettings,
	scopes []string,
) (*http.Client, error) {
	token, err := it.Token(ctx, auth, scopes)
	if err != nil {
		return nil, err
	}
	return it.config.Client(ctx, token), nil
}

func (it *OAuthRepository) acquireToken(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	it.prompt.Println("Authorize this app by visiting this url:", authURL)

	code, err := it.prompt.Ask("Enter the code from that page here: ")
	if err != nil {
		return nil, err
	}

	token, err := config.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, &entities.RemoteAPIError{
				Service:    oauthServiceName,
				Operation:  "exchange authorization code",
				StatusCode: retrieveErr.Response.StatusCode,
				Payload:    string(retrieveErr.Body),
			}
		}
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// readCredentialsFile parses the OAuth client descriptor downloaded from the
// Google Cloud console ("installed" or "web" application).
func readCredentialsFile(path string, scopes []string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &entities.LocalToolError{Tool: "credentials file", Path: path, Err: err}
	}
	config, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, &entities.LocalToolError{Tool: "credentials file", Path: path, Err: err}
	}
	return config, nil
}

func readTokenCache(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if unmarshalErr := json.Unmarshal(data, &token); unmarshalErr != nil {
		return nil, unmarshalErr
	}
	return &token, nil
}

func writeTokenCache(path string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, cacheFileMode)
}

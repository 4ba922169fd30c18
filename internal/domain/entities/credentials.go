package entities

import (
	"encoding/base64"
	"fmt"
	"net/url"
)

// SourceControlCredentials is the basic-auth pair used against GitHub.
// It lives for the whole process.
type SourceControlCredentials struct {
	Username string
	Token    string
}

// BasicAuthorization returns the value of the Authorization header.
func (c SourceControlCredentials) BasicAuthorization() string {
	userInfo := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Token))
	return "Basic " + userInfo
}

// AuthenticatedURL embeds the credentials as user-info into rawURL.
// The result contains the token and must never be logged.
func (c SourceControlCredentials) AuthenticatedURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid clone URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("clone URL %q must be absolute", rawURL)
	}
	parsed.User = url.UserPassword(c.Username, c.Token)
	return parsed.String(), nil
}

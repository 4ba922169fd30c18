//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
)

// NewSettings returns valid settings whose temporary files live in tempDir.
func NewSettings(tempDir string) *entities.Settings {
	return &entities.Settings{
		Credentials: entities.SourceControlCredentials{
			Username: "octocat",
			Token:    "ghp_secret",
		},
		Organization: defaultOwner,
		PageSize:     entities.DefaultPageSize,
		OAuth: entities.OAuthSettings{
			CredentialsFile: entities.DefaultCredentialsFile,
			TokenCacheFile:  entities.DefaultTokenCacheFile,
		},
		TempDir: tempDir,
	}
}

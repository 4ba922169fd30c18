package entities

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	EnvUsername        = "ORG_USERNAME"
	EnvToken           = "ORG_TOKEN"
	EnvOrganization    = "ORG_NAME"
	EnvPageSize        = "PAGE_SIZE"
	EnvDriveID         = "DRIVE_ID"
	EnvDriveFolderID   = "DRIVE_FOLDER_ID"
	EnvCredentialsFile = "GOOGLE_CREDENTIALS_FILE"
	EnvTokenCacheFile  = "GOOGLE_TOKEN_FILE"
	EnvTempDir         = "ARCHIVE_TEMP_DIR"
	EnvSweepStale      = "SWEEP_STALE_ARTIFACTS"

	// AppName names the configuration file and the default temporary directory.
	AppName = "repoarchiver"

	DefaultPageSize        = 10
	DefaultCredentialsFile = "credentials.json"
	DefaultTokenCacheFile  = "token.json"
)

// Settings is the process-wide configuration. It is built once at startup and
// handed to every command; nothing else reads the environment.
type Settings struct {
	Credentials  SourceControlCredentials
	Organization string
	PageSize     int
	Drive        DriveSettings
	OAuth        OAuthSettings
	TempDir      string
	SweepStale   bool
}

// DriveSettings pins uploads to a shared drive and/or folder.
type DriveSettings struct {
	ID       string
	FolderID string
}

// OAuthSettings locates the OAuth client descriptor and the token cache.
type OAuthSettings struct {
	CredentialsFile string
	TokenCacheFile  string
}

// fileSettings is the optional YAML file. Secrets are never read from it.
type fileSettings struct {
	Organization    string `yaml:"organization"`
	PageSize        int    `yaml:"page_size"`
	DriveID         string `yaml:"drive_id"`
	DriveFolderID   string `yaml:"drive_folder_id"`
	CredentialsFile string `yaml:"credentials_file"`
	TokenCacheFile  string `yaml:"token_cache_file"`
	TempDir         string `yaml:"temp_dir"`
	SweepStale      *bool  `yaml:"sweep_stale_artifacts"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings builds the settings from the optional YAML file at configPath
// (ignored when empty) overlaid with the environment.
func NewSettings(configPath string) (*Settings, error) {
	file := fileSettings{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, &file); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	settings := &Settings{
		Credentials: SourceControlCredentials{
			Username: os.Getenv(EnvUsername),
			Token:    os.Getenv(EnvToken),
		},
		Organization: envOr(EnvOrganization, expandEnv(file.Organization)),
		PageSize:     DefaultPageSize,
		Drive: DriveSettings{
			ID:       envOr(EnvDriveID, expandEnv(file.DriveID)),
			FolderID: envOr(EnvDriveFolderID, expandEnv(file.DriveFolderID)),
		},
		OAuth: OAuthSettings{
			CredentialsFile: envOr(EnvCredentialsFile, expandEnv(file.CredentialsFile)),
			TokenCacheFile:  envOr(EnvTokenCacheFile, expandEnv(file.TokenCacheFile)),
		},
		TempDir:    envOr(EnvTempDir, expandEnv(file.TempDir)),
		SweepStale: true,
	}

	if file.PageSize > 0 {
		settings.PageSize = file.PageSize
	}
	if raw := os.Getenv(EnvPageSize); raw != "" {
		settings.PageSize = parsePageSize(raw)
	}
	if file.SweepStale != nil {
		settings.SweepStale = *file.SweepStale
	}
	if raw := os.Getenv(EnvSweepStale); raw != "" {
		sweep, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &ConfigurationError{Key: EnvSweepStale, Reason: "expected a boolean"}
		}
		settings.SweepStale = sweep
	}

	if settings.OAuth.CredentialsFile == "" {
		settings.OAuth.CredentialsFile = DefaultCredentialsFile
	}
	if settings.OAuth.TokenCacheFile == "" {
		settings.OAuth.TokenCacheFile = DefaultTokenCacheFile
	}
	if settings.TempDir == "" {
		settings.TempDir = filepath.Join(os.TempDir(), AppName)
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// FindConfigFile returns the first existing configuration file among
// ConfigFileCandidates. The file is optional, so not finding one is no error.
func FindConfigFile() (string, bool) {
	for _, candidate := range ConfigFileCandidates() {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// ConfigFileCandidates lists, by precedence, where the configuration file may
// live: the working directory (hidden or not), then the user configuration
// directory under the application name.
func ConfigFileCandidates() []string {
	var candidates []string
	for _, ext := range []string{".yaml", ".yml"} {
		candidates = append(candidates, "."+AppName+ext, AppName+ext)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range []string{".yaml", ".yml"} {
			candidates = append(candidates, filepath.Join(configDir, AppName, "config"+ext))
		}
	}
	return candidates
}

// SettingsLoader builds the settings of a run.
type SettingsLoader func() (*Settings, error)

// NewSettingsLoader returns the loader reading the optional configuration
// file and the environment.
func NewSettingsLoader() SettingsLoader {
	return LoadSettings
}

// LoadSettings builds the settings from the configuration file found by
// FindConfigFile, if any, overlaid with the environment.
func LoadSettings() (*Settings, error) {
	configPath, found := FindConfigFile()
	if found {
		logger.Infof("Using config file: %s", configPath)
	} else {
		logger.Debug("No config file, using the environment only")
	}
	return NewSettings(configPath)
}

// validate checks the required values, in the order they are documented.
func (s *Settings) validate() error {
	if s.Credentials.Username == "" {
		return &ConfigurationError{Key: EnvUsername}
	}
	if s.Credentials.Token == "" {
		return &ConfigurationError{Key: EnvToken}
	}
	if s.Organization == "" {
		return &ConfigurationError{Key: EnvOrganization}
	}
	return nil
}

// parsePageSize falls back to the default on anything but a positive integer.
func parsePageSize(raw string) int {
	size, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || size <= 0 {
		logger.Warnf("Ignoring invalid %s %q, using %d", EnvPageSize, raw, DefaultPageSize)
		return DefaultPageSize
	}
	return size
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// expandEnv expands ${ENV_VAR} references found in YAML values.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
)

// clearEnv blanks every variable NewSettings reads so the host cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		entities.EnvUsername, entities.EnvToken, entities.EnvOrganization, entities.EnvPageSize,
		entities.EnvDriveID, entities.EnvDriveFolderID, entities.EnvCredentialsFile,
		entities.EnvTokenCacheFile, entities.EnvTempDir, entities.EnvSweepStale,
	} {
		t.Setenv(key, "")
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(entities.EnvUsername, "octocat")
	t.Setenv(entities.EnvToken, "ghp_secret")
	t.Setenv(entities.EnvOrganization, "my-org")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repoarchiver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// NOTE: cannot use t.Parallel() with t.Setenv()
func TestNewSettings(t *testing.T) {
	t.Run("should apply the defaults when only the required values are set", func(t *testing.T) {
		// given
		clearEnv(t)
		setRequiredEnv(t)

		// when
		settings, err := entities.NewSettings("")

		// then
		require.NoError(t, err)
		assert.Equal(t, "octocat", settings.Credentials.Username)
		assert.Equal(t, "ghp_secret", settings.Credentials.Token)
		assert.Equal(t, "my-org", settings.Organization)
		assert.Equal(t, entities.DefaultPageSize, settings.PageSize)
		assert.Empty(t, settings.Drive.ID)
		assert.Empty(t, settings.Drive.FolderID)
		assert.Equal(t, "credentials.json", settings.OAuth.CredentialsFile)
		assert.Equal(t, "token.json", settings.OAuth.TokenCacheFile)
		assert.Equal(t, filepath.Join(os.TempDir(), "repoarchiver"), settings.TempDir)
		assert.True(t, settings.SweepStale)
	})

	t.Run("should report the first missing required variable", func(t *testing.T) {
		cases := []struct {
			name    string
			set     map[string]string
			missing string
		}{
			{name: "username", set: map[string]string{}, missing: entities.EnvUsername},
			{
				name:    "token",
				set:     map[string]string{entities.EnvUsername: "octocat"},
				missing: entities.EnvToken,
			},
			{
				name:    "organization",
				set:     map[string]string{entities.EnvUsername: "octocat", entities.EnvToken: "ghp_secret"},
				missing: entities.EnvOrganization,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				// given
				clearEnv(t)
				for key, value := range tc.set {
					t.Setenv(key, value)
				}

				// when
				_, err := entities.NewSettings("")

				// then
				var configErr *entities.ConfigurationError
				require.ErrorAs(t, err, &configErr)
				assert.Equal(t, tc.missing, configErr.Key)
				assert.Equal(t, "please set the env var "+tc.missing, err.Error())
			})
		}
	})

	t.Run("should fall back to the default page size on invalid values", func(t *testing.T) {
		for _, raw := range []string{"abc", "0", "-3", "2.5"} {
			t.Run(raw, func(t *testing.T) {
				// given
				clearEnv(t)
				setRequiredEnv(t)
				t.Setenv(entities.EnvPageSize, raw)

				// when
				settings, err := entities.NewSettings("")

				// then
				require.NoError(t, err)
				assert.Equal(t, entities.DefaultPageSize, settings.PageSize)
			})
		}
	})

	t.Run("should read the optional values from the environment", func(t *testing.T) {
		// given
		clearEnv(t)
		setRequiredEnv(t)
		t.Setenv(entities.EnvPageSize, "50")
		t.Setenv(entities.EnvDriveID, "drive-1")
		t.Setenv(entities.EnvDriveFolderID, "folder-1")
		t.Setenv(entities.EnvCredentialsFile, "/etc/repoarchiver/credentials.json")
		t.Setenv(entities.EnvTokenCacheFile, "/var/lib/repoarchiver/token.json")
		t.Setenv(entities.EnvTempDir, "/scratch")
		t.Setenv(entities.EnvSweepStale, "false")

		// when
		settings, err := entities.NewSettings("")

		// then
		require.NoError(t, err)
		assert.Equal(t, 50, settings.PageSize)
		assert.Equal(t, entities.DriveSettings{ID: "drive-1", FolderID: "folder-1"}, settings.Drive)
		assert.Equal(t, "/etc/repoarchiver/credentials.json", settings.OAuth.CredentialsFile)
		assert.Equal(t, "/var/lib/repoarchiver/token.json", settings.OAuth.TokenCacheFile)
		assert.Equal(t, "/scratch", settings.TempDir)
		assert.False(t, settings.SweepStale)
	})

	t.Run("should reject a sweep flag that is not a boolean", func(t *testing.T) {
		// given
		clearEnv(t)
		setRequiredEnv(t)
		t.Setenv(entities.EnvSweepStale, "sometimes")

		// when
		_, err := entities.NewSettings("")

		// then
		var configErr *entities.ConfigurationError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, entities.EnvSweepStale, configErr.Key)
	})

	t.Run("should read the config file and let the environment override it", func(t *testing.T) {
		// given
		clearEnv(t)
		t.Setenv(entities.EnvUsername, "octocat")
		t.Setenv(entities.EnvToken, "ghp_secret")
		t.Setenv(entities.EnvDriveFolderID, "env-folder")
		t.Setenv("ARCHIVE_ROOT", "/data")
		path := writeConfig(t, `
organization: file-org
page_size: 20
drive_id: file-drive
drive_folder_id: file-folder
temp_dir: ${ARCHIVE_ROOT}/tmp
sweep_stale_artifacts: false
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "file-org", settings.Organization)
		assert.Equal(t, 20, settings.PageSize)
		assert.Equal(t, "file-drive", settings.Drive.ID)
		assert.Equal(t, "env-folder", settings.Drive.FolderID)
		assert.Equal(t, "/data/tmp", settings.TempDir)
		assert.False(t, settings.SweepStale)
	})

	t.Run("should fail on a config file that is not YAML", func(t *testing.T) {
		// given
		clearEnv(t)
		setRequiredEnv(t)
		path := writeConfig(t, "organization: [unclosed")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("should fail on a config file that does not exist", func(t *testing.T) {
		// given
		clearEnv(t)
		setRequiredEnv(t)

		// when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "absent.yaml"))

		// then
		require.Error(t, err)
	})
}

// NOTE: cannot use t.Parallel() with t.Setenv() or t.Chdir()
func TestFindConfigFile(t *testing.T) {
	t.Run("should prefer the working directory over the user config directory", func(t *testing.T) {
		// given
		workDir := t.TempDir()
		configHome := t.TempDir()
		t.Chdir(workDir)
		t.Setenv("XDG_CONFIG_HOME", configHome)
		require.NoError(t, os.MkdirAll(filepath.Join(configHome, "repoarchiver"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(configHome, "repoarchiver", "config.yaml"), []byte("{}"), 0o600))
		require.NoError(t, os.WriteFile("repoarchiver.yaml", []byte("{}"), 0o600))

		// when
		path, found := entities.FindConfigFile()

		// then
		assert.True(t, found)
		assert.Equal(t, "repoarchiver.yaml", path)
	})

	t.Run("should find the file in the user config directory", func(t *testing.T) {
		// given
		t.Chdir(t.TempDir())
		configHome := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", configHome)
		expected := filepath.Join(configHome, "repoarchiver", "config.yml")
		require.NoError(t, os.MkdirAll(filepath.Dir(expected), 0o755))
		require.NoError(t, os.WriteFile(expected, []byte("{}"), 0o600))

		// when
		path, found := entities.FindConfigFile()

		// then
		assert.True(t, found)
		assert.Equal(t, expected, path)
	})

	t.Run("should report nothing found without a file", func(t *testing.T) {
		// given
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		// when
		path, found := entities.FindConfigFile()

		// then
		assert.False(t, found)
		assert.Empty(t, path)
	})

	t.Run("should ignore a directory carrying a config file name", func(t *testing.T) {
		// given
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		require.NoError(t, os.Mkdir(".repoarchiver.yaml", 0o755))

		// when
		_, found := entities.FindConfigFile()

		// then
		assert.False(t, found)
	})
}

// NOTE: cannot use t.Parallel() with t.Setenv() or t.Chdir()
func TestLoadSettings(t *testing.T) {
	t.Run("should overlay the environment on the discovered config file", func(t *testing.T) {
		// given
		clearEnv(t)
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv(entities.EnvUsername, "octocat")
		t.Setenv(entities.EnvToken, "ghp_secret")
		require.NoError(t, os.WriteFile(".repoarchiver.yml", []byte("organization: file-org\npage_size: 30\n"), 0o600))

		// when
		settings, err := entities.NewSettingsLoader()()

		// then
		require.NoError(t, err)
		assert.Equal(t, "file-org", settings.Organization)
		assert.Equal(t, 30, settings.PageSize)
	})

	t.Run("should use the environment alone without a config file", func(t *testing.T) {
		// given
		clearEnv(t)
		setRequiredEnv(t)
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		// when
		settings, err := entities.LoadSettings()

		// then
		require.NoError(t, err)
		assert.Equal(t, "my-org", settings.Organization)
	})
}

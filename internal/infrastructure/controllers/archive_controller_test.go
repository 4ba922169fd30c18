//go:build unit

package controllers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	"github.com/rios0rios0/repoarchiver/internal/infrastructure/controllers"
	commanddoubles "github.com/rios0rios0/repoarchiver/test/domain/commanddoubles"
	builders "github.com/rios0rios0/repoarchiver/test/domain/entitybuilders"
)

func newCobraCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{Use: "repoarchiver"}
	cmd.SetContext(context.Background())
	return cmd
}

func loaderOf(settings *entities.Settings, err error) entities.SettingsLoader {
	return func() (*entities.Settings, error) {
		return settings, err
	}
}

func TestArchiveControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should run the session with the loaded settings", func(t *testing.T) {
		t.Parallel()

		// given
		settings := builders.NewSettings(t.TempDir())
		command := &commanddoubles.StubRunCommand{}
		controller := controllers.NewArchiveController(command, loaderOf(settings, nil))

		// when
		err := controller.Execute(newCobraCommand(), nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, command.ExecuteCallCount)
		assert.Same(t, settings, command.LastSettings)
	})

	t.Run("should fail before running anything when the settings are invalid", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubRunCommand{}
		loadErr := &entities.ConfigurationError{Key: entities.EnvUsername}
		controller := controllers.NewArchiveController(command, loaderOf(nil, loadErr))

		// when
		err := controller.Execute(newCobraCommand(), nil)

		// then
		var configErr *entities.ConfigurationError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, entities.EnvUsername, configErr.Key)
		assert.Zero(t, command.ExecuteCallCount)
	})

	t.Run("should return the session error", func(t *testing.T) {
		t.Parallel()

		// given
		runErr := errors.New("github: list repositories: responded 502: bad gateway")
		controller := controllers.NewArchiveController(
			&commanddoubles.StubRunCommand{ExecuteErr: runErr},
			loaderOf(builders.NewSettings(t.TempDir()), nil),
		)

		// when
		err := controller.Execute(newCobraCommand(), nil)

		// then
		require.ErrorIs(t, err, runErr)
	})

	t.Run("should describe itself as the root command", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewArchiveController(&commanddoubles.StubRunCommand{}, loaderOf(nil, nil))

		// when
		bind := controller.GetBind()

		// then
		assert.Equal(t, "repoarchiver", bind.Use)
		assert.NotEmpty(t, bind.Short)
	})
}

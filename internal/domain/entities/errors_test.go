//go:build unit

package entities_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	t.Run("should describe a remote API error with its resource and payload", func(t *testing.T) {
		t.Parallel()

		// given
		err := &entities.RemoteAPIError{
			Service: "github", Operation: "delete repository", Resource: "my-org/legacy-service",
			StatusCode: 403, Payload: `{"message":"Must have admin rights"}`,
		}

		// then
		assert.Equal(t,
			`github: delete repository my-org/legacy-service: responded 403: {"message":"Must have admin rights"}`,
			err.Error())
	})

	t.Run("should describe an invalid configuration value", func(t *testing.T) {
		t.Parallel()

		// given
		err := &entities.ConfigurationError{Key: "SWEEP_STALE_ARTIFACTS", Reason: "expected a boolean"}

		// then
		assert.Equal(t, "invalid configuration SWEEP_STALE_ARTIFACTS: expected a boolean", err.Error())
	})

	t.Run("should unwrap a local tool error", func(t *testing.T) {
		t.Parallel()

		// given
		err := &entities.LocalToolError{Tool: "zip", Path: "/tmp/a.zip", Err: fs.ErrPermission}

		// then
		assert.ErrorIs(t, err, fs.ErrPermission)
		assert.Equal(t, "zip failed on /tmp/a.zip: permission denied", err.Error())
		assert.False(t, errors.Is(err, fs.ErrNotExist))
	})
}

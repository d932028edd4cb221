package levelwalk

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gekko3d/levelwalk/camera"
)

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Field: "camera", Reason: "pitch_min > pitch_max", Err: camera.ErrInvalidConfig}
	assert.Equal(t, "configuration: camera: pitch_min > pitch_max", err.Error())
	assert.ErrorIs(t, err, camera.ErrInvalidConfig)

	bare := &ConfigurationError{Reason: "no window"}
	assert.Equal(t, "configuration: no window", bare.Error())
	assert.Nil(t, errors.Unwrap(bare))
}

func TestNetworkError(t *testing.T) {
	err := &NetworkError{Name: "maps/e1m1.indices", Err: fs.ErrNotExist}
	assert.Equal(t, `fetch "maps/e1m1.indices": file does not exist`, err.Error())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCompileError(t *testing.T) {
	var err error = &CompileError{Stage: "fragment", Log: "  0:3: undeclared identifier\n"}
	assert.Equal(t, "compile fragment: 0:3: undeclared identifier", err.Error())

	var cerr *CompileError
	assert.True(t, errors.As(err, &cerr))
	assert.Equal(t, "fragment", cerr.Stage)
}

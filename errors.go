package levelwalk

import (
	"fmt"

	"github.com/gekko3d/levelwalk/gfx"
)

// ConfigurationError rejects a setting at construction time.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// CompileError is raised by the graphics backends.
type CompileError = gfx.CompileError

// NetworkError is an asset fetch that failed to arrive or to decode.
type NetworkError struct {
	Name string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %q: %v", e.Name, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

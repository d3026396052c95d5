package gridui

import "errors"

var (
	// ErrBackendUnavailable wraps every failure to bring up a backend
	ErrBackendUnavailable = errors.New("gridui: backend unavailable")

	// ErrClosed is returned once the render thread has exited
	ErrClosed = errors.New("gridui: closed")

	// ErrInvalidScreen reports a glyph count that does not fit the width
	ErrInvalidScreen = errors.New("gridui: invalid screen shape")

	// ErrStartupTimeout is wrapped into ErrBackendUnavailable when the
	// render thread never reports its window
	ErrStartupTimeout = errors.New("gridui: backend startup timed out")
)

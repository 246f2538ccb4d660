package controller

import (
	stderrors "errors"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"github.com/jmgilman/go/errors"
)

const (
	// CodeSourceReadFailed marks a reader or transformer failure while resolving a miss.
	CodeSourceReadFailed errors.ErrorCode = "SOURCE_READ_FAILED"

	// CodeInitializationFailed marks a failed open or eager population pass.
	CodeInitializationFailed errors.ErrorCode = "INITIALIZATION_FAILED"
)

var ErrClosed = errors.New(errors.CodeConflict, "controller is closed")

// errUnavailable reports a declared external source with no attached sub-controller.
// It is never cached and never returned to callers.
var errUnavailable = stderrors.New("source not available")

func readFailure(err error, kind cache.Kind, id, path string) error {
	return errors.WrapWithContext(err, CodeSourceReadFailed, "resolve "+kind.String()+" "+id, map[string]interface{}{
		"kind": kind.String(),
		"id":   id,
		"path": path,
	})
}

func initFailure(err error, msg, path, format string) error {
	return errors.WrapWithContext(err, CodeInitializationFailed, msg, map[string]interface{}{
		"path":   path,
		"format": format,
	})
}

// settle maps the internal unavailability signal onto the documented default.
func settle[T any](v T, err error) (T, error) {
	if stderrors.Is(err, errUnavailable) {
		return v, nil
	}
	return v, err
}

func isUnavailable(err error) bool {
	return stderrors.Is(err, errUnavailable)
}

func isNotFound(err error) bool {
	return source.IsNotFound(err)
}

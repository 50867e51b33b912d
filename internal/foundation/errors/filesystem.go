package errors

import (
	stderrors "errors"
	"io/fs"
)

// FromPathError classifies an error returned by the os package for path.
// Missing files become CategoryNotFound, everything else CategoryFileSystem.
func FromPathError(err error, path, message string) *ClassifiedError {
	if stderrors.Is(err, fs.ErrNotExist) {
		return NotFoundError(message).
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return FileSystemError(message).
		WithCause(err).
		WithContext("path", path).
		Build()
}

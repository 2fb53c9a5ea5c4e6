// Package pathcheck holds the precondition checks run against source and target
// paths, and the error kinds every PhotoTidy package reports with.
package pathcheck

import (
	"os"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNotFound is reported when a required path does not exist.
	ErrNotFound = errors.Base("not found")
	// ErrInvalidInput is reported when a path exists but is of the wrong kind,
	// or a file has no extension.
	ErrInvalidInput = errors.Base("invalid input")
	// ErrIO is reported for read, copy and listing failures of the storage layer.
	ErrIO = errors.Base("i/o failure")
)

// FileExists checks that path exists and resolves to a regular file.
func FileExists(path string) (os.FileInfo, error) {
	info, err := stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Errorf("%w: the path %q is not a file", ErrInvalidInput, path)
	}
	return info, nil
}

// DirectoryExists checks that path exists and resolves to a directory.
func DirectoryExists(path string) error {
	info, err := stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.Errorf("%w: the path %q is not a directory", ErrInvalidInput, path)
	}
	return nil
}

func stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.Errorf("%w: the path %q does not exist", ErrNotFound, path)
	}
	if err != nil {
		return nil, errors.Errorf("%w: stat %q: %w", ErrIO, path, err)
	}
	return info, nil
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput reports whether err is, or wraps, ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsIO reports whether err is, or wraps, ErrIO.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

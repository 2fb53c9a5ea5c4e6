package verify

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

// MismatchError reports a copy whose size or digest differs from its source.
type MismatchError struct {
	Path     string
	What     string
	Expected string
	Got      string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s mismatch for %q: expected %s, got %s", e.What, e.Path, e.Expected, e.Got)
}

// IsMismatch reports whether err is, or wraps, a *MismatchError.
func IsMismatch(err error) bool {
	var e *MismatchError
	return errors.As(err, &e)
}

type Verifier struct {
	hashVerify bool
}

func New(hashVerify bool) *Verifier {
	return &Verifier{hashVerify: hashVerify}
}

// Verify checks destPath against its source: the size always, the SHA-256
// digest when hash verification is on.
func (v *Verifier) Verify(srcPath, destPath string, expectedSize int64) error {
	destInfo, err := os.Stat(destPath)
	if err != nil {
		return errors.Errorf("destination file not found: %w", err)
	}

	if destInfo.Size() != expectedSize {
		return &MismatchError{
			Path:     destPath,
			What:     "size",
			Expected: fmt.Sprint(expectedSize),
			Got:      fmt.Sprint(destInfo.Size()),
		}
	}

	if !v.hashVerify {
		return nil
	}

	srcHash, err := HashFile(srcPath)
	if err != nil {
		return errors.Errorf("failed to hash source: %w", err)
	}

	destHash, err := HashFile(destPath)
	if err != nil {
		return errors.Errorf("failed to hash destination: %w", err)
	}

	if srcHash != destHash {
		return &MismatchError{Path: destPath, What: "hash", Expected: srcHash, Got: destHash}
	}

	return nil
}

// HashFile returns the hex SHA-256 digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

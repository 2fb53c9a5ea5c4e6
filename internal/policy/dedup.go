package policy

import (
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/On-Jun9/PhotoTidy/internal/pathcheck"
	"github.com/On-Jun9/PhotoTidy/internal/verify"
	"github.com/On-Jun9/PhotoTidy/pkg/types"
)

// DedupChecker decides whether a planned destination already holds the
// source's content. It never renames; a non-duplicate is simply overwritten.
type DedupChecker struct {
	method types.DedupMethod
}

func NewDedupChecker(method types.DedupMethod) *DedupChecker {
	return &DedupChecker{method: method}
}

// ParseMethod maps a config value to a DedupMethod.
func ParseMethod(s string) (types.DedupMethod, error) {
	switch m := types.DedupMethod(s); m {
	case types.DedupMethodNone, types.DedupMethodNameSize, types.DedupMethodHash:
		return m, nil
	}
	return types.DedupMethodNone, errors.Errorf("%w: unknown dedup method %q", pathcheck.ErrInvalidInput, s)
}

func (d *DedupChecker) Enabled() bool {
	return d.method != types.DedupMethodNone
}

func (d *DedupChecker) IsDuplicate(src types.FileEntry, destPath string) (bool, error) {
	if !d.Enabled() {
		return false, nil
	}

	destInfo, err := os.Stat(destPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Errorf("%w: stat %q: %w", pathcheck.ErrIO, destPath, err)
	}
	if !destInfo.Mode().IsRegular() || src.Size != destInfo.Size() {
		return false, nil
	}

	if d.method == types.DedupMethodNameSize {
		return true, nil
	}

	srcHash, err := verify.HashFile(src.Path)
	if err != nil {
		return false, errors.Errorf("%w: hashing %q: %w", pathcheck.ErrIO, src.Path, err)
	}

	destHash, err := verify.HashFile(destPath)
	if err != nil {
		return false, errors.Errorf("%w: hashing %q: %w", pathcheck.ErrIO, destPath, err)
	}

	return srcHash == destHash, nil
}

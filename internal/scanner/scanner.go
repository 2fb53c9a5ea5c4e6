package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/On-Jun9/PhotoTidy/internal/pathcheck"
	"github.com/On-Jun9/PhotoTidy/pkg/types"
)

type Scanner struct {
	exclude []string
}

// New returns a Scanner that drops entries whose base name matches any of the
// doublestar patterns in exclude.
func New(exclude []string) (*Scanner, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("%w: bad exclude pattern %q", pathcheck.ErrInvalidInput, pattern)
		}
	}
	return &Scanner{exclude: exclude}, nil
}

// List returns the regular files directly inside dir, sorted by path.
// Symlinks are followed. Entries that cannot be stat'ed are skipped.
func (s *Scanner) List(dir string) ([]types.FileEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("%w: listing %q: %w", pathcheck.ErrIO, dir, err)
	}

	var entries []types.FileEntry
	for _, d := range dirEntries {
		if s.excluded(d.Name()) {
			continue
		}

		path := filepath.Join(dir, d.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		entries = append(entries, types.FileEntry{
			Path:      path,
			Name:      d.Name(),
			Size:      info.Size(),
			ModTime:   info.ModTime(),
			Extension: strings.TrimPrefix(strings.ToLower(filepath.Ext(d.Name())), "."),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return entries, nil
}

func (s *Scanner) excluded(name string) bool {
	for _, pattern := range s.exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

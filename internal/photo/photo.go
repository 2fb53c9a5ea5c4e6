// Package photo derives the canonical name of a photo file from its embedded
// capture time.
package photo

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"gitlab.com/tozd/go/errors"

	"github.com/On-Jun9/PhotoTidy/internal/metadata"
	"github.com/On-Jun9/PhotoTidy/internal/pathcheck"
	"github.com/On-Jun9/PhotoTidy/pkg/types"
)

// MetadataReader loads the EXIF container of a file, returning nil when there
// is none.
type MetadataReader interface {
	Read(path string) *exif.Exif
}

// Photo is one source file. Its metadata is read on first use and kept for
// the lifetime of the value.
type Photo struct {
	path   string
	stem   string
	ext    string
	reader MetadataReader

	once sync.Once
	exif *exif.Exif
}

// New checks that path is an existing regular file with an extension. The
// file is not opened.
func New(path string, reader MetadataReader) (*Photo, error) {
	if _, err := pathcheck.FileExists(path); err != nil {
		return nil, err
	}

	stem, ext := splitName(filepath.Base(path))
	if ext == "" {
		return nil, errors.Errorf("%w: the path %q does not have an extension", pathcheck.ErrInvalidInput, path)
	}

	return &Photo{
		path:   path,
		stem:   stem,
		ext:    ext,
		reader: reader,
	}, nil
}

// Path returns the path the photo was created with.
func (p *Photo) Path() string {
	return p.path
}

// Name returns the current base name.
func (p *Photo) Name() string {
	return filepath.Base(p.path)
}

// Extension returns the extension without the dot, in its original case.
func (p *Photo) Extension() string {
	return p.ext
}

func (p *Photo) metadata() *exif.Exif {
	p.once.Do(func() {
		if p.reader != nil {
			p.exif = p.reader.Read(p.path)
		}
	})
	return p.exif
}

// HasMetadata reports whether an EXIF container was found.
func (p *Photo) HasMetadata() bool {
	return p.metadata() != nil
}

// Timestamp returns the capture time recorded in the primary image
// directory, if present and well formed.
func (p *Photo) Timestamp() (time.Time, bool) {
	return metadata.CaptureTime(p.metadata())
}

// CanonicalName returns the destination filename: the capture time as
// YYYY-MM-DD_HH-MM-SS, or the original stem when there is none, followed by
// the lower-cased extension.
func (p *Photo) CanonicalName() string {
	stem := p.stem
	if t, ok := p.Timestamp(); ok {
		stem = metadata.FormatStem(t)
	}
	return stem + "." + strings.ToLower(p.ext)
}

// Fields lists every parsed metadata field. It reports false when the file
// has no metadata.
func (p *Photo) Fields() ([]types.MetadataField, bool) {
	x := p.metadata()
	if x == nil {
		return nil, false
	}
	return metadata.Fields(x), true
}

// splitName splits a base name at its last dot. A leading dot does not start an
// extension, so ".profile" has none; "photo." has an empty one.
func splitName(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

package metadata

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

// captureLayouts are the accepted forms of the DateTime text. EXIF stores
// "2006:01:02 15:04:05"; the dashed form is how the same value is displayed.
var captureLayouts = []string{
	"2006-01-02 15:04:05",
	"2006:01:02 15:04:05",
}

const stemLayout = "2006-01-02_15-04-05"

var registerOnce sync.Once

// Reader decodes the EXIF container embedded in a file.
type Reader struct {
	logger zerolog.Logger
}

// NewReader returns a Reader. Decode failures are reported to logger at debug
// level only; pass zerolog.Nop() to discard them.
func NewReader(logger zerolog.Logger) *Reader {
	registerOnce.Do(func() {
		exif.RegisterParsers(mknote.All...)
	})
	return &Reader{logger: logger}
}

// Read returns the decoded container of the file at path, or nil when the file
// cannot be opened, holds no EXIF data, or the data is unusable. It never panics.
func (r *Reader) Read(path string) (x *exif.Exif) {
	f, err := os.Open(path)
	if err != nil {
		r.logger.Debug().Err(err).Str("path", path).Msg("open for metadata failed")
		return nil
	}
	defer f.Close()

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Debug().Str("path", path).Interface("panic", rec).Msg("exif decoder panicked")
			x = nil
		}
	}()

	x, err = exif.Decode(f)
	if err != nil {
		if x == nil || exif.IsCriticalError(err) {
			r.logger.Debug().Err(err).Str("path", path).Msg("no EXIF data")
			return nil
		}
		r.logger.Debug().Err(err).Str("path", path).Msg("partial EXIF data")
	}
	return x
}

// CaptureTime returns the DateTime field of the primary image directory.
// Missing, non-text, or malformed values all report false.
func CaptureTime(x *exif.Exif) (time.Time, bool) {
	if x == nil {
		return time.Time{}, false
	}

	tag, err := x.Get(exif.DateTime)
	if err != nil {
		return time.Time{}, false
	}
	text, err := tag.StringVal()
	if err != nil {
		return time.Time{}, false
	}

	return ParseCaptureTime(text)
}

// ParseCaptureTime parses the textual DateTime value. The result carries no
// zone information and is expressed in UTC.
func ParseCaptureTime(text string) (time.Time, bool) {
	text = strings.TrimRight(text, "\x00 ")
	for _, layout := range captureLayouts {
		if t, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatStem renders t as the canonical file stem, e.g. 2023-06-01_10-15-30.
func FormatStem(t time.Time) string {
	return t.Format(stemLayout)
}

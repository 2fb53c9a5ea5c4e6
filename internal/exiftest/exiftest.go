// Package exiftest assembles small EXIF containers byte by byte for tests.
package exiftest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// TIFF field types.
const (
	typeASCII    = 2
	typeShort    = 3
	typeRational = 5
)

// Well-known tag ids.
const (
	TagMake           = 0x010F
	TagModel          = 0x0110
	TagXResolution    = 0x011A
	TagResolutionUnit = 0x0128
	TagDateTime       = 0x0132
	TagCompression    = 0x0103
)

// Entry is one IFD entry.
type Entry struct {
	ID    uint16
	Type  uint16
	Count uint32
	Data  []byte
}

// ASCII returns a NUL-terminated ASCII entry.
func ASCII(id uint16, value string) Entry {
	data := append([]byte(value), 0x00)
	return Entry{ID: id, Type: typeASCII, Count: uint32(len(data)), Data: data}
}

// Short returns a single SHORT entry.
func Short(id uint16, value uint16) Entry {
	return Entry{ID: id, Type: typeShort, Count: 1, Data: binary.LittleEndian.AppendUint16(nil, value)}
}

// Rational returns a single RATIONAL entry.
func Rational(id uint16, num, den uint32) Entry {
	data := binary.LittleEndian.AppendUint32(nil, num)
	data = binary.LittleEndian.AppendUint32(data, den)
	return Entry{ID: id, Type: typeRational, Count: 1, Data: data}
}

// TIFF lays out a little-endian TIFF stream with one IFD per argument, chained
// in order. Values longer than four bytes follow their IFD.
func TIFF(ifds ...[]Entry) []byte {
	le := binary.LittleEndian
	buf := []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00}

	for i, entries := range ifds {
		sorted := append([]Entry(nil), entries...)
		sort.Slice(sorted, func(a, b int) bool { return sorted[a].ID < sorted[b].ID })

		dataOffset := len(buf) + 2 + 12*len(sorted) + 4
		var ifd, data []byte
		ifd = le.AppendUint16(ifd, uint16(len(sorted)))
		for _, e := range sorted {
			ifd = le.AppendUint16(ifd, e.ID)
			ifd = le.AppendUint16(ifd, e.Type)
			ifd = le.AppendUint32(ifd, e.Count)
			if len(e.Data) <= 4 {
				inline := make([]byte, 4)
				copy(inline, e.Data)
				ifd = append(ifd, inline...)
				continue
			}
			ifd = le.AppendUint32(ifd, uint32(dataOffset+len(data)))
			data = append(data, e.Data...)
			if len(data)%2 == 1 {
				data = append(data, 0x00)
			}
		}

		next := uint32(0)
		if i < len(ifds)-1 {
			next = uint32(dataOffset + len(data))
		}
		ifd = le.AppendUint32(ifd, next)

		buf = append(buf, ifd...)
		buf = append(buf, data...)
	}

	return buf
}

// JPEG wraps a TIFF stream in a minimal JPEG with an APP1 Exif segment.
func JPEG(tiff []byte) []byte {
	payload := append([]byte("Exif\x00\x00"), tiff...)
	size := len(payload) + 2

	out := []byte{0xFF, 0xD8, 0xFF, 0xE1, byte(size >> 8), byte(size)}
	out = append(out, payload...)
	return append(out, 0xFF, 0xD9)
}

// WithDateTime returns a JPEG whose primary image carries the given DateTime text.
func WithDateTime(value string) []byte {
	return JPEG(TIFF([]Entry{ASCII(TagDateTime, value)}))
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

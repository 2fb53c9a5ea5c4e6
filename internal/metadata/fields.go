package metadata

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/On-Jun9/PhotoTidy/pkg/types"
)

// maxValues caps how many elements of an array-valued tag are rendered.
const maxValues = 16

// Fields returns every field of x sorted by tag name. Fields reached through the
// primary image directory (including its Exif, GPS, interop and maker note
// sub-directories) are segment 0; each following directory, usually the
// thumbnail, gets its position in the chain.
func Fields(x *exif.Exif) []types.MetadataField {
	if x == nil {
		return nil
	}

	w := &fieldWalker{
		x:         x,
		ifd0:      make(map[*tiff.Tag]bool),
		later:     make(map[*tiff.Tag]string),
		ifd0Names: make(map[uint16]string),
	}
	var dirs []*tiff.Dir
	if x.Tiff != nil {
		dirs = x.Tiff.Dirs
	}
	for i, dir := range dirs {
		for _, tag := range dir.Tags {
			if i == 0 {
				w.ifd0[tag] = true
			} else {
				w.later[tag] = ""
			}
		}
	}
	_ = x.Walk(w)

	for i, dir := range dirs {
		if i == 0 {
			continue
		}
		for _, tag := range dir.Tags {
			name := w.later[tag]
			if name == "" {
				name = w.nameOf(tag.Id)
			}
			w.fields = append(w.fields, types.MetadataField{
				Tag:     name,
				Segment: i,
				Value:   displayValue(x, exif.FieldName(name), tag),
			})
		}
	}

	sort.SliceStable(w.fields, func(i, j int) bool {
		if w.fields[i].Tag != w.fields[j].Tag {
			return w.fields[i].Tag < w.fields[j].Tag
		}
		return w.fields[i].Segment < w.fields[j].Segment
	})
	return w.fields
}

type fieldWalker struct {
	x         *exif.Exif
	ifd0      map[*tiff.Tag]bool
	later     map[*tiff.Tag]string
	ifd0Names map[uint16]string
	fields    []types.MetadataField
}

// Walk records fields of the primary image. Tags that live in a later
// directory (goexif maps the thumbnail offsets into its field set) only get
// their name recorded here and are emitted with their own segment.
func (w *fieldWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if _, ok := w.later[tag]; ok {
		w.later[tag] = string(name)
		return nil
	}
	if w.ifd0[tag] {
		w.ifd0Names[tag.Id] = string(name)
	}

	w.fields = append(w.fields, types.MetadataField{
		Tag:     string(name),
		Segment: 0,
		Value:   displayValue(w.x, name, tag),
	})
	return nil
}

// nameOf names a tag outside the primary directory after the primary tag with
// the same id, which holds for the baseline TIFF tags a thumbnail carries.
func (w *fieldWalker) nameOf(id uint16) string {
	if name, ok := w.ifd0Names[id]; ok {
		return name
	}
	return fmt.Sprintf("Tag(0x%04X)", id)
}

func displayValue(x *exif.Exif, name exif.FieldName, tag *tiff.Tag) string {
	value := formatValue(tag)
	if unit := unitFor(x, name); unit != "" {
		value += " " + unit
	}
	return value
}

func unitFor(x *exif.Exif, name exif.FieldName) string {
	switch name {
	case exif.ExposureTime:
		return "s"
	case exif.FocalLength, exif.FocalLengthIn35mmFilm:
		return "mm"
	case exif.GPSAltitude:
		return "m"
	case exif.ExposureBiasValue:
		return "EV"
	case exif.XResolution, exif.YResolution:
		return resolutionUnit(x, exif.ResolutionUnit)
	case exif.FocalPlaneXResolution, exif.FocalPlaneYResolution:
		return resolutionUnit(x, exif.FocalPlaneResolutionUnit)
	}
	return ""
}

func resolutionUnit(x *exif.Exif, field exif.FieldName) string {
	unit := 2
	if tag, err := x.Get(field); err == nil {
		if v, err := tag.Int(0); err == nil {
			unit = v
		}
	}
	switch unit {
	case 2:
		return "pixels per inch"
	case 3:
		return "pixels per cm"
	}
	return ""
}

func formatValue(tag *tiff.Tag) string {
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err == nil {
			return strings.TrimRight(s, "\x00 ")
		}
	case tiff.IntVal:
		return joinValues(tag, func(i int) (string, error) {
			v, err := tag.Int64(i)
			return strconv.FormatInt(v, 10), err
		})
	case tiff.RatVal:
		return joinValues(tag, func(i int) (string, error) {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return "", err
			}
			if den == 1 {
				return strconv.FormatInt(num, 10), nil
			}
			return fmt.Sprintf("%d/%d", num, den), nil
		})
	case tiff.FloatVal:
		return joinValues(tag, func(i int) (string, error) {
			v, err := tag.Float(i)
			return strconv.FormatFloat(v, 'g', -1, 64), err
		})
	}
	return formatBytes(tag.Val)
}

func joinValues(tag *tiff.Tag, format func(i int) (string, error)) string {
	n := int(tag.Count)
	var parts []string
	for i := 0; i < n && i < maxValues; i++ {
		s, err := format(i)
		if err != nil {
			return formatBytes(tag.Val)
		}
		parts = append(parts, s)
	}
	if n > maxValues {
		parts = append(parts, "...")
	}
	return strings.Join(parts, ", ")
}

func formatBytes(b []byte) string {
	printable := len(b) > 0
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			printable = false
			break
		}
	}
	if printable {
		return string(b)
	}
	if len(b) > maxValues {
		return fmt.Sprintf("%d bytes", len(b))
	}
	return fmt.Sprintf("% x", b)
}

package metadata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/On-Jun9/PhotoTidy/internal/exiftest"
)

func newTestReader() *Reader {
	return NewReader(zerolog.Nop())
}

// TestReaderRead_ReturnsNilWhenSourceMissing는 테스트 코드 동작을 검증하거나 보조합니다.
func TestReaderRead_ReturnsNilWhenSourceMissing(t *testing.T) {
	// 파일 오픈이 실패해도 패닉이나 에러 없이 nil이어야 한다.
	x := newTestReader().Read("/path/does/not/exist.jpg")
	assert.Nil(t, x)
}

// TestReaderRead_ReturnsNilForPlainFile는 테스트 코드 동작을 검증하거나 보조합니다.
func TestReaderRead_ReturnsNilForPlainFile(t *testing.T) {
	// EXIF 없는 일반 파일은 "메타데이터 없음"으로 처리되어야 한다.
	path := exiftest.WriteFile(t, t.TempDir(), "plain.jpg", []byte("not-a-real-jpeg-with-exif"))
	assert.Nil(t, newTestReader().Read(path))
}

// TestReaderRead_ReturnsNilForTruncatedContainer는 테스트 코드 동작을 검증하거나 보조합니다.
func TestReaderRead_ReturnsNilForTruncatedContainer(t *testing.T) {
	// 잘린 TIFF 데이터도 에러 없이 nil이어야 한다.
	data := exiftest.TIFF([]exiftest.Entry{exiftest.ASCII(exiftest.TagDateTime, "2023:06:01 10:15:30")})
	path := exiftest.WriteFile(t, t.TempDir(), "cut.tiff", data[:12])
	assert.Nil(t, newTestReader().Read(path))
}

// TestReaderRead_ReturnsNilForEmptyFile는 테스트 코드 동작을 검증하거나 보조합니다.
func TestReaderRead_ReturnsNilForEmptyFile(t *testing.T) {
	path := exiftest.WriteFile(t, t.TempDir(), "empty.jpg", nil)
	assert.Nil(t, newTestReader().Read(path))
}

// TestReaderRead_DirectoryPathReturnsNil는 테스트 코드 동작을 검증하거나 보조합니다.
func TestReaderRead_DirectoryPathReturnsNil(t *testing.T) {
	// 디렉터리를 읽으려 해도 호출자에게 실패가 전파되지 않아야 한다.
	dir := filepath.Join(t.TempDir(), "dir.jpg")
	require.NoError(t, os.MkdirAll(dir, 0755))
	assert.Nil(t, newTestReader().Read(dir))
}

// TestCaptureTime_FromTIFF는 테스트 코드 동작을 검증하거나 보조합니다.
func TestCaptureTime_FromTIFF(t *testing.T) {
	// 원시 TIFF의 DateTime 태그에서 캡처 시간을 읽어야 한다.
	data := exiftest.TIFF([]exiftest.Entry{exiftest.ASCII(exiftest.TagDateTime, "2025:12:31 12:34:56")})
	path := exiftest.WriteFile(t, t.TempDir(), "datetime.tiff", data)

	x := newTestReader().Read(path)
	require.NotNil(t, x)

	got, ok := CaptureTime(x)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 12, 31, 12, 34, 56, 0, time.UTC), got)
}

// TestCaptureTime_FromJPEG는 테스트 코드 동작을 검증하거나 보조합니다.
func TestCaptureTime_FromJPEG(t *testing.T) {
	// JPEG APP1 세그먼트 안의 EXIF도 동일하게 읽혀야 한다.
	path := exiftest.WriteFile(t, t.TempDir(), "IMG_0001.JPG", exiftest.WithDateTime("2023:06:01 10:15:30"))

	x := newTestReader().Read(path)
	require.NotNil(t, x)

	got, ok := CaptureTime(x)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 6, 1, 10, 15, 30, 0, time.UTC), got)
}

// TestCaptureTime_MissingField는 테스트 코드 동작을 검증하거나 보조합니다.
func TestCaptureTime_MissingField(t *testing.T) {
	// EXIF는 있지만 DateTime 태그가 없으면 false여야 한다.
	data := exiftest.TIFF([]exiftest.Entry{exiftest.ASCII(exiftest.TagMake, "ACME Cameras")})
	path := exiftest.WriteFile(t, t.TempDir(), "no-date.tiff", data)

	x := newTestReader().Read(path)
	require.NotNil(t, x)

	_, ok := CaptureTime(x)
	assert.False(t, ok)
}

// TestCaptureTime_MalformedFieldIsAbsent는 테스트 코드 동작을 검증하거나 보조합니다.
func TestCaptureTime_MalformedFieldIsAbsent(t *testing.T) {
	// 형식이 잘못된 DateTime 텍스트는 치명적 오류가 아니라 "없음"으로 취급되어야 한다.
	path := exiftest.WriteFile(t, t.TempDir(), "bad.jpg", exiftest.WithDateTime("sometime in June"))

	x := newTestReader().Read(path)
	require.NotNil(t, x)

	_, ok := CaptureTime(x)
	assert.False(t, ok)
}

// TestCaptureTime_NilContainer는 테스트 코드 동작을 검증하거나 보조합니다.
func TestCaptureTime_NilContainer(t *testing.T) {
	_, ok := CaptureTime(nil)
	assert.False(t, ok)
}

// TestParseCaptureTime는 테스트 코드 동작을 검증하거나 보조합니다.
func TestParseCaptureTime(t *testing.T) {
	want := time.Date(2023, 6, 1, 10, 15, 30, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "dashed display form", input: "2023-06-01 10:15:30", ok: true},
		{name: "raw exif form", input: "2023:06:01 10:15:30", ok: true},
		{name: "trailing nul and spaces", input: "2023:06:01 10:15:30\x00 ", ok: true},
		{name: "empty", input: "", ok: false},
		{name: "blank exif placeholder", input: "    :  :     :  :  ", ok: false},
		{name: "date only", input: "2023-06-01", ok: false},
		{name: "out of range month", input: "2023-13-01 10:15:30", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCaptureTime(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, want, got)
			}
		})
	}
}

// TestFormatStem는 테스트 코드 동작을 검증하거나 보조합니다.
func TestFormatStem(t *testing.T) {
	// 24시간제, 0 채움, 날짜/시간 사이 밑줄 형식이어야 한다.
	assert.Equal(t, "2023-06-01_10-15-30", FormatStem(time.Date(2023, 6, 1, 10, 15, 30, 0, time.UTC)))
	assert.Equal(t, "2001-02-03_23-04-05", FormatStem(time.Date(2001, 2, 3, 23, 4, 5, 0, time.UTC)))
}

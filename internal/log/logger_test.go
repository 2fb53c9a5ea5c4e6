package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/On-Jun9/PhotoTidy/pkg/types"
)

func sampleTask() types.CopyTask {
	return types.CopyTask{
		Source:   types.FileEntry{Name: "a.jpg", Path: "/src/a.jpg"},
		DestPath: "/dest/a.jpg",
		Action:   types.CopyActionCopied,
	}
}

// TestLogger_WritesTextEntriesToFile는 테스트 코드 동작을 검증하거나 보조합니다.
func TestLogger_WritesTextEntriesToFile(t *testing.T) {
	// 텍스트 로깅 모드에서 Info/Error/LogTask가 파일에 기록되어야 한다.
	logPath := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := New(Options{Console: &bytes.Buffer{}, FilePath: logPath})
	require.NoError(t, err)

	logger.Info("hello")
	logger.Error("failed op", errors.New("boom"))
	logger.LogTask(sampleTask(), 10*time.Millisecond)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "INF hello")
	assert.Contains(t, text, "ERR failed op")
	assert.Contains(t, text, "boom")
	assert.Contains(t, text, "copied: a.jpg -> /dest/a.jpg")
}

// TestLogger_JSONModeWritesJSONLine는 테스트 코드 동작을 검증하거나 보조합니다.
func TestLogger_JSONModeWritesJSONLine(t *testing.T) {
	// JSON 로깅 모드에서는 한 줄 JSON 레코드가 출력되어야 한다.
	logPath := filepath.Join(t.TempDir(), "logs", "app.jsonl")
	logger, err := New(Options{Console: &bytes.Buffer{}, FilePath: logPath, JSON: true})
	require.NoError(t, err)

	logger.Info("json-message")
	logger.LogTask(sampleTask(), time.Millisecond)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"json-message"`)
	assert.Contains(t, string(data), `"action":"copied"`)
	assert.Contains(t, string(data), `"source":"/src/a.jpg"`)
}

// TestLogger_ConsoleRespectsLevel는 테스트 코드 동작을 검증하거나 보조합니다.
func TestLogger_ConsoleRespectsLevel(t *testing.T) {
	// 설정된 레벨보다 낮은 메시지는 콘솔에 나오지 않아야 한다.
	var buf bytes.Buffer
	logger, err := New(Options{Console: &buf, Level: zerolog.WarnLevel, NoColor: true})
	require.NoError(t, err)

	logger.Debug("hidden-debug")
	logger.Info("hidden-info")
	logger.Warn("shown-warn")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown-warn")
}

// TestLogger_CopyingLine는 테스트 코드 동작을 검증하거나 보조합니다.
func TestLogger_CopyingLine(t *testing.T) {
	// 복사 시작 시 "copying src -> dest" 줄이 콘솔에 기록되어야 한다.
	var buf bytes.Buffer
	logger, err := New(Options{Console: &buf, NoColor: true})
	require.NoError(t, err)

	logger.Copying("/src/a.jpg", "/dest/b.jpg")

	assert.Contains(t, buf.String(), "copying /src/a.jpg -> /dest/b.jpg")
}

// TestLogger_ProgressModeKeepsTaskLinesOffConsole는 테스트 코드 동작을 검증하거나 보조합니다.
func TestLogger_ProgressModeKeepsTaskLinesOffConsole(t *testing.T) {
	// 진행 막대 모드에서는 파일별 줄이 콘솔 대신 로그 파일에만 기록되어야 한다.
	var buf bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "run.log")
	logger, err := New(Options{Console: &buf, FilePath: logPath, Progress: true, NoColor: true})
	require.NoError(t, err)

	logger.Copying("/src/a.jpg", "/dest/a.jpg")
	logger.LogTask(sampleTask(), time.Millisecond)
	logger.Progress(1, 2, "a.jpg")
	require.NoError(t, logger.Close())

	assert.NotContains(t, buf.String(), "copying /src/a.jpg")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "copying /src/a.jpg -> /dest/a.jpg")
	assert.Contains(t, string(data), "copied: a.jpg -> /dest/a.jpg")
}

// TestLogger_SummaryWritesToConsole는 테스트 코드 동작을 검증하거나 보조합니다.
func TestLogger_SummaryWritesToConsole(t *testing.T) {
	// Summary 출력은 console writer로 전달되어야 한다.
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	logger, err := New(Options{Console: &buf, NoColor: true})
	require.NoError(t, err)

	logger.Summary(types.RunSummary{
		ScannedFiles:   3,
		Copied:         1,
		Overwritten:    1,
		Skipped:        1,
		NoMetadata:     2,
		Duration:       2 * time.Second,
		BytesCopied:    1024,
		BytesPerSecond: 512,
	})

	out := buf.String()
	assert.Contains(t, out, "PhotoTidy Summary")
	assert.Contains(t, out, "Scanned files:  3")
	assert.Contains(t, out, "Copied:         1")
	assert.Contains(t, out, "Overwritten:    1")
	assert.Contains(t, out, "No metadata:    2")
	assert.Contains(t, out, "Bytes copied:")
}

// TestLogger_NopAndClose는 테스트 코드 동작을 검증하거나 보조합니다.
func TestLogger_NopAndClose(t *testing.T) {
	// 파일 핸들이 없는 로거는 Close 시 에러 없이 종료되어야 한다.
	logger := Nop()
	logger.Info("ignored")
	logger.Progress(1, 1, "a.jpg")
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())
}

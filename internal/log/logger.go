package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"gitlab.com/tozd/go/errors"

	"github.com/On-Jun9/PhotoTidy/pkg/types"
)

const fileTimeFormat = "2006-01-02 15:04:05"

type Options struct {
	// Console receives human readable lines. Defaults to os.Stdout.
	Console io.Writer
	// FilePath, when set, receives a copy of every record.
	FilePath string
	// JSON writes the file as one JSON object per line instead of plain text.
	JSON bool
	// Level is the minimum level written. The zero value is debug.
	Level zerolog.Level
	// Progress replaces the per-file console lines with a progress bar.
	Progress bool
	NoColor  bool
}

type Logger struct {
	mu       sync.Mutex
	console  io.Writer
	file     *os.File
	zlog     zerolog.Logger
	taskLog  zerolog.Logger
	progress bool
	bar      *progressbar.ProgressBar
}

func New(opts Options) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	l := &Logger{console: console, progress: opts.Progress}

	consoleOut := zerolog.ConsoleWriter{Out: console, NoColor: opts.NoColor, TimeFormat: time.TimeOnly}
	writers := []io.Writer{consoleOut}

	var fileOut io.Writer
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return nil, errors.Errorf("creating log directory: %w", err)
		}
		file, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Errorf("opening log file: %w", err)
		}
		l.file = file

		fileOut = file
		if !opts.JSON {
			fileOut = zerolog.ConsoleWriter{Out: file, NoColor: true, TimeFormat: fileTimeFormat}
		}
		writers = append(writers, fileOut)
	}

	l.zlog = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(opts.Level).With().Timestamp().Logger()

	switch {
	case !opts.Progress:
		l.taskLog = l.zlog
	case fileOut != nil:
		l.taskLog = zerolog.New(fileOut).Level(opts.Level).With().Timestamp().Logger()
	default:
		l.taskLog = zerolog.Nop()
	}

	return l, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{console: io.Discard, zlog: zerolog.Nop(), taskLog: zerolog.Nop()}
}

// Zerolog exposes the underlying logger for packages that log on their own.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zlog
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.bar != nil {
		l.bar.Finish()
		l.bar = nil
	}
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) Debug(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zlog.Debug().Msg(msg)
}

func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zlog.Info().Msg(msg)
}

func (l *Logger) Warn(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zlog.Warn().Msg(msg)
}

func (l *Logger) Error(msg string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zlog.Error().Err(err).Msg(msg)
}

// Copying announces a copy before it starts.
func (l *Logger) Copying(src, dest string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.taskLog.Info().Msgf("copying %s -> %s", src, dest)
}

// LogTask records the outcome of one task.
func (l *Logger) LogTask(task types.CopyTask, duration time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	event := l.taskLog.Info()
	if task.Error != "" {
		event = l.taskLog.Error().Str("error", task.Error)
	}
	if task.CaptureTime != nil {
		event = event.Time("capture_time", *task.CaptureTime)
	}

	event.
		Str("source", task.Source.Path).
		Str("dest", task.DestPath).
		Str("action", string(task.Action)).
		Dur("duration", duration).
		Msgf("%s: %s -> %s", task.Action, task.Source.Name, task.DestPath)
}

// Progress advances the bar in progress mode and logs at debug level otherwise.
func (l *Logger) Progress(current, total int, filename string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.progress {
		l.zlog.Debug().Int("current", current).Int("total", total).Msgf("[%d/%d] %s", current, total, filename)
		return
	}

	if l.bar == nil {
		l.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(l.console),
			progressbar.OptionSetDescription("Copying"),
			progressbar.OptionSetWidth(20),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	l.bar.Describe(filename)
	l.bar.Set(current)
}

func (l *Logger) Summary(summary types.RunSummary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.bar != nil {
		l.bar.Finish()
		l.bar = nil
	}

	l.taskLog.Info().
		Int("scanned", summary.ScannedFiles).
		Int("copied", summary.Copied).
		Int("overwritten", summary.Overwritten).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Int("no_metadata", summary.NoMetadata).
		Int64("bytes", summary.BytesCopied).
		Dur("duration", summary.Duration).
		Msg("run finished")

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	failed := color.New(color.Faint)
	if summary.Failed > 0 {
		failed = red
	}

	fmt.Fprintln(l.console, "\n=== PhotoTidy Summary ===")
	fmt.Fprintf(l.console, "Scanned files:  %d\n", summary.ScannedFiles)
	fmt.Fprintf(l.console, "Copied:         %s\n", green.Sprint(summary.Copied))
	fmt.Fprintf(l.console, "Overwritten:    %s\n", yellow.Sprint(summary.Overwritten))
	fmt.Fprintf(l.console, "Skipped:        %d\n", summary.Skipped)
	fmt.Fprintf(l.console, "Failed:         %s\n", failed.Sprint(summary.Failed))
	fmt.Fprintf(l.console, "No metadata:    %d\n", summary.NoMetadata)
	fmt.Fprintf(l.console, "Duration:       %s\n", summary.Duration.Round(time.Millisecond))
	if summary.BytesCopied > 0 {
		fmt.Fprintf(l.console, "Bytes copied:   %.2f MB\n", float64(summary.BytesCopied)/1024/1024)
		fmt.Fprintf(l.console, "Speed:          %.2f MB/s\n", summary.BytesPerSecond/1024/1024)
	}
	fmt.Fprintln(l.console, "=========================")
}

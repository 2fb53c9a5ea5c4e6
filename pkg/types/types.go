// Package types defines core data structures used across PhotoTidy modules.
package types

import (
	"fmt"
	"time"
)

// FileEntry represents a listed source file.
type FileEntry struct {
	// Path is the path to the source file as listed (source dir joined with the name).
	Path string
	// Name is the base filename.
	Name string
	// Size is the file size in bytes.
	Size int64
	// ModTime is the file modification time.
	ModTime time.Time
	// Extension is the lowercase file extension without dot (e.g., "jpg", "heic").
	Extension string
}

// MetadataField is one parsed EXIF field, rendered for display.
type MetadataField struct {
	// Tag is the field name (e.g., "DateTime", "Model").
	Tag string
	// Segment is the index of the image directory the field belongs to.
	// 0 is the primary image, 1 is usually the thumbnail.
	Segment int
	// Value is the display value, including the unit when one applies.
	Value string
}

func (f MetadataField) String() string {
	return fmt.Sprintf("%s (%d): %s", f.Tag, f.Segment, f.Value)
}

// CopyTask represents a planned file copy operation.
type CopyTask struct {
	// Source is the source FileEntry.
	Source FileEntry
	// CanonicalName is the normalized destination filename.
	CanonicalName string
	// CaptureTime is the EXIF capture time the name was derived from.
	// Nil when the original stem was kept.
	CaptureTime *time.Time
	// DestPath is the full destination file path.
	DestPath string
	// Status indicates the task status.
	Status TaskStatus
	// Error contains error message if task failed.
	Error string
	// Action indicates what action was taken (copied, skipped, overwritten, etc.).
	Action CopyAction
}

// TaskStatus represents the status of a copy task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
	TaskStatusSkipped   TaskStatus = "skipped"
)

// CopyAction represents the action taken for a file.
type CopyAction string

const (
	CopyActionCopied      CopyAction = "copied"
	CopyActionOverwritten CopyAction = "overwritten"
	CopyActionSkipped     CopyAction = "skipped"
	CopyActionFailed      CopyAction = "failed"
)

// DedupMethod defines how to detect that the destination already holds the file.
type DedupMethod string

const (
	// DedupMethodNone always copies.
	DedupMethodNone     DedupMethod = ""
	DedupMethodNameSize DedupMethod = "name-size"
	DedupMethodHash     DedupMethod = "hash"
)

// RunSummary contains statistics for a completed run.
type RunSummary struct {
	ScannedFiles   int
	Copied         int
	Overwritten    int
	Skipped        int
	Failed         int
	NoMetadata     int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	BytesCopied    int64
	BytesPerSecond float64
}

// Succeeded is the number of files written to the target directory.
func (s RunSummary) Succeeded() int {
	return s.Copied + s.Overwritten
}

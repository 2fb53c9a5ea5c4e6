package planner

import (
	"path/filepath"

	"github.com/On-Jun9/PhotoTidy/internal/photo"
	"github.com/On-Jun9/PhotoTidy/pkg/types"
)

type Planner struct {
	targetDir string
}

func New(targetDir string) *Planner {
	return &Planner{targetDir: targetDir}
}

// Plan places the photo directly in the target directory under its canonical
// name. Two photos with the same canonical name get the same DestPath.
func (p *Planner) Plan(entry types.FileEntry, ph *photo.Photo) types.CopyTask {
	task := types.CopyTask{
		Source:        entry,
		CanonicalName: ph.CanonicalName(),
		Status:        types.TaskStatusPending,
	}

	if t, ok := ph.Timestamp(); ok {
		task.CaptureTime = &t
	}

	task.DestPath = filepath.Join(p.targetDir, task.CanonicalName)
	return task
}

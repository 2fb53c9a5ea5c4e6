package copier

import (
	"io"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/On-Jun9/PhotoTidy/internal/pathcheck"
	"github.com/On-Jun9/PhotoTidy/pkg/types"
)

const partSuffix = ".part"

type Copier struct {
	dryRun bool
}

func New(dryRun bool) *Copier {
	return &Copier{dryRun: dryRun}
}

type CopyResult struct {
	Task  types.CopyTask
	Error error
}

// Copy copies the task's source bytes to its DestPath, replacing any file
// already there. The target directory must exist.
func (c *Copier) Copy(task types.CopyTask) CopyResult {
	existed := false
	if info, err := os.Stat(task.DestPath); err == nil && info.Mode().IsRegular() {
		existed = true
	}

	if c.dryRun {
		task.Status = types.TaskStatusCompleted
		task.Action = action(existed)
		return CopyResult{Task: task}
	}

	partPath := task.DestPath + partSuffix

	if err := c.atomicCopy(task.Source.Path, partPath, task.DestPath); err != nil {
		os.Remove(partPath)
		err = errors.Errorf("%w: copying %q to %q: %w", pathcheck.ErrIO, task.Source.Path, task.DestPath, err)
		task.Status = types.TaskStatusFailed
		task.Action = types.CopyActionFailed
		task.Error = err.Error()
		return CopyResult{Task: task, Error: err}
	}

	task.Status = types.TaskStatusCompleted
	task.Action = action(existed)
	return CopyResult{Task: task}
}

func action(existed bool) types.CopyAction {
	if existed {
		return types.CopyActionOverwritten
	}
	return types.CopyActionCopied
}

func (c *Copier) atomicCopy(src, partDest, finalDest string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(partDest)
	if err != nil {
		return err
	}

	_, err = io.Copy(dstFile, srcFile)
	if closeErr := dstFile.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	// Preserve modification time
	info, err := srcFile.Stat()
	if err == nil {
		os.Chtimes(partDest, info.ModTime(), info.ModTime())
	}

	return os.Rename(partDest, finalDest)
}

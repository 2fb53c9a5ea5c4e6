// Package pipeline copies every photo of a source directory into a target
// directory under its canonical name.
package pipeline

import (
	"fmt"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/On-Jun9/PhotoTidy/internal/config"
	"github.com/On-Jun9/PhotoTidy/internal/copier"
	"github.com/On-Jun9/PhotoTidy/internal/log"
	"github.com/On-Jun9/PhotoTidy/internal/metadata"
	"github.com/On-Jun9/PhotoTidy/internal/pathcheck"
	"github.com/On-Jun9/PhotoTidy/internal/photo"
	"github.com/On-Jun9/PhotoTidy/internal/planner"
	"github.com/On-Jun9/PhotoTidy/internal/policy"
	"github.com/On-Jun9/PhotoTidy/internal/scanner"
	"github.com/On-Jun9/PhotoTidy/internal/verify"
	"github.com/On-Jun9/PhotoTidy/pkg/types"
)

type Pipeline struct {
	cfg              *config.Config
	scanner          *scanner.Scanner
	reader           *metadata.Reader
	planner          *planner.Planner
	dedup            *policy.DedupChecker
	copier           *copier.Copier
	verifier         *verify.Verifier
	logger           *log.Logger
	ownsLogger       bool
	progressCallback ProgressCallback
}

// New builds a pipeline that logs according to cfg. Close releases the log file.
func New(cfg *config.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := log.New(log.Options{
		FilePath: cfg.LogFile,
		JSON:     cfg.LogJSON,
		Level:    cfg.Level(),
		Progress: cfg.Progress,
	})
	if err != nil {
		return nil, err
	}

	p, err := NewWithLogger(cfg, logger)
	if err != nil {
		logger.Close()
		return nil, err
	}
	p.ownsLogger = true
	return p, nil
}

func NewWithLogger(cfg *config.Config, logger *log.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sc, err := scanner.New(cfg.Exclude)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:      cfg,
		scanner:  sc,
		reader:   metadata.NewReader(logger.Zerolog()),
		planner:  planner.New(cfg.Target),
		dedup:    policy.NewDedupChecker(cfg.Dedup),
		copier:   copier.New(cfg.DryRun),
		verifier: verify.New(cfg.HashVerify),
		logger:   logger,
	}, nil
}

func (p *Pipeline) SetProgressCallback(cb ProgressCallback) {
	p.progressCallback = cb
}

// Run copies the source files in listing order. Files that map to the same
// canonical name overwrite each other, so the last one listed wins.
//
// Unless KeepGoing is set the first failure stops the run; the summary so far
// is returned together with the error.
func (p *Pipeline) Run() (*types.RunSummary, error) {
	summary := &types.RunSummary{StartTime: time.Now()}

	if err := pathcheck.DirectoryExists(p.cfg.Source); err != nil {
		return nil, err
	}
	if err := pathcheck.DirectoryExists(p.cfg.Target); err != nil {
		return nil, err
	}

	p.logger.Info(fmt.Sprintf("scanning %s", p.cfg.Source))
	p.notify(ProgressUpdate{Type: UpdateStatus, Message: "scanning " + p.cfg.Source})

	entries, err := p.scanner.List(p.cfg.Source)
	if err != nil {
		return nil, err
	}
	summary.ScannedFiles = len(entries)
	p.logger.Info(fmt.Sprintf("found %d files", len(entries)))

	for i, entry := range entries {
		started := time.Now()
		task, err := p.process(entry, summary)
		p.logger.LogTask(task, time.Since(started))
		p.logger.Progress(i+1, len(entries), entry.Name)

		update := ProgressUpdate{
			Type:     UpdateProgress,
			Current:  i + 1,
			Total:    len(entries),
			Filename: entry.Name,
			Action:   task.Action,
		}
		if err != nil {
			update.Error = err.Error()
		}
		p.notify(update)

		if err != nil && !p.cfg.KeepGoing {
			p.finish(summary)
			return summary, err
		}
	}

	p.finish(summary)
	return summary, nil
}

func (p *Pipeline) process(entry types.FileEntry, summary *types.RunSummary) (types.CopyTask, error) {
	ph, err := photo.New(entry.Path, p.reader)
	if err != nil {
		summary.Skipped++
		p.logger.Warn(fmt.Sprintf("skipping %s: %v", entry.Path, err))
		return types.CopyTask{
			Source: entry,
			Status: types.TaskStatusSkipped,
			Action: types.CopyActionSkipped,
			Error:  err.Error(),
		}, err
	}

	task := p.planner.Plan(entry, ph)
	if task.CaptureTime == nil {
		summary.NoMetadata++
	}

	isDup, err := p.dedup.IsDuplicate(entry, task.DestPath)
	if err != nil {
		p.logger.Warn(fmt.Sprintf("duplicate check for %s failed, copying anyway: %v", entry.Path, err))
	}
	if err == nil && isDup {
		summary.Skipped++
		task.Status = types.TaskStatusSkipped
		task.Action = types.CopyActionSkipped
		return task, nil
	}

	p.logger.Copying(entry.Path, task.DestPath)
	result := p.copier.Copy(task)
	task = result.Task
	if result.Error != nil {
		summary.Failed++
		return task, result.Error
	}

	if !p.cfg.DryRun {
		if err := p.verifier.Verify(entry.Path, task.DestPath, entry.Size); err != nil {
			err = errors.Errorf("%w: verifying %q: %w", pathcheck.ErrIO, task.DestPath, err)
			summary.Failed++
			task.Status = types.TaskStatusFailed
			task.Action = types.CopyActionFailed
			task.Error = err.Error()
			return task, err
		}
		summary.BytesCopied += entry.Size
	}

	switch task.Action {
	case types.CopyActionOverwritten:
		summary.Overwritten++
	default:
		summary.Copied++
	}
	return task, nil
}

func (p *Pipeline) finish(summary *types.RunSummary) {
	summary.EndTime = time.Now()
	summary.Duration = summary.EndTime.Sub(summary.StartTime)
	if summary.Duration.Seconds() > 0 {
		summary.BytesPerSecond = float64(summary.BytesCopied) / summary.Duration.Seconds()
	}

	p.logger.Summary(*summary)
	p.notify(ProgressUpdate{Type: UpdateComplete, Summary: summary})
}

// Close releases the logger when the pipeline created it.
func (p *Pipeline) Close() error {
	if p.ownsLogger {
		return p.logger.Close()
	}
	return nil
}

package pipeline

import "github.com/On-Jun9/PhotoTidy/pkg/types"

// ProgressCallback receives advisory updates while a run is in flight.
type ProgressCallback func(update ProgressUpdate)

const (
	UpdateStatus   = "status"
	UpdateProgress = "progress"
	UpdateComplete = "complete"
)

type ProgressUpdate struct {
	Type     string
	Message  string
	Current  int
	Total    int
	Filename string
	Action   types.CopyAction
	Summary  *types.RunSummary
	Error    string
}

func (p *Pipeline) notify(update ProgressUpdate) {
	if p.progressCallback != nil {
		p.progressCallback(update)
	}
}

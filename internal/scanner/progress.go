package scanner

import (
	"sync/atomic"
	"time"
)

// Scan stages reported through ScanProgress.
const (
	StageDiscovering = "discovering"
	StageClassifying = "classifying"
	StageGrouping    = "grouping"
	StageComplete    = "complete"
)

// ScanProgress represents real-time scan progress
type ScanProgress struct {
	Stage      string  // StageDiscovering, StageClassifying, StageGrouping, StageComplete
	Current    int     // Current file number within the stage
	Total      int     // Total files in the stage
	Percentage float64 // 0-100
	Message    string  // Human-readable status

	FilesFound      int
	ContainersFound int

	// Timing
	StartTime      time.Time
	ElapsedSeconds int
}

// ProgressReporter helps send progress updates. A reporter with a nil
// channel discards them. Advance may be called from several goroutines.
type ProgressReporter struct {
	ch        chan<- ScanProgress
	startTime time.Time
	stage     string
	total     int
	current   atomic.Int64

	filesFound      int
	containersFound int
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter(ch chan<- ScanProgress) *ProgressReporter {
	return &ProgressReporter{
		ch:        ch,
		startTime: time.Now(),
	}
}

// Start begins a stage of total items.
func (pr *ProgressReporter) Start(stage string, total int, message string) {
	pr.stage = stage
	pr.total = total
	pr.current.Store(0)
	pr.send(0, message)
}

// Advance marks one more item done in the current stage.
func (pr *ProgressReporter) Advance(message string) {
	pr.send(int(pr.current.Add(1)), message)
}

// Complete sends completion message
func (pr *ProgressReporter) Complete(files, containers int, message string) {
	pr.filesFound = files
	pr.containersFound = containers
	pr.stage = StageComplete
	pr.send(pr.total, message)
}

func (pr *ProgressReporter) send(current int, message string) {
	if pr.ch == nil {
		return
	}

	percentage := 0.0
	if pr.total > 0 {
		percentage = (float64(current) / float64(pr.total)) * 100.0
	}
	if pr.stage == StageComplete {
		percentage = 100.0
	}

	pr.ch <- ScanProgress{
		Stage:           pr.stage,
		Current:         current,
		Total:           pr.total,
		Percentage:      percentage,
		Message:         message,
		FilesFound:      pr.filesFound,
		ContainersFound: pr.containersFound,
		StartTime:       pr.startTime,
		ElapsedSeconds:  int(time.Since(pr.startTime).Seconds()),
	}
}

// Package scanner discovers media files under scan roots, classifies them
// and groups them into containers.
package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/Nomadcxx/mediasort/internal/logger"
	"github.com/Nomadcxx/mediasort/internal/matcher"
	"github.com/Nomadcxx/mediasort/internal/media"
)

// Options configure a scan.
type Options struct {
	Extensions []string
	Threshold  float64
	Workers    int
	Year       int // reference year for bare-digit markers, 0 = current
}

// DefaultOptions returns the scan defaults.
func DefaultOptions() Options {
	return Options{
		Extensions: DefaultExtensions,
		Threshold:  media.DefaultThreshold,
		Workers:    DefaultParallelConfig().Workers,
	}
}

// Result is the outcome of one scan session.
type Result struct {
	Roots      []string
	Files      []*media.MediaFile
	Containers []*media.MediaContainer
	Duration   time.Duration
}

// Scan discovers, classifies and groups every media file under roots.
// Classification runs in parallel; top-folder reconciliation and grouping
// run afterwards in discovery order, so the same tree always yields the
// same containers. progressCh may be nil.
func Scan(ctx context.Context, roots []string, opts Options, progressCh chan<- ScanProgress) (*Result, error) {
	start := time.Now()
	log := logger.FromCtx(ctx)

	if len(roots) == 0 {
		return nil, fmt.Errorf("no scan roots given")
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.Threshold <= 0 {
		opts.Threshold = media.DefaultThreshold
	}

	m := matcher.Default()
	if opts.Year > 0 {
		m = matcher.New(opts.Year)
	}

	pr := NewProgressReporter(progressCh)

	pr.Start(StageDiscovering, 0, "Discovering media files...")
	candidates, err := Discover(ctx, roots, opts.Extensions)
	if err != nil {
		return nil, err
	}
	log.Infow("discovered media files", "roots", roots, "files", len(candidates))

	pr.Start(StageClassifying, len(candidates), fmt.Sprintf("Classifying %d files...", len(candidates)))
	files, err := ClassifyParallel(ctx, media.NewClassifier(m), candidates, ParallelConfig{Workers: opts.Workers}, pr)
	if err != nil {
		return nil, err
	}

	media.ApplyTopFolderTitles(files)

	pr.Start(StageGrouping, len(files), "Grouping similar titles...")
	var containers []*media.MediaContainer
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		containers = media.AddToGroup(f, containers, opts.Threshold)
		pr.Advance(f.Title)
	}

	result := &Result{
		Roots:      roots,
		Files:      files,
		Containers: containers,
		Duration:   time.Since(start),
	}

	log.Infow("scan complete", "files", len(files), "containers", len(containers), "duration", result.Duration)
	pr.Complete(len(files), len(containers), fmt.Sprintf("Found %d files in %d groups", len(files), len(containers)))
	return result, nil
}

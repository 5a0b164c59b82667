package scanner

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Nomadcxx/mediasort/internal/logger"
	"github.com/Nomadcxx/mediasort/internal/media"
)

// ParallelConfig holds configuration for parallel classification
type ParallelConfig struct {
	Workers int // Number of concurrent workers (default: number of CPUs)
}

// DefaultParallelConfig returns optimal parallel scanning configuration
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		Workers: runtime.NumCPU(),
	}
}

// ClassifyParallel runs the classifier over candidates with a bounded
// worker pool. Files are processed in any order but results come back in
// candidate order. progress may be nil.
func ClassifyParallel(ctx context.Context, classifier *media.Classifier, candidates []Candidate, config ParallelConfig, progress *ProgressReporter) ([]*media.MediaFile, error) {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if progress == nil {
		progress = NewProgressReporter(nil)
	}
	log := logger.FromCtx(ctx)

	files := make([]*media.MediaFile, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Workers)

	for i, c := range candidates {
		// Stop handing out work once cancelled
		if gctx.Err() != nil {
			break
		}

		i, c := i, c
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			f := classifier.Classify(c.Path, c.Root)
			f.Size = c.Size
			files[i] = f

			log.Debugw("classified", "path", f.Path, "type", f.Type, "title", f.Title, "rename", f.Rename)
			progress.Advance(f.FileName)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

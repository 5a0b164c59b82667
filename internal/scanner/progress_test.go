package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nomadcxx/mediasort/internal/scanner"
)

func TestProgressReporting(t *testing.T) {
	progressCh := make(chan scanner.ScanProgress, 100)

	pr := scanner.NewProgressReporter(progressCh)

	pr.Start(scanner.StageClassifying, 4, "Starting test")
	progress1 := <-progressCh
	assert.Equal(t, scanner.StageClassifying, progress1.Stage)
	assert.Equal(t, 4, progress1.Total)
	assert.Equal(t, 0, progress1.Current)

	pr.Advance("one")
	pr.Advance("two")
	<-progressCh
	progress2 := <-progressCh
	assert.Equal(t, 2, progress2.Current)
	assert.InDelta(t, 50.0, progress2.Percentage, 0.01)
	assert.Equal(t, "two", progress2.Message)

	pr.Complete(4, 1, "Done!")
	progress3 := <-progressCh
	assert.Equal(t, scanner.StageComplete, progress3.Stage)
	assert.Equal(t, 100.0, progress3.Percentage)
	assert.Equal(t, 4, progress3.FilesFound)
	assert.Equal(t, 1, progress3.ContainersFound)
}

func TestProgressReporterWithoutChannel(t *testing.T) {
	pr := scanner.NewProgressReporter(nil)

	assert.NotPanics(t, func() {
		pr.Start(scanner.StageGrouping, 1, "start")
		pr.Advance("file")
		pr.Complete(1, 1, "done")
	})
}

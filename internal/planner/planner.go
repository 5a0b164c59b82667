// Package planner works out where each selected file would be organized to.
// It never moves, renames or creates anything.
package planner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Nomadcxx/mediasort/internal/media"
)

// Library folders under the media root.
const (
	TVShowsDir = "TV Shows"
	MoviesDir  = "Movies"
	ExtrasDir  = "Extras"
)

// Operation types
const (
	OpMove = "move"
	OpSkip = "skip"
)

// Operation represents a single planned filesystem operation
type Operation struct {
	Type        string     `json:"type"`        // OpMove or OpSkip
	Source      string     `json:"source"`      // Original path
	Destination string     `json:"destination"` // Organized path
	Kind        media.Type `json:"kind"`
	Size        int64      `json:"size,omitempty"`
	Reason      string     `json:"reason,omitempty"` // Why an operation is skipped
}

// Plan is the full set of operations for one report.
type Plan struct {
	MediaRoot  string      `json:"media_root"`
	Operations []Operation `json:"operations"`
}

// Moves returns the operations that would move a file.
func (p Plan) Moves() []Operation {
	var moves []Operation
	for _, op := range p.Operations {
		if op.Type == OpMove {
			moves = append(moves, op)
		}
	}
	return moves
}

// TotalSize is the number of bytes the moves would relocate.
func (p Plan) TotalSize() int64 {
	var total int64
	for _, op := range p.Moves() {
		total += op.Size
	}
	return total
}

// ProtectedPaths are never accepted as a media root.
var ProtectedPaths = []string{
	// System directories
	"/usr", "/etc", "/bin", "/sbin", "/boot",
	"/sys", "/proc", "/dev", "/run",
	"/lib", "/lib32", "/lib64", "/libx32",
	"/var", "/opt", "/srv",
	// Windows system paths (for cross-platform safety)
	"C:\\Windows", "C:\\Program Files", "C:\\Program Files (x86)",
}

// Build plans the destination of every selected file:
//
//	<media>/TV Shows/<container title>/Season NN/<rename>.<ext>
//	<media>/TV Shows/<container title>/Extras/<rename>.<ext>
//	<media>/Movies/<rename>.<ext>
//
// Unselected files are left out. A file whose destination is already
// claimed by an earlier file is skipped, as is one already in place.
func Build(containers []*media.MediaContainer, mediaRoot string) (Plan, error) {
	if err := validateRoot(mediaRoot); err != nil {
		return Plan{}, err
	}
	mediaRoot = filepath.Clean(mediaRoot)

	plan := Plan{MediaRoot: mediaRoot}
	claimed := make(map[string]string) // destination → source that owns it

	for _, c := range containers {
		for _, f := range c.MediaFiles {
			if !f.Selected {
				continue
			}

			op := Operation{
				Type:        OpMove,
				Source:      f.Path,
				Destination: Destination(mediaRoot, c, f),
				Kind:        f.Type,
				Size:        f.Size,
			}

			switch owner, exists := claimed[op.Destination]; {
			case filepath.Clean(f.Path) == op.Destination:
				op.Type = OpSkip
				op.Reason = "already organized"
			case exists:
				op.Type = OpSkip
				op.Reason = fmt.Sprintf("destination already claimed by %s", owner)
			default:
				claimed[op.Destination] = f.Path
			}

			plan.Operations = append(plan.Operations, op)
		}
	}

	return plan, nil
}

// SkipExisting marks moves whose destination already exists as skipped.
// exists is usually backed by os.Stat.
func (p *Plan) SkipExisting(exists func(path string) bool) {
	for i := range p.Operations {
		op := &p.Operations[i]
		if op.Type == OpMove && exists(op.Destination) {
			op.Type = OpSkip
			op.Reason = "destination exists"
		}
	}
}

// Destination returns the organized path for f as a member of c.
func Destination(mediaRoot string, c *media.MediaContainer, f *media.MediaFile) string {
	name := f.Rename
	if f.Extension != "" {
		name += "." + f.Extension
	}

	if f.Type == media.Movie {
		return filepath.Join(mediaRoot, MoviesDir, name)
	}

	title := c.Title
	if title == "" {
		title = f.Title
	}

	dir := filepath.Join(mediaRoot, TVShowsDir, title)
	switch {
	case f.IsExtras():
		dir = filepath.Join(dir, ExtrasDir)
	case f.Season != nil:
		dir = filepath.Join(dir, SeasonDir(*f.Season))
	}
	return filepath.Join(dir, name)
}

// SeasonDir names a season folder: "Season 01".
func SeasonDir(season int) string {
	return fmt.Sprintf("Season %02d", season)
}

func validateRoot(path string) error {
	if path == "" {
		return fmt.Errorf("no media root configured")
	}

	// Clean the path (removes .., redundant slashes, etc.)
	cleaned := filepath.Clean(path)

	// Ensure path is absolute for safety
	if !filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid media root %s: must be absolute path", path)
	}

	if isProtectedPath(cleaned, ProtectedPaths) {
		return fmt.Errorf("invalid media root %s: protected system path", path)
	}

	return nil
}

// isProtectedPath checks if path is, or is inside, a protected directory
func isProtectedPath(path string, protected []string) bool {
	for _, p := range protected {
		if path == p || strings.HasPrefix(path, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

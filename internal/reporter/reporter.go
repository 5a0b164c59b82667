package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Nomadcxx/mediasort/internal/media"
	"github.com/Nomadcxx/mediasort/internal/planner"
	"github.com/Nomadcxx/mediasort/internal/scanner"
)

// Report represents one scan session: the grouped files plus summary counts
type Report struct {
	Timestamp  time.Time               `json:"timestamp"`
	Roots      []string                `json:"roots"`
	Containers []*media.MediaContainer `json:"containers"`
	TotalFiles int                     `json:"total_files"`
	TVFiles    int                     `json:"tv_files"`
	MovieFiles int                     `json:"movie_files"`
	TotalSize  int64                   `json:"total_size"`
}

// New builds a report from a scan result
func New(result *scanner.Result, timestamp time.Time) Report {
	report := Report{
		Timestamp:  timestamp,
		Roots:      result.Roots,
		Containers: result.Containers,
	}
	report.recount()
	return report
}

func (r *Report) recount() {
	r.TotalFiles, r.TVFiles, r.MovieFiles, r.TotalSize = 0, 0, 0, 0
	for _, c := range r.Containers {
		for _, f := range c.MediaFiles {
			r.TotalFiles++
			r.TotalSize += f.Size
			if f.Type == media.TVShow {
				r.TVFiles++
			} else {
				r.MovieFiles++
			}
		}
	}
}

// Selected returns the number of files marked for organizing
func (r Report) Selected() int {
	n := 0
	for _, c := range r.Containers {
		for _, f := range c.MediaFiles {
			if f.Selected {
				n++
			}
		}
	}
	return n
}

// Generate writes the report as timestamped JSON and text files under dir
// (the default report directory when empty) and returns both paths
func Generate(report Report, dir string) (string, string, error) {
	if dir == "" {
		dir = ReportDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create report directory: %w", err)
	}

	// Generate filename with timestamp
	base := filepath.Join(dir, report.Timestamp.Format("20060102_150405"))

	jsonPath := base + ".json"
	if err := Save(report, jsonPath); err != nil {
		return "", "", err
	}

	textPath := base + ".txt"
	if err := os.WriteFile(textPath, []byte(BuildText(report, report.Timestamp)), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write report: %w", err)
	}

	return jsonPath, textPath, nil
}

// Save writes the report as indented JSON
func Save(report Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Load reads a JSON report written by Save
func Load(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read report: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return Report{}, fmt.Errorf("failed to parse report: %w", err)
	}
	report.recount()
	return report, nil
}

// Latest returns the newest JSON report in dir (the default report
// directory when empty)
func Latest(dir string) (string, error) {
	if dir == "" {
		dir = ReportDir()
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return "", fmt.Errorf("failed to list reports: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no reports found in %s", dir)
	}

	// Timestamped names sort chronologically
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// ReportDir returns the report directory path
func ReportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "mediasort", "scan_results")
	}
	return filepath.Join(home, ".local/share/mediasort/scan_results")
}

// BuildText renders the report for humans. now is used for the relative
// report age.
func BuildText(report Report, now time.Time) string {
	var sb strings.Builder

	// Header
	sb.WriteString("MEDIASORT SCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Generated: %s (%s)\n",
		report.Timestamp.Format("2006-01-02 15:04:05"),
		humanize.RelTime(report.Timestamp, now, "ago", "from now")))
	sb.WriteString(fmt.Sprintf("Scan Roots: %s\n", strings.Join(report.Roots, ", ")))
	sb.WriteString("\n")

	// Summary
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Media files: %s (%s)\n", humanize.Comma(int64(report.TotalFiles)), humanize.Bytes(uint64(report.TotalSize))))
	sb.WriteString(fmt.Sprintf("TV episodes: %d\n", report.TVFiles))
	sb.WriteString(fmt.Sprintf("Movies: %d\n", report.MovieFiles))
	sb.WriteString(fmt.Sprintf("Groups: %d\n", len(report.Containers)))
	sb.WriteString(fmt.Sprintf("Selected: %d\n", report.Selected()))
	sb.WriteString("\n")

	for _, section := range []struct {
		heading string
		kind    media.Type
	}{
		{"TV SHOWS", media.TVShow},
		{"MOVIES", media.Movie},
	} {
		var containers []*media.MediaContainer
		for _, c := range report.Containers {
			if c.Type == section.kind {
				containers = append(containers, c)
			}
		}
		if len(containers) == 0 {
			continue
		}

		sb.WriteString(section.heading + "\n")
		sb.WriteString(strings.Repeat("=", 80) + "\n")
		for _, c := range containers {
			sb.WriteString(formatContainer(c))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// formatContainer formats a group for display
func formatContainer(c *media.MediaContainer) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s (%d files):\n", c.Title, len(c.MediaFiles)))
	for _, f := range c.MediaFiles {
		check := "[ ]"
		if f.Selected {
			check = "[x]"
		}

		sb.WriteString(fmt.Sprintf("  %s %s -> %s\n", check, f.FileName, f.Rename))
		sb.WriteString(fmt.Sprintf("          %s\n", f.Path))
	}

	return sb.String()
}

// BuildPlanText renders an organize plan
func BuildPlanText(plan planner.Plan) string {
	var sb strings.Builder

	moves := plan.Moves()
	sb.WriteString("MEDIASORT ORGANIZE PLAN\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Media Root: %s\n", plan.MediaRoot))
	sb.WriteString(fmt.Sprintf("Moves: %d (%s)\n", len(moves), humanize.Bytes(uint64(plan.TotalSize()))))
	sb.WriteString(fmt.Sprintf("Skipped: %d\n", len(plan.Operations)-len(moves)))
	sb.WriteString("\n")

	for _, op := range plan.Operations {
		switch op.Type {
		case planner.OpMove:
			sb.WriteString(fmt.Sprintf("MOVE  %s\n", op.Source))
			sb.WriteString(fmt.Sprintf("   -> %s\n", op.Destination))
		default:
			sb.WriteString(fmt.Sprintf("SKIP  %s\n", op.Source))
			sb.WriteString(fmt.Sprintf("      %s\n", op.Reason))
		}
	}

	return sb.String()
}

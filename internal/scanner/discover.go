package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Nomadcxx/mediasort/internal/logger"
)

// DefaultExtensions are the media file types picked up by a scan.
var DefaultExtensions = []string{"mp4", "mkv", "avi", "flv", "wmv", "webm", "m4p", "mov", "m4v", "mpg", "3gp"}

// Candidate is a media file found beneath a scan root.
type Candidate struct {
	Path string
	Root string
	Size int64
}

// ExtensionSet normalizes extensions ("MKV", ".mkv", "mkv") into a lookup set.
func ExtensionSet(extensions []string) map[string]bool {
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			set[ext] = true
		}
	}
	return set
}

// isMediaFile checks the lower-cased suffix after the last dot.
func isMediaFile(name string, extensions map[string]bool) bool {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return false
	}
	return extensions[strings.ToLower(name[idx+1:])]
}

// Discover walks each root in turn and returns its media files ordered by
// directory path, then by file name within a directory. Grouping depends on
// this order, so it must not change between runs over the same tree.
// Unreadable subdirectories are skipped; an unreadable root is an error.
func Discover(ctx context.Context, roots []string, extensions []string) ([]Candidate, error) {
	log := logger.FromCtx(ctx)
	extSet := ExtensionSet(extensions)

	var candidates []Candidate
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("scan root not accessible: %s: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("scan root is not a directory: %s", root)
		}

		byDir := make(map[string][]Candidate)
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			// Check for cancellation
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil {
				if path != root && d != nil && d.IsDir() {
					log.Warnw("skipping unreadable directory", "path", path, "error", err)
					return fs.SkipDir
				}
				return err
			}

			if d.IsDir() || !isMediaFile(d.Name(), extSet) {
				return nil
			}

			// Symlinks count when they resolve to a regular file
			var info fs.FileInfo
			switch {
			case d.Type().IsRegular():
				info, _ = d.Info()
			case d.Type()&fs.ModeSymlink != 0:
				target, err := os.Stat(path)
				if err != nil || !target.Mode().IsRegular() {
					return nil
				}
				info = target
			default:
				return nil
			}

			var size int64
			if info != nil {
				size = info.Size()
			}

			dir := filepath.Dir(path)
			byDir[dir] = append(byDir[dir], Candidate{Path: path, Root: root, Size: size})
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("error scanning %s: %w", root, err)
		}

		dirs := make([]string, 0, len(byDir))
		for dir := range byDir {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)

		for _, dir := range dirs {
			files := byDir[dir]
			sort.Slice(files, func(i, j int) bool {
				return filepath.Base(files[i].Path) < filepath.Base(files[j].Path)
			})
			candidates = append(candidates, files...)
		}

		log.Debugw("discovered media files", "root", root, "directories", len(dirs))
	}

	return candidates, nil
}

package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Nomadcxx/mediasort/internal/media"
)

// Tree section labels
const (
	TVShowsLabel = "TV Shows"
	MoviesLabel  = "Movies"
	ExtrasLabel  = "Extras"
)

// Node is one entry of the presentation tree. Leaves carry a file.
type Node struct {
	Label     string
	Children  []*Node
	File      *media.MediaFile
	Container *media.MediaContainer

	index map[string]*Node
}

// IsFile reports whether the node is a file leaf
func (n *Node) IsFile() bool {
	return n.File != nil
}

// Files returns every file below n, in tree order
func (n *Node) Files() []*media.MediaFile {
	if n.File != nil {
		return []*media.MediaFile{n.File}
	}
	var files []*media.MediaFile
	for _, c := range n.Children {
		files = append(files, c.Files()...)
	}
	return files
}

func (n *Node) child(label string) *Node {
	if n.index == nil {
		n.index = make(map[string]*Node)
	}
	if c, ok := n.index[label]; ok {
		return c
	}
	c := &Node{Label: label}
	n.index[label] = c
	n.Children = append(n.Children, c)
	return c
}

// BuildTree arranges containers for display:
//
//	folder → TV Shows → title → Season N | Extras → files
//	folder → Movies → files
//
// The folder is the last two components of the file's origin root. Groups
// keep the order they are first seen in; files are sorted by rename.
func BuildTree(containers []*media.MediaContainer) []*Node {
	root := &Node{}

	for _, c := range containers {
		for _, f := range c.MediaFiles {
			folder := root.child(FolderLabel(f.OriginDir))

			var parent *Node
			if f.Type == media.Movie {
				parent = folder.child(MoviesLabel)
			} else {
				parent = folder.child(TVShowsLabel).child(c.Title)
				if label := seasonLabel(f); label != "" {
					parent = parent.child(label)
				}
			}

			parent.Children = append(parent.Children, &Node{
				Label:     f.Rename,
				File:      f,
				Container: c,
			})
		}
	}

	sortFiles(root)
	return root.Children
}

// sortFiles orders file leaves by rename, after any group children
func sortFiles(n *Node) {
	var groups, files []*Node
	for _, c := range n.Children {
		if c.IsFile() {
			files = append(files, c)
		} else {
			groups = append(groups, c)
			sortFiles(c)
		}
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].File.Rename < files[j].File.Rename
	})
	n.Children = append(groups, files...)
}

func seasonLabel(f *media.MediaFile) string {
	switch {
	case f.IsExtras():
		return ExtrasLabel
	case f.Season != nil:
		return fmt.Sprintf("Season %d", *f.Season)
	}
	return ""
}

// FolderLabel shortens a directory to its last two components
func FolderLabel(dir string) string {
	var parts []string
	for _, p := range strings.Split(filepath.ToSlash(filepath.Clean(dir)), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "/"
	}
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	return strings.Join(parts, "/")
}

// Row is a visible line of the tree
type Row struct {
	Depth int
	Node  *Node
}

// Flatten lists the tree depth first
func Flatten(nodes []*Node) []Row {
	var rows []Row
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		rows = append(rows, Row{Depth: depth, Node: n})
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, n := range nodes {
		walk(n, 0)
	}
	return rows
}

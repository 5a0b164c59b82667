package media

// ApplyTopFolderTitles gives every TV Show under a top folder the folder's
// title when the files under it disagree about their own titles. Files
// whose names are noisier than their folder then group together.
func ApplyTopFolderTitles(files []*MediaFile) {
	titles := make(map[string]map[string]bool)
	for _, f := range files {
		if f.Type != TVShow || f.TopFolder == "" {
			continue
		}
		if titles[f.TopFolder] == nil {
			titles[f.TopFolder] = make(map[string]bool)
		}
		titles[f.TopFolder][f.Title] = true
	}

	for _, f := range files {
		if f.Type != TVShow || len(titles[f.TopFolder]) < 2 {
			continue
		}
		f.SetTitle(f.TopFolder)
	}
}

package dataset

import "time"

// Index is a snapshot of a dataset directory grouped by label.
type Index struct {
	Dir string
	// Labels lists seeded labels first, then labels found on disk in
	// sorted order.
	Labels []Label
	// Files maps each label to its paths in name order.
	Files map[Label][]string
	// Excluded lists files with the dataset extension that carry no label.
	Excluded []string

	modTime time.Time
}

// Samples returns up to n paths for label and the number of slots the
// label could not fill.
func (x *Index) Samples(label Label, n int) ([]string, int) {
	if n <= 0 {
		return nil, 0
	}
	files := x.Files[label]
	if len(files) >= n {
		return files[:n:n], 0
	}
	return files, n - len(files)
}

// Count returns the number of labeled files.
func (x *Index) Count() int {
	total := 0
	for _, files := range x.Files {
		total += len(files)
	}
	return total
}

// Empty reports whether no file was assigned to any label.
func (x *Index) Empty() bool { return x.Count() == 0 }

// Contains reports whether path is one of the indexed files.
func (x *Index) Contains(path string) bool {
	for _, files := range x.Files {
		for _, p := range files {
			if p == path {
				return true
			}
		}
	}
	return false
}

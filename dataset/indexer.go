package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// ErrDatasetNotFound is returned when the dataset directory does not exist.
var ErrDatasetNotFound = errors.New("dataset: directory not found")

// Option configures an Indexer.
type Option func(*Indexer)

// WithExtension selects the file extension to index. The match is case
// insensitive; the default is ".wav".
func WithExtension(ext string) Option {
	return func(ix *Indexer) {
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		ix.ext = ext
	}
}

// WithRule replaces DefaultRule.
func WithRule(rule LabelRule) Option {
	return func(ix *Indexer) {
		if rule != nil {
			ix.rule = rule
		}
	}
}

// WithLabels sets the labels that are always present in the index.
func WithLabels(labels []Label) Option {
	return func(ix *Indexer) {
		ix.seed = slices.Clone(labels)
	}
}

// WithSeedRange seeds the labels "0" through "n-1".
func WithSeedRange(n int) Option {
	return func(ix *Indexer) {
		ix.seed = SeedLabels(n)
	}
}

// Indexer scans a dataset directory and caches the result until the
// directory's modification time changes. It is safe for concurrent use.
type Indexer struct {
	dir  string
	ext  string
	rule LabelRule
	seed []Label

	mu     sync.Mutex
	cached *Index
}

// NewIndexer creates an Indexer for dir. By default it seeds the labels
// "0" through "49".
func NewIndexer(dir string, opts ...Option) *Indexer {
	ix := &Indexer{
		dir:  dir,
		ext:  ".wav",
		rule: DefaultRule,
		seed: SeedLabels(50),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ix)
		}
	}
	return ix
}

// Dir returns the indexed directory.
func (ix *Indexer) Dir() string { return ix.dir }

// Index returns the current index, rescanning when the directory changed
// since the last scan. Callers must not modify the result.
func (ix *Indexer) Index() (*Index, error) {
	info, err := os.Stat(ix.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, ix.dir)
		}
		return nil, fmt.Errorf("dataset: stat %s: %w", ix.dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDatasetNotFound, ix.dir)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.cached != nil && ix.cached.modTime.Equal(info.ModTime()) {
		return ix.cached, nil
	}

	idx, err := ix.scan()
	if err != nil {
		return nil, err
	}
	idx.modTime = info.ModTime()
	ix.cached = idx
	return idx, nil
}

// Invalidate drops the cached index so the next Index call rescans.
func (ix *Indexer) Invalidate() {
	ix.mu.Lock()
	ix.cached = nil
	ix.mu.Unlock()
}

func (ix *Indexer) scan() (*Index, error) {
	entries, err := os.ReadDir(ix.dir)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", ix.dir, err)
	}

	idx := &Index{
		Dir:    ix.dir,
		Labels: slices.Clone(ix.seed),
		Files:  make(map[Label][]string, len(ix.seed)),
	}
	for _, l := range ix.seed {
		idx.Files[l] = nil
	}

	var found []Label
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ix.ext) {
			continue
		}
		path := filepath.Join(ix.dir, e.Name())

		label, ok := ix.rule.Label(e.Name())
		if !ok {
			idx.Excluded = append(idx.Excluded, path)
			continue
		}
		if _, known := idx.Files[label]; !known {
			found = append(found, label)
		}
		idx.Files[label] = append(idx.Files[label], path)
	}

	slices.Sort(found)
	idx.Labels = append(idx.Labels, found...)
	return idx, nil
}

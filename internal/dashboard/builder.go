package dashboard

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-featureviz/audio"
	"github.com/cwbudde/algo-featureviz/dataset"
	"github.com/cwbudde/algo-featureviz/feature"
	"github.com/cwbudde/algo-featureviz/render"
)

// DefaultColumns is the number of samples shown per class.
const DefaultColumns = 5

// Option configures a Builder.
type Option func(*Builder)

// WithColumns sets the number of samples per class in non-combined views.
func WithColumns(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.columns = n
		}
	}
}

// WithLogger sets the logger for cell failures.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// Builder composes the dataset index, loader, extractor and renderer into
// pages.
type Builder struct {
	indexer   *dataset.Indexer
	loader    *audio.Loader
	extractor *feature.Extractor
	renderer  *render.Renderer
	columns   int
	log       *zap.Logger
}

// NewBuilder returns a Builder over the given components.
func NewBuilder(ix *dataset.Indexer, l *audio.Loader, e *feature.Extractor, r *render.Renderer, opts ...Option) *Builder {
	b := &Builder{
		indexer:   ix,
		loader:    l,
		extractor: e,
		renderer:  r,
		columns:   DefaultColumns,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Columns returns the per-class sample count.
func (b *Builder) Columns() int { return b.columns }

// Index returns the current dataset index.
func (b *Builder) Index() (*dataset.Index, error) { return b.indexer.Index() }

// Build lays out the page for mode. Dataset problems become the page
// Notice; file problems stay on their cells.
func (b *Builder) Build(mode feature.Mode) *Page {
	page := &Page{Mode: mode, Title: mode.MenuLabel()}
	if mode == feature.ModeNone {
		page.Title = landingTitle
		page.Notice = landingNotice
		return page
	}

	idx, err := b.indexer.Index()
	if err != nil {
		b.log.Warn("dataset unavailable", zap.String("dir", b.indexer.Dir()), zap.Error(err))
		page.Notice = emptyNotice
		return page
	}
	page.Files, page.Excluded = idx.Count(), len(idx.Excluded)
	if idx.Empty() {
		page.Notice = emptyNotice
		return page
	}

	if mode == feature.ModeCombined {
		for _, m := range feature.PlotModes() {
			page.Headers = append(page.Headers, m.Title())
		}
		for _, label := range idx.Labels {
			page.Rows = append(page.Rows, b.combinedRow(idx, label))
		}
	} else {
		for i := range b.columns {
			page.Headers = append(page.Headers, fmt.Sprintf("Sample %d", i+1))
		}
		for _, label := range idx.Labels {
			page.Rows = append(page.Rows, b.row(idx, label, mode))
		}
	}

	if n := page.Errors(); n > 0 {
		b.log.Info("page built with failed cells", zap.Stringer("mode", mode), zap.Int("failed", n))
	}
	return page
}

func (b *Builder) row(idx *dataset.Index, label dataset.Label, mode feature.Mode) Row {
	paths, missing := idx.Samples(label, b.columns)
	row := Row{Label: label, Cells: make([]Cell, 0, b.columns)}
	for _, p := range paths {
		row.Cells = append(row.Cells, b.Cell(p, mode))
	}
	for range missing {
		row.Cells = append(row.Cells, missingCell(label, mode))
	}
	return row
}

func (b *Builder) combinedRow(idx *dataset.Index, label dataset.Label) Row {
	paths, _ := idx.Samples(label, 1)
	modes := feature.PlotModes()
	row := Row{Label: label, Cells: make([]Cell, 0, len(modes))}
	for _, m := range modes {
		if len(paths) == 0 {
			row.Cells = append(row.Cells, missingCell(label, m))
			continue
		}
		row.Cells = append(row.Cells, b.Cell(paths[0], m))
	}
	return row
}

func missingCell(label dataset.Label, mode feature.Mode) Cell {
	return Cell{
		Mode:    mode,
		Missing: true,
		Err:     fmt.Errorf("%w for class %s", ErrInsufficientSamples, label),
	}
}

// Cell loads, extracts and renders one file.
func (b *Builder) Cell(path string, mode feature.Mode) Cell {
	c := Cell{Path: path, Mode: mode}

	buf, err := b.loader.Load(path)
	if err == nil {
		var arr *feature.Array
		if arr, err = b.extractor.Extract(buf, mode); err == nil {
			c.Figure, err = b.renderer.Render(arr)
		}
	}
	if err != nil {
		b.log.Warn("cell failed", zap.String("path", path), zap.Stringer("mode", mode), zap.Error(err))
		c.Figure, c.Err = nil, err
	}
	return c
}

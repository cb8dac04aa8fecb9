package dashboard

import (
	"errors"

	"github.com/cwbudde/algo-featureviz/dataset"
	"github.com/cwbudde/algo-featureviz/feature"
	"github.com/cwbudde/algo-featureviz/render"
)

// ErrInsufficientSamples marks grid slots a class has no file for.
var ErrInsufficientSamples = errors.New("insufficient samples")

const (
	landingTitle  = "Audio feature visualization"
	landingNotice = "select a visualization type"
	emptyNotice   = "no samples found"
)

// Page is one rendered dashboard view.
type Page struct {
	Mode    feature.Mode
	Title   string
	Headers []string
	Rows    []Row
	// Notice replaces the grid when there is nothing to show.
	Notice string
	// Files and Excluded count the indexed and unlabeled files.
	Files    int
	Excluded int
}

// Row holds the cells of one class.
type Row struct {
	Label dataset.Label
	Cells []Cell
}

// Cell is a single grid slot. Exactly one of Figure and Err is set.
type Cell struct {
	Path    string
	Mode    feature.Mode
	Figure  *render.Figure
	Err     error
	Missing bool
}

// Failed reports whether the cell holds an error instead of a figure.
func (c Cell) Failed() bool { return c.Err != nil }

// Errors counts failed cells, including missing slots.
func (p *Page) Errors() int {
	n := 0
	for _, r := range p.Rows {
		for _, c := range r.Cells {
			if c.Failed() {
				n++
			}
		}
	}
	return n
}

package dashboard

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cwbudde/algo-featureviz/audio"
	"github.com/cwbudde/algo-featureviz/dataset"
	"github.com/cwbudde/algo-featureviz/feature"
	"github.com/cwbudde/algo-featureviz/internal/testutil"
	"github.com/cwbudde/algo-featureviz/render"
)

func newBuilder(t *testing.T, dir string, ixOpts ...dataset.Option) *Builder {
	t.Helper()
	ex, err := feature.NewExtractor()
	if err != nil {
		t.Fatalf("NewExtractor() error = %v", err)
	}
	return NewBuilder(
		dataset.NewIndexer(dir, ixOpts...),
		audio.NewLoader(),
		ex,
		render.NewRenderer(render.WithSize(240, 160)),
	)
}

func TestBuildWaveFullDataset(t *testing.T) {
	dir := t.TempDir()
	labels := make([]string, 50)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	testutil.WriteDataset(t, dir, labels, 5, 22050, 0.05)

	page := newBuilder(t, dir).Build(feature.ModeWave)
	if page.Notice != "" {
		t.Fatalf("notice = %q", page.Notice)
	}
	if len(page.Rows) != 50 || len(page.Headers) != 5 {
		t.Fatalf("rows=%d headers=%d, want 50 and 5", len(page.Rows), len(page.Headers))
	}
	if page.Files != 250 || page.Errors() != 0 {
		t.Fatalf("files=%d errors=%d", page.Files, page.Errors())
	}
	for _, row := range page.Rows {
		if len(row.Cells) != 5 {
			t.Fatalf("class %s has %d cells", row.Label, len(row.Cells))
		}
		for _, c := range row.Cells {
			if c.Figure == nil || c.Figure.Title != "Wave plot" {
				t.Fatalf("class %s: cell %+v", row.Label, c)
			}
		}
	}
}

func TestBuildInsufficientSamples(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDataset(t, dir, []string{"3"}, 2, 22050, 0.05)

	page := newBuilder(t, dir, dataset.WithLabels([]dataset.Label{"3"})).Build(feature.ModeLogSpectrogram)
	if len(page.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(page.Rows))
	}
	cells := page.Rows[0].Cells
	if len(cells) != 5 {
		t.Fatalf("cells = %d, want 5", len(cells))
	}
	for i, c := range cells {
		if i < 2 {
			if c.Failed() || c.Figure == nil {
				t.Fatalf("cell %d failed: %v", i, c.Err)
			}
			continue
		}
		if !c.Missing || !errors.Is(c.Err, ErrInsufficientSamples) {
			t.Fatalf("cell %d = %+v, want missing", i, c)
		}
		if c.Err.Error() != "insufficient samples for class 3" {
			t.Fatalf("cell %d message = %q", i, c.Err.Error())
		}
	}
}

func TestBuildCombinedUsesFirstSample(t *testing.T) {
	dir := t.TempDir()
	files := testutil.WriteDataset(t, dir, []string{"a", "b"}, 3, 22050, 0.1)

	page := newBuilder(t, dir, dataset.WithLabels(nil)).Build(feature.ModeCombined)
	if len(page.Headers) != 5 || page.Headers[0] != "Wave plot" || page.Headers[4] != "MFCCs" {
		t.Fatalf("headers = %v", page.Headers)
	}
	if len(page.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(page.Rows))
	}
	for _, row := range page.Rows {
		want := files[string(row.Label)][0]
		if len(row.Cells) != 5 {
			t.Fatalf("class %s: %d cells", row.Label, len(row.Cells))
		}
		for i, c := range row.Cells {
			if c.Path != want {
				t.Fatalf("class %s cell %d path = %s, want %s", row.Label, i, c.Path, want)
			}
			if c.Mode != feature.PlotModes()[i] || c.Figure == nil {
				t.Fatalf("class %s cell %d = %s, err %v", row.Label, i, c.Mode, c.Err)
			}
		}
	}
}

func TestBuildIsolatesCellErrors(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDataset(t, dir, []string{"7"}, 2, 22050, 0.05)
	if err := os.WriteFile(filepath.Join(dir, "9-9-7.wav"), []byte("broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	page := newBuilder(t, dir, dataset.WithLabels(nil), dataset.WithSeedRange(0)).Build(feature.ModeMFCC)
	cells := page.Rows[0].Cells
	if cells[0].Failed() || cells[1].Failed() {
		t.Fatal("valid files should render")
	}
	if !cells[2].Failed() || cells[2].Missing || !errors.Is(cells[2].Err, audio.ErrDecode) {
		t.Fatalf("broken file cell = %+v", cells[2])
	}
	if !cells[3].Missing || !cells[4].Missing {
		t.Fatal("remaining slots should be missing")
	}
}

func TestBuildNotices(t *testing.T) {
	b := newBuilder(t, t.TempDir())

	landing := b.Build(feature.ModeNone)
	if landing.Title != "Audio feature visualization" || landing.Notice != "select a visualization type" {
		t.Fatalf("landing = %q / %q", landing.Title, landing.Notice)
	}

	empty := b.Build(feature.ModeWave)
	if empty.Notice != "no samples found" || len(empty.Rows) != 0 {
		t.Fatalf("empty notice = %q rows = %d", empty.Notice, len(empty.Rows))
	}

	missing := filepath.Join(t.TempDir(), "missing")
	gone := newBuilder(t, missing).Build(feature.ModeWave)
	if gone.Notice != "no samples found" || len(gone.Rows) != 0 {
		t.Fatalf("missing dir notice = %q rows = %d", gone.Notice, len(gone.Rows))
	}
	if strings.Contains(gone.Notice, missing) {
		t.Fatalf("notice leaks the dataset path: %q", gone.Notice)
	}
}

func TestWithColumns(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDataset(t, dir, []string{"1"}, 4, 22050, 0.05)

	ex, _ := feature.NewExtractor()
	b := NewBuilder(dataset.NewIndexer(dir, dataset.WithLabels(nil)), audio.NewLoader(), ex, render.NewRenderer(), WithColumns(3), WithLogger(nil))
	page := b.Build(feature.ModeWave)
	if b.Columns() != 3 || len(page.Rows[0].Cells) != 3 || page.Errors() != 0 {
		t.Fatalf("columns=%d cells=%d errors=%d", b.Columns(), len(page.Rows[0].Cells), page.Errors())
	}
}

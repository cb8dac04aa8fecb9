package dashboard

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-featureviz/feature"
)

// Handler serves the dashboard page, single figures and a health probe.
type Handler struct {
	builder *Builder
	log     *zap.Logger
	mux     *http.ServeMux
}

// NewHandler returns the dashboard HTTP handler.
func NewHandler(b *Builder, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{builder: b, log: log, mux: http.NewServeMux()}
	h.mux.HandleFunc("/", h.page)
	h.mux.HandleFunc("/figure", h.figure)
	h.mux.HandleFunc("/healthz", h.health)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(rec, r)
	h.log.Debug("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("took", time.Since(start)),
	)
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "GET required", http.StatusMethodNotAllowed)
		return
	}

	mode, ok := h.parseMode(w, r.URL.Query().Get("mode"))
	if !ok {
		return
	}
	showNames := r.URL.Query().Get("names") == "1"

	page := h.builder.Build(mode)
	view, err := newPageView(page, showNames)
	if err != nil {
		h.log.Error("encode figures", zap.Error(err))
		http.Error(w, "failed to encode figures", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, view); err != nil {
		h.log.Error("render page", zap.Stringer("mode", mode), zap.Error(err))
	}
}

func (h *Handler) figure(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode, ok := h.parseMode(w, q.Get("mode"))
	if !ok {
		return
	}
	if !mode.Plottable() {
		http.Error(w, fmt.Sprintf("mode %s has no single figure", mode), http.StatusBadRequest)
		return
	}

	path := q.Get("path")
	idx, err := h.builder.Index()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if !idx.Contains(path) {
		http.NotFound(w, r)
		return
	}

	cell := h.builder.Cell(path, mode)
	if cell.Err != nil {
		http.Error(w, cell.Err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := cell.Figure.WritePNG(w); err != nil {
		h.log.Error("write figure", zap.String("path", path), zap.Error(err))
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	idx, err := h.builder.Index()
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"ok":       true,
		"labels":   len(idx.Labels),
		"files":    idx.Count(),
		"excluded": len(idx.Excluded),
	})
}

func (h *Handler) parseMode(w http.ResponseWriter, s string) (feature.Mode, bool) {
	if s == "" {
		return feature.ModeNone, true
	}
	mode, err := feature.ParseMode(s)
	if errors.Is(err, feature.ErrUnknownMode) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return mode, false
	}
	return mode, true
}

func newPageView(p *Page, showNames bool) (*pageView, error) {
	v := &pageView{Page: p, ShowNames: showNames}
	for _, m := range feature.Modes() {
		v.Menu = append(v.Menu, menuItem{
			Label:  m.MenuLabel(),
			Href:   pageHref(m, showNames),
			Active: m == p.Mode,
		})
	}
	v.NamesHref = pageHref(p.Mode, !showNames)

	for _, row := range p.Rows {
		rv := rowView{Label: string(row.Label)}
		for _, c := range row.Cells {
			cv := cellView{Alt: c.Mode.Title()}
			if c.Path != "" {
				cv.Name = filepath.Base(c.Path)
			}
			if c.Err != nil {
				cv.Error = c.Err.Error()
			} else {
				src, err := dataURI(c)
				if err != nil {
					return nil, err
				}
				cv.Src = src
			}
			rv.Cells = append(rv.Cells, cv)
		}
		v.Rows = append(v.Rows, rv)
	}
	return v, nil
}

func pageHref(m feature.Mode, showNames bool) string {
	q := url.Values{"mode": {m.Key()}}
	if showNames {
		q.Set("names", "1")
	}
	return "/?" + q.Encode()
}

func dataURI(c Cell) (template.URL, error) {
	data, err := c.Figure.PNG()
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", c.Path, err)
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data)), nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Command featureviz serves a dashboard of waveforms, spectrograms and MFCCs
// for a directory of labeled audio samples.
//
// Usage:
//
//	featureviz [flags]
//
// Examples:
//
//	featureviz -dataset ./audio
//	featureviz -dataset ./audio -addr :9000 -columns 3
//	featureviz -dataset ./clips -label-pattern '^(\w+)_\d+\.wav$' -labels 0
//	featureviz -render ./audio/1-100038-A-14.wav -mode mel -out mel.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-featureviz/audio"
	"github.com/cwbudde/algo-featureviz/dataset"
	"github.com/cwbudde/algo-featureviz/dsp/core"
	"github.com/cwbudde/algo-featureviz/dsp/resample"
	"github.com/cwbudde/algo-featureviz/feature"
	"github.com/cwbudde/algo-featureviz/internal/config"
	"github.com/cwbudde/algo-featureviz/internal/dashboard"
	"github.com/cwbudde/algo-featureviz/internal/logging"
	"github.com/cwbudde/algo-featureviz/render"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.LogLevel, cfg.Dev, logging.WithFields(map[string]any{"app": "featureviz"}))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Error("featureviz failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	quality, err := resample.ParseQuality(cfg.Quality)
	if err != nil {
		return err
	}
	loader := audio.NewLoader(audio.WithSampleRate(cfg.SampleRate), audio.WithResampleQuality(quality))
	extractor, err := feature.NewExtractor(core.WithSampleRate(cfg.SampleRate))
	if err != nil {
		return err
	}
	renderer := render.NewRenderer(render.WithSize(cfg.Width, cfg.Height))

	if cfg.RenderPath != "" {
		return renderOne(cfg, loader, extractor, renderer, log)
	}

	ixOpts := []dataset.Option{dataset.WithExtension(cfg.Extension), dataset.WithSeedRange(cfg.Labels)}
	if cfg.LabelPattern != "" {
		rule, err := dataset.RegexpRule(cfg.LabelPattern)
		if err != nil {
			return err
		}
		ixOpts = append(ixOpts, dataset.WithRule(rule))
	}
	indexer := dataset.NewIndexer(cfg.Dataset, ixOpts...)

	if idx, err := indexer.Index(); err != nil {
		log.Warn("dataset unavailable at startup", zap.String("dir", cfg.Dataset), zap.Error(err))
	} else {
		log.Info("dataset indexed",
			zap.String("dir", cfg.Dataset),
			zap.Int("labels", len(idx.Labels)),
			zap.Int("files", idx.Count()),
			zap.Int("excluded", len(idx.Excluded)),
		)
	}

	builder := dashboard.NewBuilder(indexer, loader, extractor, renderer,
		dashboard.WithColumns(cfg.Columns),
		dashboard.WithLogger(log),
	)
	return serve(cfg.Addr, dashboard.NewHandler(builder, log), log)
}

func serve(addr string, h http.Handler, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func renderOne(cfg config.Config, l *audio.Loader, e *feature.Extractor, r *render.Renderer, log *zap.Logger) error {
	mode, err := feature.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	if !mode.Plottable() {
		return fmt.Errorf("mode %s cannot be rendered to a single figure", mode)
	}

	buf, err := l.Load(cfg.RenderPath)
	if err != nil {
		return err
	}
	arr, err := e.Extract(buf, mode)
	if err != nil {
		return err
	}
	fig, err := r.Render(arr)
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.Out)
	if err != nil {
		return err
	}
	if err := fig.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info("figure written",
		zap.String("in", cfg.RenderPath),
		zap.Stringer("mode", mode),
		zap.String("out", cfg.Out),
		zap.Duration("audio", buf.Duration()),
	)
	return nil
}

package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"github.com/j-Karnika/Dubbing/internal/config"
	"github.com/j-Karnika/Dubbing/internal/deps"
	"github.com/j-Karnika/Dubbing/internal/jobs"
	"github.com/j-Karnika/Dubbing/internal/logging"
	"github.com/j-Karnika/Dubbing/internal/pipeline"
	"github.com/j-Karnika/Dubbing/internal/server"
	"github.com/j-Karnika/Dubbing/internal/services/ffmpeg"
	"github.com/j-Karnika/Dubbing/internal/services/translate"
	"github.com/j-Karnika/Dubbing/internal/services/tts"
	"github.com/j-Karnika/Dubbing/internal/services/whisper"
)

// Daemon owns the dubbing service runtime.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *jobs.Store
	runner *pipeline.Runner
	api    *server.Server

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon with all dependencies initialized from config.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	store, err := jobs.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open job store: %w", err)
	}

	runner := pipeline.NewRunner(store, buildAdapters(cfg, logger), cfg, logger)
	translator := translate.NewClient(translate.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})
	api, err := server.New(cfg, store, runner, translator, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "dubberd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		runner:   runner,
		api:      api,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// buildAdapters assembles the production stage adapters from config.
func buildAdapters(cfg *config.Config, logger *slog.Logger) pipeline.Adapters {
	ffmpegClient := ffmpeg.NewClient(cfg.FFmpegBinary())
	return pipeline.Adapters{
		Extractor: ffmpegClient,
		Transcriber: whisper.NewService(whisper.Config{
			Binary: cfg.Whisper.Binary,
			Model:  cfg.Whisper.Model,
		}, cfg.Paths.AudioDir),
		Translator: translate.NewClient(translate.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		}),
		Synthesizer: tts.NewSynthesizer(tts.Config{
			Binary: cfg.TTS.Binary,
			Voice:  cfg.TTS.Voice,
		}, ffmpegClient, logging.NewComponentLogger(logger, "tts")),
		Muxer: ffmpegClient,
	}
}

// Start acquires the instance lock and begins serving the API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another dubberd instance is already running")
	}

	for _, status := range deps.CheckBinaries(deps.Requirements(d.cfg)) {
		if status.Available {
			continue
		}
		if status.Optional {
			d.logger.Warn("optional tool unavailable",
				logging.String("name", status.Name),
				logging.String("detail", status.Detail),
			)
			continue
		}
		d.logger.Error("required tool unavailable, jobs will fail",
			logging.String("name", status.Name),
			logging.String("detail", status.Detail),
		)
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.api.Start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return err
	}
	d.cancel = cancel
	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.String("lock", d.lockPath),
		logging.String("db", d.store.Path()),
		logging.String("address", d.api.Addr()),
	)
	return nil
}

// Addr returns the API listen address once started.
func (d *Daemon) Addr() string {
	return d.api.Addr()
}

// Store exposes the job store for CLI commands sharing the daemon wiring.
func (d *Daemon) Store() *jobs.Store {
	return d.store
}

// Stop halts the API server and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped")
}

// Close stops the daemon and releases held resources.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

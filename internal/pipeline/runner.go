package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/j-Karnika/Dubbing/internal/config"
	"github.com/j-Karnika/Dubbing/internal/jobs"
	"github.com/j-Karnika/Dubbing/internal/logging"
	"github.com/j-Karnika/Dubbing/internal/services"
)

// NoSpeechText replaces an empty transcription so downstream stages always
// have text to work with.
const NoSpeechText = "No speech detected in the audio."

// Runner executes the dubbing stage sequence for jobs. A semaphore bounds
// how many jobs run their stages at once; external tools are heavy enough
// that unbounded fan-out starves the host.
type Runner struct {
	store        *jobs.Store
	adapters     Adapters
	cfg          *config.Config
	logger       *slog.Logger
	sem          *semaphore.Weighted
	stageTimeout time.Duration

	mu     sync.Mutex
	active map[string]struct{}
}

// NewRunner creates a runner over the given store and adapters.
func NewRunner(store *jobs.Store, adapters Adapters, cfg *config.Config, logger *slog.Logger) *Runner {
	limit := int64(cfg.Workflow.MaxConcurrentJobs)
	if limit <= 0 {
		limit = 1
	}
	return &Runner{
		store:        store,
		adapters:     adapters,
		cfg:          cfg,
		logger:       logging.NewComponentLogger(logger, "pipeline"),
		sem:          semaphore.NewWeighted(limit),
		stageTimeout: time.Duration(cfg.Workflow.StageTimeoutSeconds) * time.Second,
	}
}

type stage struct {
	name     string
	status   jobs.Status
	progress int
	run      func(ctx context.Context, job *jobs.Job) error
}

// Run drives the job with the given id to a terminal state. It returns the
// job record as persisted when the run stopped, alongside the stage error if
// one occurred. A completed job is returned untouched; a job already inside
// a stage is rejected.
func (r *Runner) Run(ctx context.Context, id string) (*jobs.Job, error) {
	job, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, services.Wrap(services.ErrNotFound, "", "", "Job not found", nil)
	}
	if job.Status == jobs.StatusCompleted {
		return job, nil
	}
	if job.IsProcessing() {
		return job, services.Wrap(services.ErrValidation, "", "", "Job is already being processed", nil)
	}
	if !r.markActive(id) {
		return job, services.Wrap(services.ErrValidation, "", "", "Job is already being processed", nil)
	}
	defer r.markIdle(id)

	if err := r.sem.Acquire(ctx, 1); err != nil {
		return job, err
	}
	defer r.sem.Release(1)

	logger := r.logger.With(logging.String(logging.FieldJobID, id))
	logger.Info("starting dubbing run", logging.String("filename", job.Filename))

	// A rerun after failure restarts the whole sequence.
	job.ErrorMessage = ""
	job.Degraded = false

	audioPath := filepath.Join(r.cfg.Paths.AudioDir, id+"_original.wav")

	for _, st := range r.stages(audioPath) {
		job.Status = st.status
		job.Progress = st.progress
		if err := r.store.Update(ctx, job); err != nil {
			return job, err
		}

		stageCtx := ctx
		cancel := context.CancelFunc(func() {})
		if r.stageTimeout > 0 {
			stageCtx, cancel = context.WithTimeout(ctx, r.stageTimeout)
		}
		start := time.Now()
		err := st.run(stageCtx, job)
		cancel()
		if err != nil {
			logger.Error("stage failed",
				logging.String(logging.FieldStage, st.name),
				logging.Duration("elapsed", time.Since(start)),
				logging.Error(err),
			)
			job.SetFailed(services.Message(err))
			if updateErr := r.store.Update(ctx, job); updateErr != nil {
				logger.Error("persist failure state", logging.Error(updateErr))
			}
			return job, err
		}
		logger.Info("stage finished",
			logging.String(logging.FieldStage, st.name),
			logging.Duration("elapsed", time.Since(start)),
		)
	}

	job.Status = jobs.StatusCompleted
	job.Progress = 100
	if err := r.store.Update(ctx, job); err != nil {
		return job, err
	}
	logger.Info("dubbing run completed", logging.Bool("degraded", job.Degraded))
	return job, nil
}

func (r *Runner) stages(audioPath string) []stage {
	return []stage{
		{
			name:     "extract audio",
			status:   jobs.StatusExtractingAudio,
			progress: 10,
			run: func(ctx context.Context, job *jobs.Job) error {
				if err := r.adapters.Extractor.ExtractAudio(ctx, job.SourceVideoPath, audioPath); err != nil {
					return services.Wrap(services.ErrExtraction, "extracting_audio", "ffmpeg", "Failed to extract audio", err)
				}
				return nil
			},
		},
		{
			name:     "transcribe",
			status:   jobs.StatusTranscribing,
			progress: 30,
			run: func(ctx context.Context, job *jobs.Job) error {
				text, err := r.adapters.Transcriber.Transcribe(ctx, audioPath, job.SourceLanguage)
				if err != nil {
					return services.Wrap(services.ErrTranscription, "transcribing", "whisper", "Transcription failed", err)
				}
				if strings.TrimSpace(text) == "" {
					text = NoSpeechText
				}
				job.Transcription = text
				return nil
			},
		},
		{
			name:     "translate",
			status:   jobs.StatusTranslating,
			progress: 50,
			run: func(ctx context.Context, job *jobs.Job) error {
				translation, err := r.adapters.Translator.Translate(ctx, job.Transcription, job.SourceLanguage, job.TargetLanguage)
				if err != nil {
					return services.Wrap(services.ErrTranslation, "translating", "llm", "Translation failed", err)
				}
				job.Translation = translation
				return nil
			},
		},
		{
			name:     "synthesize",
			status:   jobs.StatusSynthesizing,
			progress: 70,
			run: func(ctx context.Context, job *jobs.Job) error {
				dubbedPath := filepath.Join(r.cfg.Paths.AudioDir, job.ID+"_dubbed.wav")
				degraded, err := r.adapters.Synthesizer.Synthesize(ctx, job.Translation, audioPath, dubbedPath)
				if err != nil {
					return services.Wrap(services.ErrSynthesis, "synthesizing", "tts", "Speech synthesis failed", err)
				}
				job.DubbedAudioPath = dubbedPath
				job.Degraded = degraded
				return nil
			},
		},
		{
			name:     "mux",
			status:   jobs.StatusFinalizing,
			progress: 90,
			run: func(ctx context.Context, job *jobs.Job) error {
				finalPath := filepath.Join(r.cfg.Paths.ProcessedDir, job.ID+"_dubbed.mp4")
				if err := r.adapters.Muxer.Mux(ctx, job.SourceVideoPath, job.DubbedAudioPath, finalPath); err != nil {
					return services.Wrap(services.ErrMux, "finalizing", "ffmpeg", "Video combination failed", err)
				}
				job.FinalVideoPath = finalPath
				return nil
			},
		},
	}
}

func (r *Runner) markActive(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		r.active = make(map[string]struct{})
	}
	if _, busy := r.active[id]; busy {
		return false
	}
	r.active[id] = struct{}{}
	return true
}

func (r *Runner) markIdle(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, id)
}

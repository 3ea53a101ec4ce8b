package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/j-Karnika/Dubbing/internal/logging"
)

// Config captures runtime settings for the primary synthesis tier.
type Config struct {
	// Binary is the TTS executable name or path.
	Binary string
	// Voice optionally selects an engine voice.
	Voice string
}

// ToneGenerator produces a placeholder audio tone for the degraded tier.
type ToneGenerator interface {
	GenerateTone(ctx context.Context, durationSeconds float64, audioPath string) error
}

// Synthesizer converts text to speech, falling back to a placeholder tone
// when the primary engine fails.
type Synthesizer struct {
	cfg           Config
	fallback      ToneGenerator
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewSynthesizer creates a synthesizer backed by the configured engine and
// the given tone generator for the degraded tier.
func NewSynthesizer(cfg Config, fallback ToneGenerator, logger *slog.Logger) *Synthesizer {
	if strings.TrimSpace(cfg.Binary) == "" {
		cfg.Binary = "espeak-ng"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Synthesizer{cfg: cfg, fallback: fallback, logger: logger}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Synthesizer) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Synthesize renders text as speech into outputPath. referenceAudio is
// reserved for engines that support voice cloning and may be empty. The
// returned flag is true when the degraded tone tier produced the output.
func (s *Synthesizer) Synthesize(ctx context.Context, text, referenceAudio, outputPath string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, fmt.Errorf("synthesize: text required")
	}
	if outputPath == "" {
		return false, fmt.Errorf("synthesize: output path required")
	}

	primaryErr := s.synthesizePrimary(ctx, text, outputPath)
	if primaryErr == nil {
		return false, nil
	}
	s.logger.Warn("primary synthesis failed, falling back to placeholder tone",
		logging.Error(primaryErr),
		logging.String("binary", s.cfg.Binary),
	)

	if s.fallback == nil {
		return false, fmt.Errorf("synthesize: primary failed and no fallback configured: %w", primaryErr)
	}
	duration := toneDuration(text)
	if err := s.fallback.GenerateTone(ctx, duration, outputPath); err != nil {
		return false, fmt.Errorf("synthesize: fallback tone: %w (primary: %v)", err, primaryErr)
	}
	if err := verifyOutput(outputPath); err != nil {
		return false, fmt.Errorf("synthesize: fallback tone: %w (primary: %v)", err, primaryErr)
	}
	return true, nil
}

func (s *Synthesizer) synthesizePrimary(ctx context.Context, text, outputPath string) error {
	args := make([]string, 0, 5)
	if s.cfg.Voice != "" {
		args = append(args, "-v", s.cfg.Voice)
	}
	args = append(args, "-w", outputPath, text)

	if err := s.run(ctx, s.cfg.Binary, args...); err != nil {
		return err
	}
	return verifyOutput(outputPath)
}

func (s *Synthesizer) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// toneDuration scales the placeholder tone with the text length so the
// dubbed track roughly matches the speech it stands in for, with a floor of
// two seconds.
func toneDuration(text string) float64 {
	duration := 0.1 * float64(len(text))
	if duration < 2 {
		return 2
	}
	return duration
}

func verifyOutput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("output missing: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("output empty: %s", path)
	}
	return nil
}

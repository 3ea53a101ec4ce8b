package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	langpkg "github.com/j-Karnika/Dubbing/internal/language"
)

// Config captures runtime settings for transcription.
type Config struct {
	// Binary is the whisper executable name or path.
	Binary string
	// Model selects the whisper model size (e.g. "base", "small").
	Model string
}

// DefaultModel is used when no model is configured.
const DefaultModel = "base"

// Service provides transcription by shelling out to the Whisper CLI.
type Service struct {
	cfg           Config
	outputDir     string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service. outputDir is where Whisper
// writes its JSON transcript files.
func NewService(cfg Config, outputDir string) *Service {
	if strings.TrimSpace(cfg.Binary) == "" {
		cfg.Binary = "whisper"
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	return &Service{cfg: cfg, outputDir: outputDir}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.Model
}

// Transcribe runs Whisper on the given audio file and returns the transcript
// text. Audio without any recognizable speech yields an empty string and no
// error; the caller decides how to treat silence.
func (s *Service) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	if audioPath == "" {
		return "", fmt.Errorf("transcribe: audio path required")
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	args := []string{
		audioPath,
		"--model", s.cfg.Model,
		"--output_format", "json",
		"--output_dir", s.outputDir,
		"--fp16", "False",
	}
	if lang := langpkg.ToISO2(language); lang != "" {
		args = append(args, "--language", lang)
	}

	if err := s.run(ctx, s.cfg.Binary, args...); err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(s.outputDir, baseName+".json")
	text, err := loadTranscriptText(jsonPath)
	if err != nil {
		return "", fmt.Errorf("whisper: read transcript: %w", err)
	}
	return text, nil
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Segment is one transcribed span from the Whisper JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type transcriptPayload struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// loadTranscriptText reads a Whisper JSON file and returns the transcript
// text, preferring the top-level text field and falling back to joining
// segments.
func loadTranscriptText(jsonPath string) (string, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", err
	}
	var payload transcriptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("parse whisper json: %w", err)
	}
	if text := strings.TrimSpace(payload.Text); text != "" {
		return text, nil
	}
	var parts []string
	for _, seg := range payload.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

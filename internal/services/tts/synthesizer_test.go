package tts_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/j-Karnika/Dubbing/internal/services/tts"
)

type fakeToneGenerator struct {
	durations []float64
	paths     []string
	err       error
	writeFile bool
}

func (f *fakeToneGenerator) GenerateTone(_ context.Context, durationSeconds float64, audioPath string) error {
	f.durations = append(f.durations, durationSeconds)
	f.paths = append(f.paths, audioPath)
	if f.err != nil {
		return f.err
	}
	if f.writeFile {
		return os.WriteFile(audioPath, []byte("tone"), 0o644)
	}
	return nil
}

func TestSynthesizePrimarySucceeds(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "speech.wav")
	fallback := &fakeToneGenerator{writeFile: true}
	synth := tts.NewSynthesizer(tts.Config{Binary: "espeak-ng"}, fallback, nil)

	var gotArgs []string
	synth.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		if name != "espeak-ng" {
			t.Fatalf("unexpected binary %s", name)
		}
		gotArgs = args
		return os.WriteFile(outputPath, []byte("audio"), 0o644)
	})

	degraded, err := synth.Synthesize(context.Background(), "Hello world", "", outputPath)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if degraded {
		t.Fatal("primary success should not be degraded")
	}
	if len(fallback.durations) != 0 {
		t.Fatal("fallback should not run when primary succeeds")
	}
	if len(gotArgs) != 3 || gotArgs[0] != "-w" || gotArgs[1] != outputPath || gotArgs[2] != "Hello world" {
		t.Fatalf("unexpected args: %v", gotArgs)
	}
}

func TestSynthesizeVoiceFlag(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "speech.wav")
	synth := tts.NewSynthesizer(tts.Config{Binary: "espeak-ng", Voice: "es"}, nil, nil)

	var gotArgs []string
	synth.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		gotArgs = args
		return os.WriteFile(outputPath, []byte("audio"), 0o644)
	})

	if _, err := synth.Synthesize(context.Background(), "Hola", "", outputPath); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if len(gotArgs) != 5 || gotArgs[0] != "-v" || gotArgs[1] != "es" {
		t.Fatalf("expected voice flag first, got %v", gotArgs)
	}
}

func TestSynthesizeFallsBackOnPrimaryFailure(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "speech.wav")
	fallback := &fakeToneGenerator{writeFile: true}
	synth := tts.NewSynthesizer(tts.Config{Binary: "espeak-ng"}, fallback, nil)
	synth.WithCommandRunner(func(_ context.Context, _ string, _ ...string) error {
		return errors.New("exec: espeak-ng: not found")
	})

	degraded, err := synth.Synthesize(context.Background(), "Hello world", "", outputPath)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if !degraded {
		t.Fatal("fallback output should be flagged degraded")
	}
	if len(fallback.paths) != 1 || fallback.paths[0] != outputPath {
		t.Fatalf("unexpected fallback paths: %v", fallback.paths)
	}
}

func TestSynthesizeFallsBackOnEmptyPrimaryOutput(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "speech.wav")
	fallback := &fakeToneGenerator{writeFile: true}
	synth := tts.NewSynthesizer(tts.Config{Binary: "espeak-ng"}, fallback, nil)
	synth.WithCommandRunner(func(_ context.Context, _ string, _ ...string) error {
		// Engine exits zero but writes nothing usable.
		return os.WriteFile(outputPath, nil, 0o644)
	})

	degraded, err := synth.Synthesize(context.Background(), "Hello world", "", outputPath)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if !degraded {
		t.Fatal("expected degraded output for empty primary file")
	}
}

func TestToneDurationScalesWithTextLength(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "speech.wav")
	fallback := &fakeToneGenerator{writeFile: true}
	synth := tts.NewSynthesizer(tts.Config{}, fallback, nil)
	synth.WithCommandRunner(func(_ context.Context, _ string, _ ...string) error {
		return errors.New("boom")
	})

	// Short text hits the two second floor.
	if _, err := synth.Synthesize(context.Background(), "Hi", "", outputPath); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if fallback.durations[0] != 2 {
		t.Fatalf("expected 2s floor, got %f", fallback.durations[0])
	}

	// Longer text scales at a tenth of a second per character.
	long := make([]byte, 50)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := synth.Synthesize(context.Background(), string(long), "", outputPath); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if fallback.durations[1] != 5 {
		t.Fatalf("expected 5s duration, got %f", fallback.durations[1])
	}
}

func TestSynthesizeBothTiersFail(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "speech.wav")
	fallback := &fakeToneGenerator{err: errors.New("ffmpeg missing")}
	synth := tts.NewSynthesizer(tts.Config{}, fallback, nil)
	synth.WithCommandRunner(func(_ context.Context, _ string, _ ...string) error {
		return errors.New("engine missing")
	})

	if _, err := synth.Synthesize(context.Background(), "Hello", "", outputPath); err == nil {
		t.Fatal("expected error when both tiers fail")
	}
}

func TestSynthesizeValidatesInput(t *testing.T) {
	synth := tts.NewSynthesizer(tts.Config{}, nil, nil)
	if _, err := synth.Synthesize(context.Background(), "  ", "", "/tmp/out.wav"); err == nil {
		t.Fatal("expected error for empty text")
	}
	if _, err := synth.Synthesize(context.Background(), "hi", "", ""); err == nil {
		t.Fatal("expected error for empty output path")
	}
}

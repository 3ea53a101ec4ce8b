package ffmpeg_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/j-Karnika/Dubbing/internal/services/ffmpeg"
)

type capture struct {
	name string
	args []string
	err  error
}

func (c *capture) run(_ context.Context, name string, args ...string) error {
	c.name = name
	c.args = args
	return c.err
}

func TestExtractAudioArgs(t *testing.T) {
	rec := &capture{}
	client := ffmpeg.NewClient("ffmpeg")
	client.WithCommandRunner(rec.run)

	if err := client.ExtractAudio(context.Background(), "/in/video.mp4", "/out/audio.wav"); err != nil {
		t.Fatalf("ExtractAudio failed: %v", err)
	}
	want := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", "/in/video.mp4",
		"-vn", "-ac", "1", "-ar", "16000", "-c:a", "pcm_s16le",
		"/out/audio.wav",
	}
	if !reflect.DeepEqual(rec.args, want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", rec.args, want)
	}
}

func TestGenerateToneArgs(t *testing.T) {
	rec := &capture{}
	client := ffmpeg.NewClient("")
	client.WithCommandRunner(rec.run)

	if err := client.GenerateTone(context.Background(), 3.5, "/out/tone.wav"); err != nil {
		t.Fatalf("GenerateTone failed: %v", err)
	}
	if rec.name != "ffmpeg" {
		t.Fatalf("expected default binary, got %s", rec.name)
	}
	found := false
	for i, arg := range rec.args {
		if arg == "-i" && i+1 < len(rec.args) && rec.args[i+1] == "sine=frequency=440:duration=3.5" {
			found = true
		}
	}
	if !found {
		t.Fatalf("sine filter missing from args: %v", rec.args)
	}
}

func TestGenerateToneRejectsBadDuration(t *testing.T) {
	client := ffmpeg.NewClient("ffmpeg")
	client.WithCommandRunner((&capture{}).run)
	if err := client.GenerateTone(context.Background(), 0, "/out/tone.wav"); err == nil {
		t.Fatal("expected error for zero duration")
	}
}

func TestMuxArgs(t *testing.T) {
	rec := &capture{}
	client := ffmpeg.NewClient("ffmpeg")
	client.WithCommandRunner(rec.run)

	if err := client.Mux(context.Background(), "/in/video.mp4", "/in/dub.wav", "/out/final.mp4"); err != nil {
		t.Fatalf("Mux failed: %v", err)
	}
	want := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", "/in/video.mp4",
		"-i", "/in/dub.wav",
		"-c:v", "copy",
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-shortest",
		"/out/final.mp4",
	}
	if !reflect.DeepEqual(rec.args, want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", rec.args, want)
	}
}

func TestRunnerErrorPropagates(t *testing.T) {
	boom := errors.New("exit status 1")
	rec := &capture{err: boom}
	client := ffmpeg.NewClient("ffmpeg")
	client.WithCommandRunner(rec.run)

	err := client.ExtractAudio(context.Background(), "a", "b")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped runner error, got %v", err)
	}
}

package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command. Tests inject a stub to capture
// arguments without invoking ffmpeg.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Client invokes ffmpeg for the audio and video operations the pipeline needs.
type Client struct {
	binary string
	runner CommandRunner
}

// NewClient creates a client for the given ffmpeg binary. An empty binary
// falls back to "ffmpeg" on PATH.
func NewClient(binary string) *Client {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &Client{binary: binary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Client) WithCommandRunner(runner CommandRunner) {
	c.runner = runner
}

// ExtractAudio pulls the audio stream out of a video file as mono 16kHz PCM,
// the format the transcription tool expects.
func (c *Client) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		audioPath,
	}
	if err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("ffmpeg extract: %w", err)
	}
	return nil
}

// GenerateTone synthesizes a 440Hz placeholder tone of the given duration in
// seconds, mono 16kHz. It backs the degraded synthesis tier.
func (c *Client) GenerateTone(ctx context.Context, durationSeconds float64, audioPath string) error {
	if durationSeconds <= 0 {
		return fmt.Errorf("ffmpeg tone: invalid duration %f", durationSeconds)
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "lavfi",
		"-i", fmt.Sprintf("sine=frequency=440:duration=%g", durationSeconds),
		"-ar", "16000",
		"-ac", "1",
		audioPath,
	}
	if err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("ffmpeg tone: %w", err)
	}
	return nil
}

// Mux combines the original video stream with the dubbed audio track. The
// video stream is copied untouched; only the audio is replaced.
func (c *Client) Mux(ctx context.Context, videoPath, audioPath, outputPath string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-shortest",
		outputPath,
	}
	if err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("ffmpeg mux: %w", err)
	}
	return nil
}

func (c *Client) run(ctx context.Context, args ...string) error {
	if c.runner != nil {
		return c.runner(ctx, c.binary, args...)
	}
	cmd := exec.CommandContext(ctx, c.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", c.binary, err, strings.TrimSpace(string(output)))
	}
	return nil
}

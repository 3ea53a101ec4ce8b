package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/j-Karnika/Dubbing/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("exit status 1")
	err := services.Wrap(services.ErrTranscription, "transcribing", "run whisper", "Transcription failed", cause)

	if !errors.Is(err, services.ErrTranscription) {
		t.Fatal("expected error to match ErrTranscription")
	}
	if errors.Is(err, services.ErrTranslation) {
		t.Fatal("error should not match unrelated marker")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected error to match wrapped cause")
	}
	for _, fragment := range []string{"transcribing", "run whisper", "Transcription failed", "exit status 1"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %q", fragment, err.Error())
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "", "", "Unsupported file format", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatal("expected error to match ErrValidation")
	}
	if got := err.Error(); !strings.Contains(got, "Unsupported file format") {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestMessageReturnsSummary(t *testing.T) {
	err := services.Wrap(services.ErrSynthesis, "synthesizing", "primary tts", "Speech synthesis failed", errors.New("no voice data"))
	if got := services.Message(err); got != "Speech synthesis failed" {
		t.Fatalf("Message = %q, want summary only", got)
	}
}

func TestMessageFallsBackToErrorText(t *testing.T) {
	plain := errors.New("dial tcp: connection refused")
	if got := services.Message(plain); got != plain.Error() {
		t.Fatalf("Message = %q, want %q", got, plain.Error())
	}
	if got := services.Message(nil); got != "" {
		t.Fatalf("Message(nil) = %q, want empty", got)
	}
}

package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExtraction    = errors.New("audio extraction error")
	ErrTranscription = errors.New("transcription error")
	ErrTranslation   = errors.New("translation error")
	ErrSynthesis     = errors.New("speech synthesis error")
	ErrMux           = errors.New("video combination error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
)

// Error carries stage context alongside a short user-facing message. The
// marker is one of the exported sentinel errors above and drives
// classification with errors.Is.
type Error struct {
	Marker    error
	Stage     string
	Operation string
	// Msg is the summary surfaced to API clients and persisted on the job
	// record. Diagnostic detail belongs in Cause.
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	detail := buildDetail(e.Stage, e.Operation, e.Msg)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Marker, detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Marker, detail)
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Marker, e.Cause}
	}
	return []error{e.Marker}
}

// Wrap builds a stage error tagged with the provided marker. The message
// should be a short summary suitable for end users; err carries the
// diagnostic cause.
func Wrap(marker error, stage, operation, message string, err error) error {
	if marker == nil {
		marker = ErrConfiguration
	}
	return &Error{
		Marker:    marker,
		Stage:     stage,
		Operation: operation,
		Msg:       strings.TrimSpace(message),
		Cause:     err,
	}
}

// Message extracts the user-facing summary from a stage error. Errors
// produced outside Wrap fall back to their full text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var stageErr *Error
	if errors.As(err, &stageErr) && stageErr.Msg != "" {
		return stageErr.Msg
	}
	return err.Error()
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

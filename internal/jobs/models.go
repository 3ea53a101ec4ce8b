package jobs

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a dubbing job.
type Status string

const (
	StatusUploaded        Status = "uploaded"
	StatusExtractingAudio Status = "extracting_audio"
	StatusTranscribing    Status = "transcribing"
	StatusTranslating     Status = "translating"
	StatusSynthesizing    Status = "synthesizing"
	StatusFinalizing      Status = "finalizing"
	StatusCompleted       Status = "completed"
	StatusError           Status = "error"
)

var allStatuses = []Status{
	StatusUploaded,
	StatusExtractingAudio,
	StatusTranscribing,
	StatusTranslating,
	StatusSynthesizing,
	StatusFinalizing,
	StatusCompleted,
	StatusError,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

var processingStatuses = map[Status]struct{}{
	StatusExtractingAudio: {},
	StatusTranscribing:    {},
	StatusTranslating:     {},
	StatusSynthesizing:    {},
	StatusFinalizing:      {},
}

// Job represents a dubbing job persisted in SQLite.
type Job struct {
	ID              string
	Filename        string
	SourceLanguage  string
	TargetLanguage  string
	Status          Status
	Progress        int
	Transcription   string
	Translation     string
	DubbedAudioPath string
	FinalVideoPath  string
	ErrorMessage    string
	SourceVideoPath string
	Degraded        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsProcessing returns true when the status reflects an in-flight stage.
func (s Status) IsProcessing() bool {
	_, ok := processingStatuses[s]
	return ok
}

// IsTerminal returns true for completed and error, the two absorbing states.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// IsProcessing reports whether the job is currently inside a stage.
func (j *Job) IsProcessing() bool {
	return j.Status.IsProcessing()
}

// SetFailed marks the job as terminally failed with the given error message.
func (j *Job) SetFailed(message string) {
	j.Status = StatusError
	j.ErrorMessage = message
}

package server

import (
	"time"

	"github.com/j-Karnika/Dubbing/internal/jobs"
)

// JobView is the wire representation of a job. The on-disk source video path
// is internal and never leaves the server.
type JobView struct {
	ID               string `json:"id"`
	Filename         string `json:"filename"`
	OriginalLanguage string `json:"original_language"`
	TargetLanguage   string `json:"target_language"`
	Status           string `json:"status"`
	Progress         int    `json:"progress"`
	Transcription    string `json:"transcription,omitempty"`
	Translation      string `json:"translation,omitempty"`
	DubbedAudioPath  string `json:"dubbed_audio_path,omitempty"`
	FinalVideoPath   string `json:"final_video_path,omitempty"`
	ErrorMessage     string `json:"error_message,omitempty"`
	Degraded         bool   `json:"degraded"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

func viewFromJob(job *jobs.Job) JobView {
	return JobView{
		ID:               job.ID,
		Filename:         job.Filename,
		OriginalLanguage: job.SourceLanguage,
		TargetLanguage:   job.TargetLanguage,
		Status:           string(job.Status),
		Progress:         job.Progress,
		Transcription:    job.Transcription,
		Translation:      job.Translation,
		DubbedAudioPath:  job.DubbedAudioPath,
		FinalVideoPath:   job.FinalVideoPath,
		ErrorMessage:     job.ErrorMessage,
		Degraded:         job.Degraded,
		CreatedAt:        job.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        job.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func viewsFromJobs(list []*jobs.Job) []JobView {
	views := make([]JobView, 0, len(list))
	for _, job := range list {
		views = append(views, viewFromJob(job))
	}
	return views
}

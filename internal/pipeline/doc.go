// Package pipeline drives a dubbing job through its fixed stage sequence:
// audio extraction, transcription, translation, speech synthesis, and muxing
// the dubbed audio back into the video. Stage adapters are injected so the
// orchestration logic is testable without external tools.
package pipeline

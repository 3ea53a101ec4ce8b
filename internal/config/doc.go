// Package config loads, validates, and normalizes the daemon configuration.
//
// Configuration lives in a TOML file (default ~/.config/dubberd/config.toml)
// and is grouped by subsystem: paths, workflow limits, the translation LLM,
// whisper transcription, speech synthesis, ffmpeg, and logging.
package config

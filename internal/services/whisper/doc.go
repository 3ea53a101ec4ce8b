// Package whisper wraps the out-of-process Whisper CLI for speech
// transcription.
package whisper

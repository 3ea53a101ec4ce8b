// Package ffmpeg wraps the ffmpeg binary for audio extraction, tone
// generation, and muxing dubbed audio back into video.
package ffmpeg

package pipeline

import "context"

// AudioExtractor pulls the audio track out of a video file.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
}

// Transcriber converts speech audio into text. Audio without recognizable
// speech yields an empty string and no error.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}

// Translator converts text between languages.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// SpeechSynthesizer renders text as speech. The returned flag is true when a
// degraded fallback tier produced the output instead of the primary engine.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, referenceAudio, outputPath string) (bool, error)
}

// Muxer combines a video stream with a replacement audio track.
type Muxer interface {
	Mux(ctx context.Context, videoPath, audioPath, outputPath string) error
}

// Adapters bundles the stage implementations the runner needs.
type Adapters struct {
	Extractor   AudioExtractor
	Transcriber Transcriber
	Translator  Translator
	Synthesizer SpeechSynthesizer
	Muxer       Muxer
}

package config

const (
	defaultDataDir             = "~/.local/share/dubberd"
	defaultUploadDir           = "~/.local/share/dubberd/uploads"
	defaultAudioDir            = "~/.local/share/dubberd/audio"
	defaultProcessedDir        = "~/.local/share/dubberd/processed"
	defaultLogDir              = "~/.local/share/dubberd/logs"
	defaultAPIBind             = "127.0.0.1:8001"
	defaultMaxConcurrentJobs   = 2
	defaultStageTimeoutSeconds = 0
	defaultLLMBaseURL          = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel            = "openai/gpt-5"
	defaultLLMTimeoutSeconds   = 60
	defaultWhisperBinary       = "whisper"
	defaultWhisperModel        = "base"
	defaultTTSBinary           = "espeak-ng"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			UploadDir:    defaultUploadDir,
			AudioDir:     defaultAudioDir,
			ProcessedDir: defaultProcessedDir,
			LogDir:       defaultLogDir,
			APIBind:      defaultAPIBind,
		},
		Workflow: Workflow{
			MaxConcurrentJobs:   defaultMaxConcurrentJobs,
			StageTimeoutSeconds: defaultStageTimeoutSeconds,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Whisper: Whisper{
			Binary: defaultWhisperBinary,
			Model:  defaultWhisperModel,
		},
		TTS: TTS{
			Binary: defaultTTSBinary,
		},
		FFmpeg: FFmpeg{
			Binary: "ffmpeg",
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

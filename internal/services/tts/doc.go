// Package tts performs speech synthesis with a two-tier strategy: a real
// text-to-speech engine first, then a generated placeholder tone when the
// engine is unavailable so the pipeline can still finish end to end.
package tts

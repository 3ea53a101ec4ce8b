// Package translate wraps an OpenRouter-compatible chat completion API for
// emotion-preserving text translation.
package translate

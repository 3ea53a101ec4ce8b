// Package language normalizes the language designators used by dubbing jobs.
//
// Uploads name languages loosely ("English", "hi", "hin"); whisper wants
// ISO 639-1 codes and the translation prompt wants display names, so all
// conversions are consolidated here.
package language

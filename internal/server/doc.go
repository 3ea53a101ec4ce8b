// Package server exposes the dubbing job API over HTTP: upload, processing,
// status, download, and direct translation endpoints.
package server

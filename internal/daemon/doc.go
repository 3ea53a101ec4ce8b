// Package daemon wires configuration, the job store, the pipeline runner,
// and the HTTP API into a single long-running process, and enforces
// single-instance execution with a lock file.
package daemon

package testsupport

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/j-Karnika/Dubbing/internal/config"
	"github.com/j-Karnika/Dubbing/internal/jobs"
)

// MustOpenStore opens a jobs.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *jobs.Store {
	t.Helper()

	store, err := jobs.Open(cfg)
	if err != nil {
		t.Fatalf("jobs.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewJob creates an uploaded job for tests using the provided store.
func NewJob(t testing.TB, store *jobs.Store, filename, sourceLang, targetLang string) *jobs.Job {
	t.Helper()

	job := &jobs.Job{
		ID:             uuid.NewString(),
		Filename:       filename,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		Status:         jobs.StatusUploaded,
	}
	if err := store.Create(context.Background(), job); err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return job
}

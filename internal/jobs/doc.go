// Package jobs persists dubbing job records in SQLite.
//
// Each job is one dubbing request: an uploaded video, a language pair, and
// the state accumulated as the pipeline advances it stage by stage. The
// store supports create, point read, update, and list; the pipeline runner
// is the only writer once a job exists.
package jobs

package jobs

import "errors"

// ErrNotFound is returned when an operation targets a job id that does not exist.
var ErrNotFound = errors.New("job not found")

// ErrDuplicateID is returned when Create is called with an id that already exists.
var ErrDuplicateID = errors.New("job id already exists")

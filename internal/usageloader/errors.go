package usageloader

import (
	"errors"
	"fmt"
)

// ErrMalformedNotification is returned for a notification missing its bucket or object name.
var ErrMalformedNotification = errors.New("malformed storage notification")

var (
	errNoJob    = errors.New("warehouse returned no job")
	errNoStatus = errors.New("job returned no status")
)

// Stage names the step of a load that failed.
type Stage string

const (
	StageSubmit   Stage = "submit"
	StageWait     Stage = "wait"
	StageMetadata Stage = "metadata"
)

// LoadError reports a failed load. JobID is empty when the job was never
// created; JobErrors is only populated from a terminal job status.
type LoadError struct {
	Stage     Stage
	JobID     string
	SourceURI string
	JobErrors []string
	Err       error
}

func (e *LoadError) Error() string {
	if e.JobID == "" {
		return fmt.Sprintf("load %s: %s: %v", e.SourceURI, e.Stage, e.Err)
	}
	return fmt.Sprintf("load %s (job %s): %s: %v", e.SourceURI, e.JobID, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

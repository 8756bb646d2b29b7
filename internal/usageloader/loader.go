package usageloader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// usageMarker separates access logs from storage-inventory logs, which are ignored.
const usageMarker = "usage"

// Notification is the part of a storage object event the loader reads.
type Notification struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// Validate fails with ErrMalformedNotification if bucket or name is missing.
func (n Notification) Validate() error {
	if n.Bucket == "" {
		return fmt.Errorf("%w: bucket is empty", ErrMalformedNotification)
	}
	if n.Name == "" {
		return fmt.Errorf("%w: object name is empty", ErrMalformedNotification)
	}
	return nil
}

// IsUsageLog reports whether an object name denotes a usage (access) log.
func IsUsageLog(name string) bool {
	return strings.Contains(name, usageMarker)
}

// SourceURI returns the gs:// URI of an object.
func SourceURI(bucket, name string) string {
	return fmt.Sprintf("gs://%s/%s", bucket, name)
}

// Result describes a handled notification.
type Result struct {
	Skipped   bool
	JobID     string
	SourceURI string
	NumRows   uint64
}

// Loader loads usage logs into the destination table. A Loader is cheap and
// meant to be built per invocation around a shared Warehouse.
type Loader struct {
	Warehouse Warehouse
	Logger    log.Logger
}

// Handle loads the object named by n if it is a usage log. Load failures are
// logged and swallowed: the trigger is never told about them, so the event is
// not redelivered. Only a malformed notification is returned.
func (l *Loader) Handle(ctx context.Context, n Notification) error {
	_, err := l.Load(ctx, n)
	if errors.Is(err, ErrMalformedNotification) {
		return err
	}
	return nil
}

// Load submits a load job for a usage log, waits for it and reports the
// destination row count. Failures are logged and returned as *LoadError.
func (l *Loader) Load(ctx context.Context, n Notification) (Result, error) {
	if err := n.Validate(); err != nil {
		return Result{}, err
	}
	if !IsUsageLog(n.Name) {
		level.Debug(l.Logger).Log("msg", "skipping object", "bucket", n.Bucket, "name", n.Name)
		return Result{Skipped: true}, nil
	}

	res, err := l.load(ctx, NewLoadSpec(SourceURI(n.Bucket, n.Name)))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			l.logFailure(le)
		}
		return res, err
	}
	return res, nil
}

func (l *Loader) load(ctx context.Context, spec LoadSpec) (Result, error) {
	res := Result{SourceURI: spec.SourceURI}
	start := time.Now()

	dst := Destination()
	job, err := l.Warehouse.Load(ctx, spec, dst)
	if err == nil && job == nil {
		err = errNoJob
	}
	if err != nil {
		return res, &LoadError{Stage: StageSubmit, SourceURI: spec.SourceURI, Err: err}
	}
	res.JobID = job.ID()
	level.Info(l.Logger).Log("msg", "starting load job",
		"job_id", res.JobID,
		"source_uri", spec.SourceURI,
		"table", dst)

	status, err := job.Wait(ctx)
	if err == nil && status == nil {
		err = errNoStatus
	}
	if err != nil {
		return res, &LoadError{Stage: StageWait, JobID: res.JobID, SourceURI: spec.SourceURI, Err: err}
	}
	if status.Err != nil {
		return res, &LoadError{
			Stage:     StageWait,
			JobID:     res.JobID,
			SourceURI: spec.SourceURI,
			JobErrors: status.Errors,
			Err:       status.Err,
		}
	}
	if len(status.Errors) > 0 {
		level.Warn(l.Logger).Log("msg", "load job reported errors",
			"job_id", res.JobID,
			"job_errors", strings.Join(status.Errors, "; "))
	}
	level.Info(l.Logger).Log("msg", "load job finished",
		"job_id", res.JobID,
		"elapsed_time", time.Since(start))

	rows, err := l.Warehouse.NumRows(ctx, dst)
	if err != nil {
		return res, &LoadError{Stage: StageMetadata, JobID: res.JobID, SourceURI: spec.SourceURI, Err: err}
	}
	res.NumRows = rows
	level.Info(l.Logger).Log("msg", "loaded rows", "table", dst, "num_rows", rows)
	return res, nil
}

func (l *Loader) logFailure(le *LoadError) {
	level.Error(l.Logger).Log("msg", "load failed",
		"stage", le.Stage,
		"job_id", le.JobID,
		"source_uri", le.SourceURI,
		"err", le.Err,
		"job_errors", strings.Join(le.JobErrors, "; "))
}

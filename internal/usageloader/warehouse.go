package usageloader

import (
	"context"
	"fmt"
)

// SourceFormat is the file format of a load job source.
type SourceFormat string

// CSV is the only format usage logs are delivered in.
const CSV SourceFormat = "CSV"

// TableRef identifies a warehouse table.
type TableRef struct {
	Dataset string
	Table   string
}

func (t TableRef) String() string {
	return fmt.Sprintf("%s.%s", t.Dataset, t.Table)
}

// The pre-existing table every usage log is appended to.
const (
	DestinationDataset = "storageanalysis"
	DestinationTable   = "usage"
)

// Destination returns the reference to the usage table.
func Destination() TableRef {
	return TableRef{Dataset: DestinationDataset, Table: DestinationTable}
}

// LoadSpec describes one load job. Built fresh per object and never persisted.
type LoadSpec struct {
	SourceURI       string
	Format          SourceFormat
	SkipLeadingRows int64
}

// NewLoadSpec returns the load configuration for a usage log at uri: CSV with a
// single header row.
func NewLoadSpec(uri string) LoadSpec {
	return LoadSpec{
		SourceURI:       uri,
		Format:          CSV,
		SkipLeadingRows: 1,
	}
}

// JobStatus is the terminal state of a load job. Err is set when the job
// itself failed. Errors holds every error the job reported, fatal or not.
type JobStatus struct {
	Err    error
	Errors []string
}

// LoadJob is a handle on a submitted load job.
type LoadJob interface {
	ID() string
	// Wait blocks until the job is done or ctx ends. A non-nil error means the
	// job state could not be determined; job failure is reported in JobStatus.
	// A nil error comes with a non-nil status.
	Wait(ctx context.Context) (*JobStatus, error)
}

// Warehouse is the part of the analytical warehouse the loader talks to.
// Implementations must be safe for concurrent use. Load returns a non-nil
// job whenever its error is nil.
type Warehouse interface {
	Load(ctx context.Context, spec LoadSpec, dst TableRef) (LoadJob, error)
	NumRows(ctx context.Context, dst TableRef) (uint64, error)
}

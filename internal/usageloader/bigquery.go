package usageloader

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"
)

// BigQuery is a Warehouse backed by the BigQuery API.
type BigQuery struct {
	client *bigquery.Client
}

var _ Warehouse = (*BigQuery)(nil)

// NewBigQuery connects to BigQuery. An empty project is detected from the
// environment's credentials.
func NewBigQuery(ctx context.Context, project string, opts ...option.ClientOption) (*BigQuery, error) {
	if project == "" {
		project = bigquery.DetectProjectID
	}
	client, err := bigquery.NewClient(ctx, project, opts...)
	if err != nil {
		return nil, fmt.Errorf("create bigquery client: %w", err)
	}
	return &BigQuery{client: client}, nil
}

// Close releases the underlying client.
func (b *BigQuery) Close() error {
	return b.client.Close()
}

func (b *BigQuery) table(ref TableRef) *bigquery.Table {
	return b.client.Dataset(ref.Dataset).Table(ref.Table)
}

// Load appends the object at spec.SourceURI to dst, which must already exist.
func (b *BigQuery) Load(ctx context.Context, spec LoadSpec, dst TableRef) (LoadJob, error) {
	loader := b.table(dst).LoaderFrom(gcsReference(spec))
	loader.CreateDisposition = bigquery.CreateNever
	loader.WriteDisposition = bigquery.WriteAppend
	job, err := loader.Run(ctx)
	if err != nil {
		return nil, err
	}
	return &bigQueryJob{job: job}, nil
}

// NumRows returns the row count from the table's metadata.
func (b *BigQuery) NumRows(ctx context.Context, dst TableRef) (uint64, error) {
	md, err := b.table(dst).Metadata(ctx)
	if err != nil {
		return 0, err
	}
	return md.NumRows, nil
}

func gcsReference(spec LoadSpec) *bigquery.GCSReference {
	ref := bigquery.NewGCSReference(spec.SourceURI)
	ref.SourceFormat = bigquery.DataFormat(spec.Format)
	ref.SkipLeadingRows = spec.SkipLeadingRows
	return ref
}

type bigQueryJob struct {
	job *bigquery.Job
}

func (j *bigQueryJob) ID() string {
	return j.job.ID()
}

func (j *bigQueryJob) Wait(ctx context.Context) (*JobStatus, error) {
	status, err := j.job.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return jobStatus(status), nil
}

func jobStatus(status *bigquery.JobStatus) *JobStatus {
	js := &JobStatus{Err: status.Err()}
	for _, e := range status.Errors {
		if e == nil {
			continue
		}
		js.Errors = append(js.Errors, e.Error())
	}
	return js
}

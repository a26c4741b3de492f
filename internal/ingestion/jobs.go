// Package ingestion reads uploaded job documents and turns them into job records.
package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/job-analysis/internal/schemas"
	"github.com/jonathan/job-analysis/internal/types"
)

// nowFunc stamps metadata; replaced in tests
var nowFunc = time.Now

// ParseJobs decodes a JSON array of job-like objects.
// Each element becomes a types.Job with placeholders for missing values.
func ParseJobs(data []byte) ([]types.Job, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Message: err.Error(), Cause: err}
	}

	if err := schemas.ValidateJobsDocument(doc); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &ParseError{
				Message: "expected an array of objects: " + validationErr.Summary(),
				Cause:   err,
			}
		}
		return nil, fmt.Errorf("failed to validate document: %w", err)
	}

	items := doc.([]any)
	jobs := make([]types.Job, 0, len(items))
	for _, item := range items {
		jobs = append(jobs, types.NewJob(types.RawJob(item.(map[string]any))))
	}
	return jobs, nil
}

// ReadAll reads r until EOF, stopping early when ctx is cancelled.
// A positive limit caps the number of bytes accepted.
func ReadAll(ctx context.Context, r io.Reader, limit int64) ([]byte, error) {
	reader := io.Reader(&contextReader{ctx: ctx, r: r})
	if limit > 0 {
		reader = io.LimitReader(reader, limit+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, limit)
	}
	return data, nil
}

// ReadJobs reads and parses a whole jobs document from r
func ReadJobs(ctx context.Context, r io.Reader, limit int64) ([]types.Job, []byte, error) {
	data, err := ReadAll(ctx, r, limit)
	if err != nil {
		return nil, nil, err
	}

	jobs, err := ParseJobs(data)
	if err != nil {
		return nil, nil, err
	}
	return jobs, data, nil
}

// LoadFile reads and parses a jobs document from disk
func LoadFile(path string) ([]types.Job, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	jobs, err := ParseJobs(content)
	if err != nil {
		return nil, nil, err
	}

	return jobs, NewMetadata(content, filepath.Base(path), len(jobs), nowFunc()), nil
}

// contextReader fails reads once its context is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

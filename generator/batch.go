package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/flanksource/commons/logger"
	"golang.org/x/sync/errgroup"
)

// BatchOptions tune a batch run.
type BatchOptions struct {
	Parallel      bool
	MaxConcurrent int
	StopOnError   bool
}

// BatchResult is the outcome of one request in a batch.
type BatchResult struct {
	Request    Request       `json:"request"`
	OutputPath string        `json:"output,omitempty"`
	Err        error         `json:"-"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// BatchSummary aggregates a batch run.
type BatchSummary struct {
	Total    int           `json:"total"`
	Success  int           `json:"success"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
	Results  []BatchResult `json:"results"`
}

// LoadBatch reads a batch manifest: a JSON array of requests, or an object
// with a "documents" array.
func LoadBatch(path string) ([]Request, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch manifest: %w", err)
	}
	var requests []Request
	if err := json.Unmarshal(raw, &requests); err == nil {
		return requests, nil
	}
	var wrapper struct {
		Documents []Request `json:"documents"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("invalid batch manifest %s: %w", path, err)
	}
	if len(wrapper.Documents) == 0 {
		return nil, fmt.Errorf("batch manifest %s contains no documents", path)
	}
	return wrapper.Documents, nil
}

// Batch generates every request, in parallel when asked, and reports
// per-request results plus totals. Failures do not stop the batch unless
// StopOnError is set.
func (g *Generator) Batch(ctx context.Context, requests []Request, opts BatchOptions) BatchSummary {
	start := time.Now()
	results := make([]BatchResult, len(requests))

	run := func(i int) error {
		reqStart := time.Now()
		path, err := g.Generate(ctx, requests[i])
		results[i] = BatchResult{
			Request:    requests[i],
			OutputPath: path,
			Err:        err,
			Duration:   time.Since(reqStart),
		}
		if err != nil {
			results[i].Error = err.Error()
			logger.Errorf("batch item %d (%s/%s): %v", i+1, requests[i].Format, requests[i].Template, err)
			if opts.StopOnError {
				return err
			}
		}
		return nil
	}

	if opts.Parallel {
		group, groupCtx := errgroup.WithContext(ctx)
		limit := opts.MaxConcurrent
		if limit <= 0 {
			limit = 4
		}
		group.SetLimit(limit)
		for i := range requests {
			group.Go(func() error {
				select {
				case <-groupCtx.Done():
					return groupCtx.Err()
				default:
					return run(i)
				}
			})
		}
		_ = group.Wait()
	} else {
		for i := range requests {
			if err := run(i); err != nil && opts.StopOnError {
				break
			}
		}
	}

	summary := BatchSummary{
		Total:    len(requests),
		Duration: time.Since(start),
		Results:  results,
	}
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else if r.OutputPath != "" {
			summary.Success++
		}
	}
	logger.Infof("batch complete: %d succeeded, %d failed in %s",
		summary.Success, summary.Failed, summary.Duration.Round(time.Millisecond))
	return summary
}

package pipeline

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
)

// BatchResult is the outcome of one job of a batch.
type BatchResult struct {
	Index    int
	Name     string
	Result   *Result
	Err      error
	Duration time.Duration
}

// Failed reports whether the job failed for a reason in its input rather
// than in I/O, e.g. an exhausted visibility search.
func (b BatchResult) Failed() bool {
	return b.Err != nil && gerr.IsCoreFailure(b.Err)
}

// BatchSummary counts batch outcomes.
type BatchSummary struct {
	Total     int
	Succeeded int
	// ByCode counts failed jobs per error code; errors without a code are
	// counted under "INTERNAL_ERROR".
	ByCode map[gerr.Code]int
}

// Summarize counts the outcomes of results.
func Summarize(results []BatchResult) BatchSummary {
	s := BatchSummary{Total: len(results), ByCode: make(map[gerr.Code]int)}
	for _, r := range results {
		if r.Err == nil {
			s.Succeeded++
			continue
		}
		code := gerr.GetCode(r.Err)
		if code == "" {
			code = gerr.ErrCodeInternal
		}
		s.ByCode[code]++
	}
	return s
}

// RunBatch executes jobs with at most workers running concurrently. A job
// failure does not stop the others; cancelling ctx does. onDone, if
// non-nil, is called once per finished job from the worker goroutine.
// Results are returned in job order.
func (r *Runner) RunBatch(ctx context.Context, jobs []Options, workers int, onDone func(BatchResult)) []BatchResult {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]BatchResult, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		if ctx.Err() != nil {
			results[i] = BatchResult{Index: i, Name: job.InstanceName(), Err: ctx.Err()}
			continue
		}
		g.Go(func() error {
			start := time.Now()
			res, err := r.Execute(ctx, job)
			br := BatchResult{Index: i, Name: job.InstanceName(), Result: res, Err: err, Duration: time.Since(start)}
			if res != nil {
				br.Name = res.Name
			}
			results[i] = br
			if onDone != nil {
				onDone(br)
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

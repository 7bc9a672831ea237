package pipeline

import (
	"context"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"picks/internal/display"
)

// TransformFunc performs the actual image transform for one task and returns
// the size of the written output. It is the capability boundary between the
// scheduling core and the codec work in internal/transform.
type TransformFunc func(Task) (int64, error)

// Run executes the planned tasks on a pool of `workers` goroutines and
// returns the aggregated stats. Each outcome is folded by a single collector
// goroutine, which also forwards one ProgressUpdate per task to updates (may
// be nil). Per-task failures are isolated: they are reported through the
// sink and the logger, never abort the batch, and are never retried.
//
// With one worker, outcomes arrive in submission order; with more, in
// completion order. Cancelling ctx stops feeding new tasks; tasks already
// in flight run to completion.
func Run(ctx context.Context, tasks []Task, workers int, transform TransformFunc, updates chan<- ProgressUpdate, log logrus.FieldLogger) RunStats {
	jobs := make(chan Task)
	results := make(chan Outcome)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for task := range jobs {
				results <- execute(task, transform)
			}
		}()
	}

	var stats RunStats
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range results {
			stats.Fold(res)

			if res.Status == StatusFailed {
				log.Debugf("failed %s: %s", res.Input, res.Message)
			}
			if updates != nil {
				updates <- progressFor(res)
			}
		}
	}()

	go func() {
		defer close(jobs)
		for _, task := range tasks {
			select {
			case jobs <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(results)
	<-collectorDone

	return stats
}

// execute runs one task through its terminal state: the skip-existing check
// first, the transform otherwise. Input size is stat'd best-effort so failed
// outcomes still carry whatever byte count was readable.
func execute(task Task, transform TransformFunc) Outcome {
	var inBytes int64
	if fi, err := os.Stat(task.Input); err == nil {
		inBytes = fi.Size()
	}

	if task.SkipExisting {
		if fi, err := os.Stat(task.Output); err == nil {
			return Outcome{
				Status:      StatusSkipped,
				Input:       task.Input,
				InputBytes:  inBytes,
				OutputBytes: fi.Size(),
			}
		}
	}

	outBytes, err := transform(task)
	if err != nil {
		return Outcome{
			Status:     StatusFailed,
			Input:      task.Input,
			InputBytes: inBytes,
			Message:    err.Error(),
		}
	}

	return Outcome{
		Status:      StatusSucceeded,
		Input:       task.Input,
		InputBytes:  inBytes,
		OutputBytes: outBytes,
	}
}

func progressFor(res Outcome) ProgressUpdate {
	up := ProgressUpdate{
		CompletedDelta:   1,
		InputBytesDelta:  res.InputBytes,
		OutputBytesDelta: res.OutputBytes,
		Label:            display.FixedWidthLabel(res.Input),
	}
	switch res.Status {
	case StatusSucceeded:
		up.SucceededDelta = 1
	case StatusSkipped:
		up.SkippedDelta = 1
	case StatusFailed:
		up.FailedDelta = 1
		up.FailureMessage = res.Message
	}
	return up
}

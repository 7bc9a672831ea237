package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"picks/internal/config"
)

func makeTasks(t *testing.T, n int) []Task {
	t.Helper()
	source := t.TempDir()
	dest := t.TempDir()

	tasks := make([]Task, 0, n)
	for i := 0; i < n; i++ {
		input := filepath.Join(source, fmt.Sprintf("img-%03d.jpg", i))
		if err := os.WriteFile(input, make([]byte, 100+i), 0o644); err != nil {
			t.Fatal(err)
		}
		tasks = append(tasks, Task{
			Input:        input,
			Output:       filepath.Join(dest, fmt.Sprintf("out-%03d.jpg", i)),
			MaxDimension: config.DefaultMaxDimension,
			Quality:      config.DefaultQuality,
			Format:       config.FormatJPG,
		})
	}
	return tasks
}

func drain(updates <-chan ProgressUpdate, done chan<- []ProgressUpdate) {
	var got []ProgressUpdate
	for up := range updates {
		got = append(got, up)
	}
	done <- got
}

func TestRunSingleWorkerPreservesOrder(t *testing.T) {
	tasks := makeTasks(t, 8)

	updates := make(chan ProgressUpdate, 16)
	collected := make(chan []ProgressUpdate, 1)
	go drain(updates, collected)

	stats := Run(context.Background(), tasks, 1, func(task Task) (int64, error) {
		return 50, nil
	}, updates, quietLog())
	close(updates)

	if stats.Succeeded != 8 || stats.Failed != 0 || stats.Skipped != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	got := <-collected
	if len(got) != 8 {
		t.Fatalf("got %d updates, want 8", len(got))
	}
	for i, up := range got {
		want := filepath.Base(tasks[i].Input)
		if strings.TrimSpace(up.Label) != want {
			t.Fatalf("update %d label = %q, want %q (submission order)", i, up.Label, want)
		}
	}
}

func TestRunParallelCountsAddUp(t *testing.T) {
	tasks := makeTasks(t, 30)

	stats := Run(context.Background(), tasks, 4, func(task Task) (int64, error) {
		// Fail a few tasks to mix outcome kinds.
		if strings.HasSuffix(task.Input, "0.jpg") {
			return 0, errors.New("synthetic decode failure")
		}
		return 10, nil
	}, nil, quietLog())

	if total := stats.Succeeded + stats.Failed + stats.Skipped; total != len(tasks) {
		t.Fatalf("outcome total %d != task count %d", total, len(tasks))
	}
	if stats.Failed == 0 || stats.Succeeded == 0 {
		t.Fatalf("expected a mix of outcomes: %+v", stats)
	}
}

func TestRunFailureIsolation(t *testing.T) {
	tasks := makeTasks(t, 3)

	calls := 0
	stats := Run(context.Background(), tasks, 1, func(task Task) (int64, error) {
		calls++
		if calls == 2 {
			return 0, errors.New("corrupt input")
		}
		return 20, nil
	}, nil, quietLog())

	if calls != 3 {
		t.Fatalf("a failure aborted the batch: %d calls", calls)
	}
	if stats.Succeeded != 2 || stats.Failed != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestRunSkipExisting(t *testing.T) {
	tasks := makeTasks(t, 1)
	tasks[0].SkipExisting = true

	existing := []byte("already optimized")
	if err := os.WriteFile(tasks[0].Output, existing, 0o644); err != nil {
		t.Fatal(err)
	}

	stats := Run(context.Background(), tasks, 1, func(task Task) (int64, error) {
		t.Error("transform invoked for a skippable task")
		return 0, nil
	}, nil, quietLog())

	if stats.Skipped != 1 || stats.Succeeded != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.TotalOutputBytes != int64(len(existing)) {
		t.Fatalf("output bytes = %d, want existing size %d", stats.TotalOutputBytes, len(existing))
	}

	after, err := os.ReadFile(tasks[0].Output)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(existing) {
		t.Fatal("existing output file was modified")
	}
}

func TestRunRecordsByteTotals(t *testing.T) {
	tasks := makeTasks(t, 2) // inputs are 100 and 101 bytes

	stats := Run(context.Background(), tasks, 2, func(task Task) (int64, error) {
		return 40, nil
	}, nil, quietLog())

	if stats.TotalInputBytes != 201 {
		t.Fatalf("input bytes = %d, want 201", stats.TotalInputBytes)
	}
	if stats.TotalOutputBytes != 80 {
		t.Fatalf("output bytes = %d, want 80", stats.TotalOutputBytes)
	}
}

func TestRunFailedInputBytesBestEffort(t *testing.T) {
	tasks := makeTasks(t, 1)
	if err := os.Remove(tasks[0].Input); err != nil {
		t.Fatal(err)
	}

	stats := Run(context.Background(), tasks, 1, func(task Task) (int64, error) {
		return 0, errors.New("open failed")
	}, nil, quietLog())

	if stats.Failed != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.TotalInputBytes != 0 {
		t.Fatalf("unreadable input should count 0 bytes, got %d", stats.TotalInputBytes)
	}
}

func TestRunCancelledContextStopsFeeding(t *testing.T) {
	tasks := makeTasks(t, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats := Run(ctx, tasks, 2, func(task Task) (int64, error) {
		return 1, nil
	}, nil, quietLog())

	if got := stats.Succeeded + stats.Failed + stats.Skipped; got == len(tasks) {
		t.Skip("all tasks raced in before cancellation was observed")
	} else if got > len(tasks) {
		t.Fatalf("more outcomes than tasks: %d", got)
	}
}

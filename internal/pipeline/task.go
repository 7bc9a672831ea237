package pipeline

import "picks/internal/config"

// Task is one planned unit of work: a single input image, its computed
// output path, and the transform parameters. Tasks are created by Plan,
// never mutated afterwards, and handed to the executor by value.
type Task struct {
	Input        string
	Output       string
	MaxDimension int
	Quality      int
	Format       config.Format
	SkipExisting bool
}

// Status is the terminal state of an executed Task.
type Status int

const (
	StatusSucceeded Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome is produced exactly once per Task. InputBytes is best-effort (0
// when the input could not be stat'd); Message carries the failure detail
// for StatusFailed and is empty otherwise.
type Outcome struct {
	Status      Status
	Input       string
	InputBytes  int64
	OutputBytes int64
	Message     string
}

// ProgressUpdate is one incremental event for the reporting sink, emitted by
// the collector after each Outcome is folded.
type ProgressUpdate struct {
	CompletedDelta   int
	SucceededDelta   int
	SkippedDelta     int
	FailedDelta      int
	InputBytesDelta  int64
	OutputBytesDelta int64
	Label            string
	FailureMessage   string
}

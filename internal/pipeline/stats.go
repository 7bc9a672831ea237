package pipeline

// RunStats accumulates counters and byte totals across a batch run. It is
// mutated only by the collector goroutine, which serializes all folds.
type RunStats struct {
	Succeeded        int
	Skipped          int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// Fold merges one outcome into the totals.
func (s *RunStats) Fold(o Outcome) {
	switch o.Status {
	case StatusSucceeded:
		s.Succeeded++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
	s.TotalInputBytes += o.InputBytes
	s.TotalOutputBytes += o.OutputBytes
}

// Completed returns the number of outcomes folded so far.
func (s RunStats) Completed() int {
	return s.Succeeded + s.Skipped + s.Failed
}

// SpaceSaved returns the aggregate byte difference between inputs and
// outputs. Negative means outputs grew.
func (s RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// CompressionRatio returns the percentage of input bytes saved. The second
// return is false when no input bytes were counted, in which case the
// summary omits the ratio line.
func (s RunStats) CompressionRatio() (float64, bool) {
	if s.TotalInputBytes == 0 {
		return 0, false
	}
	return float64(s.TotalInputBytes-s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100, true
}

package pipeline

import "path/filepath"

// PreviewLimit is how many example output names a dry run shows.
const PreviewLimit = 5

// PreviewEntry pairs one input basename with its planned output name.
type PreviewEntry struct {
	Input  string
	Output string
}

// Preview is the dry-run rendering of a plan: the first few entries plus a
// count of the remainder. Building it performs no filesystem mutation.
type Preview struct {
	Entries   []PreviewEntry
	Remaining int
	Total     int
}

// BuildPreview trims a plan down to its dry-run preview.
func BuildPreview(tasks []Task) Preview {
	p := Preview{Total: len(tasks)}
	for i, task := range tasks {
		if i >= PreviewLimit {
			p.Remaining = len(tasks) - PreviewLimit
			break
		}
		p.Entries = append(p.Entries, PreviewEntry{
			Input:  filepath.Base(task.Input),
			Output: filepath.Base(task.Output),
		})
	}
	return p
}

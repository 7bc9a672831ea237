package pipeline

import (
	"fmt"
	"testing"
)

func previewTasks(n int) []Task {
	tasks := make([]Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, Task{
			Input:  fmt.Sprintf("/src/photos/img-%d.png", i+1),
			Output: fmt.Sprintf("/dst/photos/photos-%04d.jpg", i+1),
		})
	}
	return tasks
}

func TestBuildPreviewBoundsEntries(t *testing.T) {
	p := BuildPreview(previewTasks(8))
	if len(p.Entries) != PreviewLimit {
		t.Fatalf("got %d entries, want %d", len(p.Entries), PreviewLimit)
	}
	if p.Remaining != 3 {
		t.Fatalf("remaining = %d, want 3", p.Remaining)
	}
	if p.Total != 8 {
		t.Fatalf("total = %d, want 8", p.Total)
	}
	if p.Entries[0].Input != "img-1.png" || p.Entries[0].Output != "photos-0001.jpg" {
		t.Fatalf("unexpected first entry: %+v", p.Entries[0])
	}
}

func TestBuildPreviewSmallBatch(t *testing.T) {
	p := BuildPreview(previewTasks(3))
	if len(p.Entries) != 3 || p.Remaining != 0 {
		t.Fatalf("unexpected preview: %+v", p)
	}
}

func TestBuildPreviewEmpty(t *testing.T) {
	p := BuildPreview(nil)
	if len(p.Entries) != 0 || p.Remaining != 0 || p.Total != 0 {
		t.Fatalf("unexpected preview: %+v", p)
	}
}

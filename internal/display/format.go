// Package display renders values for stable terminal output.
package display

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatBytes returns a human-readable size using binary prefixes
// (B, KB, MB, GB, TB at a 1024 ratio) with one decimal place.
func FormatBytes(bytes int64) string {
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f%s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1fTB", size)
}

// LabelWidth is the fixed character budget for progress labels.
const LabelWidth = 30

// FixedWidthLabel strips the path from name, normalizes whitespace to
// underscores, truncates with an ellipsis beyond LabelWidth, and pads to a
// constant width so the progress line never jumps.
func FixedWidthLabel(name string) string {
	label := filepath.Base(name)
	label = strings.ReplaceAll(label, " ", "_")
	label = strings.ReplaceAll(label, "\t", "_")

	if len(label) > LabelWidth {
		label = label[:LabelWidth-3] + "..."
	}
	if len(label) < LabelWidth {
		label += strings.Repeat(" ", LabelWidth-len(label))
	}
	return label
}

// Package pipeline implements the batch execution core: discovery, task
// planning with collision and containment safety, the bounded worker pool,
// and outcome aggregation.
package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"picks/pkg/imgutil"
)

// Discover walks root and collects regular files whose lowercase extension
// is in the allowed set. Symbolic links are never followed, so cycles and
// links escaping the root are impossible. The result is sorted by full path
// so sequential numbering is reproducible across runs on the same tree.
func Discover(root string, allowed map[string]imgutil.Kind) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := allowed[ext]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

package pipeline

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"picks/internal/config"
)

// DestDir returns the batch output directory: the destination root with the
// source folder's base name nested under it.
func DestDir(cfg config.Config) string {
	return filepath.Join(cfg.DestRoot, filepath.Base(filepath.Clean(cfg.SourceRoot)))
}

// Plan computes one Task per discovered file. It performs no filesystem
// mutation, so it is shared verbatim by the dry-run path.
//
// Tasks whose resolved output would escape destDir are dropped with a
// security diagnostic, and tasks whose output collides with an
// earlier-planned one (possible with --keep-names without --preserve-dirs
// when different subdirectories hold identically named files) are dropped
// with a warning. The rest of the batch proceeds either way.
func Plan(files []string, cfg config.Config, destDir string, log logrus.FieldLogger) []Task {
	total := len(files)
	ext := cfg.Format.Ext()
	sourceBase := filepath.Base(filepath.Clean(cfg.SourceRoot))

	destAbs := absClean(destDir)
	claimed := make(map[string]string, total)
	tasks := make([]Task, 0, total)

	for i, input := range files {
		rel, err := filepath.Rel(cfg.SourceRoot, input)
		if err != nil || strings.HasPrefix(rel, "..") {
			log.Warnf("security: input outside source folder, dropping: %s", input)
			continue
		}

		var out string
		switch {
		case cfg.PreserveDirs && cfg.KeepNames:
			out = filepath.Join(destDir, swapExt(rel, ext))
		case cfg.PreserveDirs:
			name := SequentialName(sourceBase, i+1, total, ext)
			out = filepath.Join(destDir, filepath.Dir(rel), name)
		case cfg.KeepNames:
			out = filepath.Join(destDir, swapExt(filepath.Base(rel), ext))
		default:
			out = filepath.Join(destDir, SequentialName(sourceBase, i+1, total, ext))
		}

		if !within(out, destAbs) {
			log.Warnf("security: output path would escape destination folder, dropping: %s", out)
			continue
		}

		if owner, exists := claimed[out]; exists {
			log.Warnf("output collision: %s and %s both map to %s, dropping the latter", owner, input, out)
			continue
		}
		claimed[out] = input

		tasks = append(tasks, Task{
			Input:        input,
			Output:       out,
			MaxDimension: cfg.MaxDimension,
			Quality:      cfg.Quality,
			Format:       cfg.Format,
			SkipExisting: cfg.SkipExisting,
		})
	}

	return tasks
}

// SequentialName builds the `{folder}-{index}{ext}` output name, zero-padded
// to at least four digits, wider when the batch needs it (1 of 123456 files
// becomes folder-000001).
func SequentialName(folder string, index, total int, ext string) string {
	digits := len(strconv.Itoa(total))
	if digits < 4 {
		digits = 4
	}
	return fmt.Sprintf("%s-%0*d%s", folder, digits, index, ext)
}

func swapExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func absClean(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(abs)
}

// within reports whether path, once absolute and cleaned, lies inside root.
// Discovery never follows symlinks and the output does not exist yet, so
// the check is lexical: `..` segments are collapsed before comparing.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, absClean(path))
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}

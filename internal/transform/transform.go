// Package transform performs the per-file image work: decode, orientation
// normalization, bounded resize, and re-encode to the target format.
package transform

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	// Decoders for the rest of the supported input set.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"picks/internal/config"
	"picks/internal/pipeline"
	"picks/pkg/imgutil"
)

// File transforms one task's input image into its output file and returns
// the output size in bytes. Parent directories of the output are created as
// needed; creation is idempotent and safe when multiple workers race on the
// same directory. File satisfies pipeline.TransformFunc.
func File(task pipeline.Task) (int64, error) {
	f, err := os.Open(task.Input)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	kind, err := imgutil.SniffReader(f)
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if kind == imgutil.KindUnknown {
		return 0, fmt.Errorf("not a supported image format")
	}

	orientation := readOrientation(f)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", kind, err)
	}

	// Bring the pixels upright before any geometric operation, then clone
	// into NRGBA so every format reaches the encoder in one representation.
	img = applyOrientation(img, orientation)
	nrgba := imaging.Clone(img)

	bounds := nrgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > task.MaxDimension || h > task.MaxDimension {
		nw, nh := fitDimensions(w, h, task.MaxDimension)
		nrgba = imaging.Resize(nrgba, nw, nh, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(task.Output), 0o755); err != nil {
		return 0, err
	}

	out, err := os.Create(task.Output)
	if err != nil {
		return 0, err
	}

	switch task.Format {
	case config.FormatWebP:
		err = webp.Encode(out, nrgba, &webp.Options{Quality: float32(task.Quality)})
	default:
		err = jpeg.Encode(out, nrgba, &jpeg.Options{Quality: task.Quality})
	}
	if err != nil {
		_ = out.Close()
		return 0, fmt.Errorf("encode %s: %w", task.Format, err)
	}
	if err := out.Close(); err != nil {
		return 0, err
	}

	fi, err := os.Stat(task.Output)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// fitDimensions scales (w, h) so the larger side equals maxDim, preserving
// aspect ratio and rounding the shorter side half away from zero.
func fitDimensions(w, h, maxDim int) (int, int) {
	if w >= h {
		nh := int(math.Round(float64(h) * float64(maxDim) / float64(w)))
		if nh < 1 {
			nh = 1
		}
		return maxDim, nh
	}
	nw := int(math.Round(float64(w) * float64(maxDim) / float64(h)))
	if nw < 1 {
		nw = 1
	}
	return nw, maxDim
}

package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/retroblast-engine/asemation"
)

// exportFrames writes frames from..to of doc as <base>_NNN.png into dir,
// scaled up by an integer factor without smoothing. It returns the written
// paths.
func exportFrames(doc *asemation.Document, dir, base string, scale, from, to int) ([]string, error) {
	if scale < 1 {
		return nil, fmt.Errorf("scale must be at least 1, got %d", scale)
	}
	if from < 0 || to >= len(doc.Frames) || from > to {
		return nil, fmt.Errorf("frames %d-%d out of range 0-%d", from, to, len(doc.Frames)-1)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var paths []string
	for i := from; i <= to; i++ {
		var img image.Image = doc.FrameImage(i)
		if scale > 1 {
			dst := image.NewRGBA(image.Rect(0, 0, doc.Width*scale, doc.Height*scale))
			draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
			img = dst
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_%03d.png", base, i))
		if err := writePNG(path, img); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/retroblast-engine/asemation"
)

// printDocument prints the sprite header, frames, tags and warnings.
func printDocument(w io.Writer, name string, doc *asemation.Document) {
	h := doc.Header
	fmt.Fprintf(w, "Sprite Information: %s\n", name)
	fmt.Fprintln(w, "===================")
	fmt.Fprintf(w, "Size: %d x %d pixels (%s)\n", doc.Width, doc.Height, humanize.Bytes(uint64(h.FileSize)))
	fmt.Fprintf(w, "Type: colormode %s, colors %d, depth %d bpp\n", h.GetColorDepthDescription(), h.GetNumColors(), h.ColorDepth)
	fmt.Fprintf(w, "Aspect Ratio: %s\n", h.GetPixelRatio())
	gridWidth, gridHeight := h.GetGridSize()
	fmt.Fprintf(w, "Grid Size: %d x %d\n", gridWidth, gridHeight)
	fmt.Fprintf(w, "Layer Opacity: %s\n", opacityState(h))
	fmt.Fprintf(w, "Number of Frames: %d\n", doc.FrameCount)

	fmt.Fprintln(w)
	for i, f := range doc.Frames {
		fmt.Fprintf(w, "  frame %3d  %v  %d%% covered\n", i, f.Duration, coverage(f))
	}

	if len(doc.Tags) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tags:")
		for _, t := range doc.Tags {
			fmt.Fprintf(w, "  %-16s %3d-%-3d %-17s repeat %-11s %s\n", t.Name, t.From, t.To, t.Direction, t.Repeat, tagColor(t))
		}
	}

	if len(doc.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range doc.Warnings {
			fmt.Fprintf(w, "  %s\n", warn)
		}
	}
}

// coverage is the percentage of non-transparent pixels.
func coverage(f asemation.Frame) int {
	if len(f.Pixels) == 0 {
		return 0
	}
	n := 0
	for _, p := range f.Pixels {
		if p.A != 0 {
			n++
		}
	}
	return n * 100 / len(f.Pixels)
}

func opacityState(h asemation.Header) string {
	if h.IsLayerOpacityValid() {
		return "valid"
	}
	return "ignored"
}

func tagColor(t asemation.Tag) string {
	c, ok := colorful.MakeColor(t.Color)
	if !ok {
		return "-"
	}
	return c.Hex()
}

package asemation

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/retroblast-engine/asemation/internal/cursor"
)

// zlibHeaderSize is the CMF/FLG pair in front of the deflate stream of a
// compressed cel.
const zlibHeaderSize = 2

// celChunk (0x2005) determines where to put a cel in the specified layer/frame.
type celChunk struct {
	LayerIndex   WORD  // unused, only one layer is composited per cel
	XPosition    SHORT // may be negative
	YPosition    SHORT
	OpacityLevel BYTE // unused, opacity is baked into the pixel alpha
	CelType      CelDataType
	Width        WORD
	Height       WORD
	Data         []byte // pixel payload, aliases the file buffer
}

func (celChunk) chunkType() ChunkType { return ChunkCel }

// Cel is a decoded cel: premultiplied RGBA pixels placed at (X, Y) on the
// canvas.
type Cel struct {
	X, Y          int
	Width, Height int
	Pixels        []color.RGBA
}

func parseCel(c *cursor.Cursor) (celChunk, error) {
	var cel celChunk
	var err error
	if cel.LayerIndex, err = c.Word(); err != nil {
		return cel, err
	}
	if cel.XPosition, err = c.Short(); err != nil {
		return cel, err
	}
	if cel.YPosition, err = c.Short(); err != nil {
		return cel, err
	}
	if cel.OpacityLevel, err = c.Byte(); err != nil {
		return cel, err
	}
	t, err := c.Word()
	if err != nil {
		return cel, err
	}
	cel.CelType = CelDataType(t)
	// Z-index (2 bytes) and 5 reserved bytes
	if err = c.Skip(7); err != nil {
		return cel, err
	}
	if cel.CelType != RawImageData && cel.CelType != CompressedImageData {
		// Linked cels and tilemaps carry a different body.
		return cel, nil
	}
	if cel.Width, err = c.Word(); err != nil {
		return cel, err
	}
	if cel.Height, err = c.Word(); err != nil {
		return cel, err
	}
	cel.Data, err = c.Bytes(c.Len())
	return cel, err
}

// decode turns the chunk into a Cel. It touches nothing but the chunk.
func (ch celChunk) decode() (*Cel, error) {
	w, h := int(ch.Width), int(ch.Height)
	n := w * h * 4
	var raw []byte

	switch ch.CelType {
	case RawImageData:
		if len(ch.Data) < n {
			return nil, fmt.Errorf("%w: raw cel has %d bytes, want %d", ErrCorruptCelData, len(ch.Data), n)
		}
		raw = make([]byte, n)
		copy(raw, ch.Data)
	case CompressedImageData:
		var err error
		if raw, err = inflate(ch.Data, n); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: cel type %s", ErrUnsupportedFormat, ch.CelType)
	}

	cel := &Cel{
		X:      int(ch.XPosition),
		Y:      int(ch.YPosition),
		Width:  w,
		Height: h,
		Pixels: make([]color.RGBA, w*h),
	}
	for i := range cel.Pixels {
		cel.Pixels[i] = Premultiply(color.NRGBA{R: raw[i*4], G: raw[i*4+1], B: raw[i*4+2], A: raw[i*4+3]})
	}
	return cel, nil
}

// inflate decompresses exactly n bytes from a zlib-wrapped deflate stream.
// The adler32 trailer is not checked.
func inflate(data []byte, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if len(data) < zlibHeaderSize {
		return nil, fmt.Errorf("%w: %d byte payload", ErrCorruptCelData, len(data))
	}
	r := flate.NewReader(bytes.NewReader(data[zlibHeaderSize:]))
	defer r.Close()

	// Grow with the stream; n comes from the file and is not trusted.
	var out bytes.Buffer
	if _, err := out.ReadFrom(io.LimitReader(r, int64(n))); err != nil {
		return nil, fmt.Errorf("%w: inflate: %v", ErrCorruptCelData, err)
	}
	if out.Len() < n {
		return nil, fmt.Errorf("%w: inflated %d bytes, want %d", ErrCorruptCelData, out.Len(), n)
	}
	return out.Bytes(), nil
}

// Premultiply scales R, G and B by A/255, rounding down. A is kept.
func Premultiply(c color.NRGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}

// Composite overwrites dst, a width*height canvas, with the cel. Pixels
// falling outside the canvas are dropped.
func Composite(dst []color.RGBA, width, height int, cel *Cel) {
	x0, y0 := max(cel.X, 0), max(cel.Y, 0)
	x1, y1 := min(cel.X+cel.Width, width), min(cel.Y+cel.Height, height)
	if x0 >= x1 {
		return
	}
	for y := y0; y < y1; y++ {
		src := cel.Pixels[(y-cel.Y)*cel.Width+(x0-cel.X) : (y-cel.Y)*cel.Width+(x1-cel.X)]
		copy(dst[y*width+x0:y*width+x1], src)
	}
}

package asemation

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/retroblast-engine/asemation/internal/cursor"
)

// Header is the 128-byte file header.
type Header struct {
	FileSize       DWORD    // File size
	MagicNumber    WORD     // Magic number (0xA5E0)
	FrameCount     WORD     // Number of frames
	Width          WORD     // Width in pixels
	Height         WORD     // Height in pixels
	ColorDepth     WORD     // Color depth (32 bpp = RGBA, 16 bpp = Grayscale, 8 bpp = Indexed)
	Flags          DWORD    // 1 = Layer opacity has valid value
	Speed          WORD     // Deprecated, use the frame duration of each frame header
	_              [2]DWORD // Reserved (set to 0)
	TransparentIdx BYTE     // Palette entry which represents transparent color (only for Indexed sprites)
	_              [3]BYTE  // Ignore these bytes
	NumColors      WORD     // Number of colors (0 means 256 for old sprites format)
	PixelWidth     BYTE     // Pixel width (pixel ratio is "pixel width/pixel height")
	PixelHeight    BYTE     // Pixel height
	GridX          SHORT    // X position of the grid
	GridY          SHORT    // Y position of the grid
	GridWidth      WORD     // Grid width (zero if there is no grid)
	GridHeight     WORD     // Grid height (zero if there is no grid)
	_              [84]BYTE // For future use (set to zero)
}

func readHeader(c *cursor.Cursor) (Header, error) {
	var h Header
	raw, err := c.Bytes(headerSize)
	if err != nil {
		return h, err
	}
	err = binary.Read(bytes.NewReader(raw), binary.LittleEndian, &h)
	return h, err
}

// GetColorDepthDescription returns the color mode name.
func (h Header) GetColorDepthDescription() string {
	switch h.ColorDepth {
	case ColorDepthRGBA:
		return "RGBA"
	case ColorDepthGrayscale:
		return "Grayscale"
	case ColorDepthIndexed:
		return "Indexed"
	default:
		return "Unknown color depth"
	}
}

// IsLayerOpacityValid reports whether the layer opacity flag is set.
func (h Header) IsLayerOpacityValid() bool {
	return h.Flags&1 != 0
}

// GetNumColors returns the interpreted number of colors.
func (h Header) GetNumColors() int {
	if h.NumColors == 0 {
		return 256
	}
	return int(h.NumColors)
}

// GetPixelRatio returns the pixel aspect ratio as "w:h".
func (h Header) GetPixelRatio() string {
	if h.PixelWidth == 0 || h.PixelHeight == 0 {
		return "1:1"
	}
	return fmt.Sprintf("%d:%d", h.PixelWidth, h.PixelHeight)
}

// GetGridSize returns the grid size, defaulting to 16x16.
func (h Header) GetGridSize() (int, int) {
	w, ht := int(h.GridWidth), int(h.GridHeight)
	if w == 0 {
		w = 16
	}
	if ht == 0 {
		ht = 16
	}
	return w, ht
}

// FrameHeader is the 16-byte header in front of every frame.
type FrameHeader struct {
	BytesInFrame  DWORD   // Bytes in frame, header included
	MagicNumber   WORD    // Magic number (0xF1FA)
	OldChunkCount WORD    // 0xFFFF means more chunks than fit a WORD, see NewChunkCount
	FrameDuration WORD    // Frame duration in milliseconds
	_             [2]BYTE // Reserved (set to 0)
	NewChunkCount DWORD   // If this is 0, use OldChunkCount
}

func readFrameHeader(c *cursor.Cursor) (FrameHeader, error) {
	var fh FrameHeader
	raw, err := c.Bytes(frameHeaderSize)
	if err != nil {
		return fh, err
	}
	err = binary.Read(bytes.NewReader(raw), binary.LittleEndian, &fh)
	return fh, err
}

// NumberOfChunks returns the number of chunks in the frame.
func (fh FrameHeader) NumberOfChunks() int {
	if fh.OldChunkCount == 0xFFFF || fh.NewChunkCount != 0 {
		return int(fh.NewChunkCount)
	}
	return int(fh.OldChunkCount)
}

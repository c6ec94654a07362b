package asemation

import "fmt"

// Aseprite file format primitive types.
type (
	BYTE  = uint8  // An 8-bit unsigned integer value
	WORD  = uint16 // A 16-bit unsigned integer value
	SHORT = int16  // A 16-bit signed integer value
	DWORD = uint32 // A 32-bit unsigned integer value
)

const (
	// Magic number of the file header (0xA5E0)
	MagicNumber WORD = 0xA5E0
	// Magic number of every frame header (0xF1FA)
	MagicNumberFrame WORD = 0xF1FA

	// Color depth (bits per pixel)
	ColorDepthRGBA      WORD = 32
	ColorDepthGrayscale WORD = 16
	ColorDepthIndexed   WORD = 8

	headerSize      = 128
	frameHeaderSize = 16
	chunkHeaderSize = 6
)

// ChunkType identifies the body of a chunk.
type ChunkType WORD

const (
	ChunkCel  ChunkType = 0x2005
	ChunkTags ChunkType = 0x2018
)

// CelDataType represents the type of data in the cel.
type CelDataType WORD

const (
	RawImageData CelDataType = iota
	LinkedCelData
	CompressedImageData
	CompressedTilemapData
)

func (t CelDataType) String() string {
	switch t {
	case RawImageData:
		return "Raw Image"
	case LinkedCelData:
		return "Linked Cel"
	case CompressedImageData:
		return "Compressed Image"
	case CompressedTilemapData:
		return "Compressed Tilemap"
	}
	return "Unknown"
}

// LoopAnimationDirection is how a tag plays its frames.
type LoopAnimationDirection BYTE

const (
	Forward         LoopAnimationDirection = iota // 0 = forward
	Reverse                                       // 1 = reverse
	PingPong                                      // 2 = ping-pong
	PingPongReverse                               // 3 = ping-pong reverse
)

func (d LoopAnimationDirection) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	case PingPong:
		return "ping-pong"
	case PingPongReverse:
		return "ping-pong reverse"
	}
	return "unknown"
}

// RepeatTimes is how many times a tag repeats; 0 means unspecified.
type RepeatTimes WORD

const (
	Infinite RepeatTimes = iota // 0 = Doesn't specify (plays infinite in UI, once on export, for ping-pong it plays once in each direction)
	Once                        // 1 = Plays once (for ping-pong, it plays just in one direction)
	Twice                       // 2 = Plays twice (for ping-pong, it plays once in one direction, and once in reverse)
)

func (r RepeatTimes) String() string {
	switch r {
	case Infinite:
		return "unspecified"
	case Once:
		return "once"
	case Twice:
		return "twice"
	}
	return fmt.Sprintf("%d times", r)
}

package asemation

import (
	"errors"
	"fmt"

	"github.com/retroblast-engine/asemation/internal/cursor"
)

var (
	// ErrUnexpectedEndOfData means the data is shorter than a field or chunk
	// requires.
	ErrUnexpectedEndOfData = cursor.ErrUnexpectedEndOfData
	// ErrCorruptCelData means cel pixels failed to decompress or came out short.
	ErrCorruptCelData = errors.New("corrupt cel data")
	// ErrUnsupportedFormat means a color depth, cel type or file extension
	// the decoder does not handle.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrBadMagic is a magic number mismatch, fatal only with Options.StrictMagic.
	ErrBadMagic = errors.New("bad magic number")
	// ErrMalformedChunk is a frame or chunk whose declared size cannot hold
	// its own header.
	ErrMalformedChunk = errors.New("malformed chunk")
)

// DecodeError is the first fatal fault of a decode.
type DecodeError struct {
	Frame  int   // -1 for the file header
	Offset int64 // byte offset of the frame, chunk or field
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Frame < 0 {
		return fmt.Sprintf("aseprite: header at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("aseprite: frame %d at offset %d: %v", e.Frame, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WarningKind classifies a StructuralWarning.
type WarningKind int

const (
	WarnMagic WarningKind = iota
	WarnFileSize
	WarnTagBounds
	WarnSkippedCel
)

func (k WarningKind) String() string {
	switch k {
	case WarnMagic:
		return "magic"
	case WarnFileSize:
		return "file size"
	case WarnTagBounds:
		return "tag bounds"
	case WarnSkippedCel:
		return "skipped cel"
	}
	return "unknown"
}

// StructuralWarning is a non-fatal condition found while decoding.
type StructuralWarning struct {
	Kind   WarningKind
	Frame  int // -1 for the file header
	Offset int64
	Msg    string
}

func (w StructuralWarning) String() string {
	if w.Frame < 0 {
		return fmt.Sprintf("%s: %s (offset %d)", w.Kind, w.Msg, w.Offset)
	}
	return fmt.Sprintf("%s: frame %d: %s (offset %d)", w.Kind, w.Frame, w.Msg, w.Offset)
}

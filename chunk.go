package asemation

import (
	"fmt"

	"github.com/retroblast-engine/asemation/internal/cursor"
)

// chunk is one of celChunk, tagsChunk or unknownChunk.
type chunk interface {
	chunkType() ChunkType
}

// unknownChunk is any chunk this package does not interpret.
type unknownChunk struct {
	typ ChunkType
}

func (u unknownChunk) chunkType() ChunkType { return u.typ }

// readChunk reads the chunk at the cursor and leaves the cursor at the
// chunk's end. The body is parsed from a view bounded by the declared size,
// so a body that is shorter than its fields fails with
// ErrUnexpectedEndOfData instead of reading into the next chunk.
func readChunk(c *cursor.Cursor) (chunk, error) {
	size, err := c.DWord()
	if err != nil {
		return nil, err
	}
	if size < chunkHeaderSize {
		return nil, fmt.Errorf("%w: chunk size %d", ErrMalformedChunk, size)
	}
	typ, err := c.Word()
	if err != nil {
		return nil, err
	}
	body, err := c.Bytes(int(size) - chunkHeaderSize)
	if err != nil {
		return nil, err
	}

	switch t := ChunkType(typ); t {
	case ChunkCel:
		return parseCel(cursor.New(body))
	case ChunkTags:
		return parseTags(cursor.New(body))
	default:
		return unknownChunk{typ: t}, nil
	}
}

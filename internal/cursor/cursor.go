// Package cursor reads the little-endian primitives of the Aseprite file
// format (BYTE, WORD, SHORT, DWORD, LONG, STRING) from an in-memory buffer.
package cursor

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// ErrUnexpectedEndOfData is returned when a read, skip or seek needs more
// bytes than the buffer holds.
var ErrUnexpectedEndOfData = errors.New("unexpected end of data")

// Cursor is a position-tracked reader over a byte slice. A failed operation
// leaves the position unchanged.
type Cursor struct {
	data []byte
	pos  int64
}

// New returns a Cursor positioned at the start of data.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

func (c *Cursor) next(n int) ([]byte, error) {
	if n < 0 || int64(n) > int64(len(c.data))-c.pos {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, %d left", ErrUnexpectedEndOfData, n, c.pos, c.Len())
	}
	b := c.data[c.pos : c.pos+int64(n)]
	c.pos += int64(n)
	return b, nil
}

// Byte reads a BYTE.
func (c *Cursor) Byte() (byte, error) {
	b, err := c.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Word reads a WORD.
func (c *Cursor) Word() (uint16, error) {
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Short reads a SHORT.
func (c *Cursor) Short() (int16, error) {
	v, err := c.Word()
	return int16(v), err
}

// DWord reads a DWORD.
func (c *Cursor) DWord() (uint32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Long reads a LONG.
func (c *Cursor) Long() (int32, error) {
	v, err := c.DWord()
	return int32(v), err
}

// String reads a STRING: a WORD byte length followed by UTF-8 bytes.
// Invalid UTF-8 sequences are replaced with U+FFFD.
func (c *Cursor) String() (string, error) {
	start := c.pos
	n, err := c.Word()
	if err != nil {
		return "", err
	}
	raw, err := c.next(int(n))
	if err != nil {
		c.pos = start
		return "", err
	}
	s, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw), nil
	}
	return string(s), nil
}

// Bytes reads n bytes. The returned slice aliases the underlying buffer.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	return c.next(n)
}

// Skip advances the position by n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.next(n)
	return err
}

// Position returns the absolute offset from the start of the buffer.
func (c *Cursor) Position() int64 { return c.pos }

// Seek moves to an absolute offset. Seeking to the end is allowed, beyond it
// is not.
func (c *Cursor) Seek(pos int64) error {
	if pos < 0 || pos > int64(len(c.data)) {
		return fmt.Errorf("%w: seek to offset %d of %d", ErrUnexpectedEndOfData, pos, len(c.data))
	}
	c.pos = pos
	return nil
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int { return len(c.data) - int(c.pos) }

// Size returns the length of the underlying buffer.
func (c *Cursor) Size() int64 { return int64(len(c.data)) }

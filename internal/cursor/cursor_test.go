package cursor

import (
	"errors"
	"testing"
)

func TestCursorPrimitives(t *testing.T) {
	c := New([]byte{
		0x7f,       // BYTE
		0xe0, 0xa5, // WORD
		0xfe, 0xff, // SHORT -2
		0xfa, 0xf1, 0x00, 0x00, // DWORD
		0xff, 0xff, 0xff, 0xff, // LONG -1
		0x03, 0x00, 'r', 'u', 'n', // STRING
	})

	if b, err := c.Byte(); err != nil || b != 0x7f {
		t.Fatalf("byte: expected 0x7f, got %#x (%v)", b, err)
	}
	if w, err := c.Word(); err != nil || w != 0xa5e0 {
		t.Fatalf("word: expected 0xa5e0, got %#x (%v)", w, err)
	}
	if s, err := c.Short(); err != nil || s != -2 {
		t.Fatalf("short: expected -2, got %d (%v)", s, err)
	}
	if d, err := c.DWord(); err != nil || d != 0xf1fa {
		t.Fatalf("dword: expected 0xf1fa, got %#x (%v)", d, err)
	}
	if l, err := c.Long(); err != nil || l != -1 {
		t.Fatalf("long: expected -1, got %d (%v)", l, err)
	}
	if s, err := c.String(); err != nil || s != "run" {
		t.Fatalf("string: expected run, got %q (%v)", s, err)
	}
	if c.Len() != 0 || c.Position() != c.Size() {
		t.Fatalf("expected cursor at end, position %d of %d", c.Position(), c.Size())
	}
}

func TestCursorEndOfData(t *testing.T) {
	reads := map[string]func(c *Cursor) error{
		"byte":   func(c *Cursor) error { _, err := c.Byte(); return err },
		"word":   func(c *Cursor) error { _, err := c.Word(); return err },
		"short":  func(c *Cursor) error { _, err := c.Short(); return err },
		"dword":  func(c *Cursor) error { _, err := c.DWord(); return err },
		"long":   func(c *Cursor) error { _, err := c.Long(); return err },
		"bytes":  func(c *Cursor) error { _, err := c.Bytes(2); return err },
		"skip":   func(c *Cursor) error { return c.Skip(2) },
		"string": func(c *Cursor) error { _, err := c.String(); return err },
	}

	for name, read := range reads {
		c := New([]byte{0x05})
		if name != "byte" {
			if err := read(c); !errors.Is(err, ErrUnexpectedEndOfData) {
				t.Fatalf("%s: expected ErrUnexpectedEndOfData, got %v", name, err)
			}
			if c.Position() != 0 {
				t.Fatalf("%s: position moved to %d on failure", name, c.Position())
			}
			continue
		}
		if err := read(c); err != nil {
			t.Fatal(err)
		}
		if err := read(c); !errors.Is(err, ErrUnexpectedEndOfData) {
			t.Fatalf("%s: expected ErrUnexpectedEndOfData, got %v", name, err)
		}
	}
}

func TestCursorStringShortBody(t *testing.T) {
	c := New([]byte{0x04, 0x00, 'i', 'd'})
	if _, err := c.String(); !errors.Is(err, ErrUnexpectedEndOfData) {
		t.Fatalf("expected ErrUnexpectedEndOfData, got %v", err)
	}
	if c.Position() != 0 {
		t.Fatalf("expected position 0, got %d", c.Position())
	}
}

func TestCursorStringInvalidUTF8(t *testing.T) {
	c := New([]byte{0x02, 0x00, 'a', 0xff})
	s, err := c.String()
	if err != nil {
		t.Fatal(err)
	}
	if s != "a\ufffd" {
		t.Fatalf("expected replacement character, got %q", s)
	}
}

func TestCursorSeek(t *testing.T) {
	c := New([]byte{1, 2, 3, 4})
	if err := c.Seek(2); err != nil {
		t.Fatal(err)
	}
	if b, _ := c.Byte(); b != 3 {
		t.Fatalf("expected 3, got %d", b)
	}
	if err := c.Seek(4); err != nil {
		t.Fatalf("seek to end: %v", err)
	}
	if err := c.Seek(5); !errors.Is(err, ErrUnexpectedEndOfData) {
		t.Fatalf("expected ErrUnexpectedEndOfData, got %v", err)
	}
	if err := c.Seek(-1); !errors.Is(err, ErrUnexpectedEndOfData) {
		t.Fatalf("expected ErrUnexpectedEndOfData, got %v", err)
	}
	if c.Position() != 4 {
		t.Fatalf("expected position 4, got %d", c.Position())
	}
}

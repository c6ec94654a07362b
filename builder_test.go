package asemation

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"testing"
)

// le writes little-endian Aseprite primitives.
type le struct {
	bytes.Buffer
}

func (b *le) byte_(v uint8) { b.WriteByte(v) }
func (b *le) word(v uint16) { binary.Write(b, binary.LittleEndian, v) }
func (b *le) short(v int16) { binary.Write(b, binary.LittleEndian, v) }
func (b *le) dword(v uint32) { binary.Write(b, binary.LittleEndian, v) }
func (b *le) zeros(n int) { b.Write(make([]byte, n)) }
func (b *le) str(s string) { b.word(uint16(len(s))); b.WriteString(s) }
func (b *le) bytes_(p []byte) { b.Write(p) }

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func chunkBytes(typ uint16, body []byte) []byte {
	var b le
	b.dword(uint32(chunkHeaderSize + len(body)))
	b.word(typ)
	b.bytes_(body)
	return b.Bytes()
}

func celBody(celType CelDataType, x, y int16, w, h uint16, payload []byte) []byte {
	var b le
	b.word(0) // layer
	b.short(x)
	b.short(y)
	b.byte_(255)
	b.word(uint16(celType))
	b.zeros(7)
	b.word(w)
	b.word(h)
	b.bytes_(payload)
	return b.Bytes()
}

// celChunkBytes builds a compressed cel from straight (non-premultiplied)
// RGBA bytes.
func celChunkBytes(t *testing.T, x, y int16, w, h uint16, rgba []byte) []byte {
	t.Helper()
	return chunkBytes(uint16(ChunkCel), celBody(CompressedImageData, x, y, w, h, compress(t, rgba)))
}

type testTag struct {
	name     string
	from, to uint16
	dir      uint8
	repeat   uint16
	rgb      [3]byte
}

func tagsChunkBytes(tags ...testTag) []byte {
	var b le
	b.word(uint16(len(tags)))
	b.zeros(8)
	for _, tag := range tags {
		b.word(tag.from)
		b.word(tag.to)
		b.byte_(tag.dir)
		b.word(tag.repeat)
		b.zeros(6)
		b.bytes_(tag.rgb[:])
		b.zeros(1)
		b.str(tag.name)
	}
	return chunkBytes(uint16(ChunkTags), b.Bytes())
}

func frameBytes(duration uint16, chunks ...[]byte) []byte {
	var body []byte
	for _, c := range chunks {
		body = append(body, c...)
	}
	var b le
	b.dword(uint32(frameHeaderSize + len(body)))
	b.word(MagicNumberFrame)
	b.word(uint16(len(chunks)))
	b.word(duration)
	b.zeros(2)
	b.dword(0)
	b.bytes_(body)
	return b.Bytes()
}

func fileBytes(w, h uint16, frames ...[]byte) []byte {
	var body []byte
	for _, f := range frames {
		body = append(body, f...)
	}
	var b le
	b.dword(uint32(headerSize + len(body)))
	b.word(MagicNumber)
	b.word(uint16(len(frames)))
	b.word(w)
	b.word(h)
	b.word(ColorDepthRGBA)
	b.dword(1)  // flags
	b.word(100) // speed
	b.zeros(128 - b.Len())
	b.bytes_(body)
	return b.Bytes()
}

// solid returns n straight RGBA pixels of one color.
func solid(n int, r, g, b, a byte) []byte {
	out := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		out = append(out, r, g, b, a)
	}
	return out
}

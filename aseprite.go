// Package asemation decodes Aseprite (.ase/.aseprite) sprites into frames of
// premultiplied RGBA pixels and named tag ranges, ready for a renderer or a
// game engine to play back.
//
// Only RGBA sprites are supported. Every cel of a frame is copied onto the
// frame canvas in file order; layers are not blended.
//
// Format reference: https://github.com/aseprite/aseprite/blob/main/docs/ase-file-specs.md
package asemation

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/retroblast-engine/asemation/internal/cursor"
)

// Document is a decoded Aseprite file.
type Document struct {
	Header     Header
	Width      int
	Height     int
	FrameCount int // as declared in the header
	Frames     []Frame
	Tags       []Tag
	Warnings   []StructuralWarning
}

// Frame is one animation frame.
type Frame struct {
	Duration time.Duration
	// Pixels holds Width*Height premultiplied pixels, row-major from the
	// top-left corner.
	Pixels []color.RGBA
}

// DecodeFile decodes the .ase or .aseprite file at path.
func DecodeFile(path string, opts Options) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".aseprite" && ext != ".ase" {
		return nil, fmt.Errorf("%w: file type %q", ErrUnsupportedFormat, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data, opts)
}

// Decode reads r to the end and decodes it.
func Decode(r io.Reader, opts Options) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data, opts)
}

// DecodeBytes decodes a whole file held in memory. The returned Document does
// not reference data.
func DecodeBytes(data []byte, opts Options) (*Document, error) {
	d := &decoder{c: cursor.New(data), opts: opts}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.doc, nil
}

// pendingCel is a cel chunk waiting to be decoded and composited.
type pendingCel struct {
	frame  int
	offset int64
	chunk  celChunk
	cel    *Cel
	err    error
}

type decoder struct {
	c    *cursor.Cursor
	opts Options
	doc  *Document
	cels []pendingCel
}

func (d *decoder) warn(kind WarningKind, frame int, offset int64, format string, args ...any) {
	d.doc.Warnings = append(d.doc.Warnings, StructuralWarning{
		Kind:   kind,
		Frame:  frame,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	})
}

// decode reports the fault nearest the start of the file. Cels collected
// before a structural fault are decoded first, since one of them may fail
// at an earlier offset.
func (d *decoder) decode() error {
	if err := d.readHeader(); err != nil {
		return err
	}
	walkErr := d.readFrames()
	d.decodeCels()
	if err := d.checkCels(); err != nil {
		return err
	}
	if walkErr != nil {
		return walkErr
	}
	d.compositeCels()
	return nil
}

func (d *decoder) readFrames() error {
	for i := 0; i < d.doc.FrameCount; i++ {
		if err := d.readFrame(i); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readHeader() error {
	h, err := readHeader(d.c)
	if err != nil {
		return &DecodeError{Frame: -1, Offset: 0, Err: err}
	}
	d.doc = &Document{
		Header:     h,
		Width:      int(h.Width),
		Height:     int(h.Height),
		FrameCount: int(h.FrameCount),
		Frames:     make([]Frame, 0, h.FrameCount),
	}

	if h.MagicNumber != MagicNumber {
		if d.opts.StrictMagic {
			return &DecodeError{Frame: -1, Offset: 4, Err: fmt.Errorf("%w: header 0x%04X", ErrBadMagic, h.MagicNumber)}
		}
		d.warn(WarnMagic, -1, 4, "header magic 0x%04X, want 0x%04X", h.MagicNumber, MagicNumber)
	}
	if int64(h.FileSize) != d.c.Size() {
		d.warn(WarnFileSize, -1, 0, "header says %d bytes, got %d", h.FileSize, d.c.Size())
	}
	if h.ColorDepth != ColorDepthRGBA {
		if !d.opts.BestEffort {
			return &DecodeError{Frame: -1, Offset: 12, Err: fmt.Errorf("%w: color depth %d (%s)", ErrUnsupportedFormat, h.ColorDepth, h.GetColorDepthDescription())}
		}
		d.warn(WarnSkippedCel, -1, 12, "color depth %d is not RGBA, cels are skipped", h.ColorDepth)
	}
	return nil
}

func (d *decoder) readFrame(index int) error {
	start := d.c.Position()
	fail := func(offset int64, err error) error {
		return &DecodeError{Frame: index, Offset: offset, Err: err}
	}

	fh, err := readFrameHeader(d.c)
	if err != nil {
		return fail(start, err)
	}
	if fh.BytesInFrame < frameHeaderSize {
		return fail(start, fmt.Errorf("%w: frame size %d", ErrMalformedChunk, fh.BytesInFrame))
	}
	end := start + int64(fh.BytesInFrame)
	if fh.MagicNumber != MagicNumberFrame {
		if d.opts.StrictMagic {
			return fail(start+4, fmt.Errorf("%w: frame 0x%04X", ErrBadMagic, fh.MagicNumber))
		}
		d.warn(WarnMagic, index, start+4, "frame magic 0x%04X, want 0x%04X", fh.MagicNumber, MagicNumberFrame)
	}

	d.doc.Frames = append(d.doc.Frames, Frame{
		Duration: time.Duration(fh.FrameDuration) * time.Millisecond,
		Pixels:   make([]color.RGBA, d.doc.Width*d.doc.Height),
	})

	for i := 0; i < fh.NumberOfChunks(); i++ {
		offset := d.c.Position()
		ch, err := readChunk(d.c)
		if err != nil {
			return fail(offset, err)
		}
		switch ch := ch.(type) {
		case celChunk:
			d.addCel(index, offset, ch)
		case tagsChunk:
			d.addTags(index, offset, ch.Tags)
		case unknownChunk:
		}
	}

	if err := d.c.Seek(end); err != nil {
		return fail(start, err)
	}
	return nil
}

func (d *decoder) addCel(frame int, offset int64, ch celChunk) {
	if d.doc.Header.ColorDepth != ColorDepthRGBA {
		return
	}
	p := pendingCel{frame: frame, offset: offset, chunk: ch}
	if int(ch.Width) > d.doc.Width || int(ch.Height) > d.doc.Height {
		p.err = fmt.Errorf("%w: %dx%d cel on a %dx%d canvas", ErrCorruptCelData, ch.Width, ch.Height, d.doc.Width, d.doc.Height)
	}
	d.cels = append(d.cels, p)
}

func (d *decoder) addTags(frame int, offset int64, tags []Tag) {
	for _, tag := range tags {
		if !tag.inBounds(d.doc.FrameCount) {
			d.warn(WarnTagBounds, frame, offset, "tag %q spans frames %d-%d of %d", tag.Name, tag.From, tag.To, d.doc.FrameCount)
			if d.opts.TagBounds == TagsClamp {
				tag = tag.clamp(d.doc.FrameCount)
			}
		}
		d.doc.Tags = append(d.doc.Tags, tag)
	}
}

// decodeCels decompresses every pending cel. Cels do not depend on each
// other, so with Concurrency > 1 they are decoded in parallel.
func (d *decoder) decodeCels() {
	if d.opts.Concurrency < 2 {
		for i := range d.cels {
			if p := &d.cels[i]; p.err == nil {
				p.cel, p.err = p.chunk.decode()
			}
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(d.opts.Concurrency)
	for i := range d.cels {
		p := &d.cels[i]
		if p.err != nil {
			continue
		}
		g.Go(func() error {
			p.cel, p.err = p.chunk.decode()
			return nil
		})
	}
	// Errors are kept per cel so they can be reported in file order.
	_ = g.Wait()
}

// checkCels returns the first cel failure the options do not allow to be
// skipped, and records a warning for each skipped cel.
func (d *decoder) checkCels() error {
	for _, p := range d.cels {
		if p.err == nil {
			continue
		}
		skip := errors.Is(p.err, ErrCorruptCelData) && d.opts.SkipCorruptCels ||
			errors.Is(p.err, ErrUnsupportedFormat) && d.opts.BestEffort
		if !skip {
			return &DecodeError{Frame: p.frame, Offset: p.offset, Err: p.err}
		}
		d.warn(WarnSkippedCel, p.frame, p.offset, "%v", p.err)
	}
	return nil
}

// compositeCels copies cels onto their frames in file order, so a later cel
// overwrites an earlier one where they overlap.
func (d *decoder) compositeCels() {
	for _, p := range d.cels {
		if p.err == nil {
			Composite(d.doc.Frames[p.frame].Pixels, d.doc.Width, d.doc.Height, p.cel)
		}
	}
	d.cels = nil
}

// FrameImage copies frame i into an image.RGBA. image.RGBA is premultiplied
// as well, so the pixels are copied unchanged.
func (d *Document) FrameImage(i int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	for j, p := range d.Frames[i].Pixels {
		img.Pix[j*4+0] = p.R
		img.Pix[j*4+1] = p.G
		img.Pix[j*4+2] = p.B
		img.Pix[j*4+3] = p.A
	}
	return img
}

// Tag returns the first tag with the given name.
func (d *Document) Tag(name string) (Tag, bool) {
	for _, t := range d.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// decodeImage and decodeConfig let image.Decode read the first frame of a
// sprite.
func decodeImage(r io.Reader) (image.Image, error) {
	doc, err := Decode(r, Options{})
	if err != nil {
		return nil, err
	}
	if len(doc.Frames) == 0 {
		return image.NewRGBA(image.Rect(0, 0, doc.Width, doc.Height)), nil
	}
	return doc.FrameImage(0), nil
}

func decodeConfig(r io.Reader) (image.Config, error) {
	raw := make([]byte, headerSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return image.Config{}, err
	}
	h, err := readHeader(cursor.New(raw))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

func init() {
	image.RegisterFormat("aseprite", "????\xE0\xA5", decodeImage, decodeConfig)
}

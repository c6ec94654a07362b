package asemation

import (
	"fmt"
	"image/color"

	"github.com/retroblast-engine/asemation/internal/cursor"
)

// Tag is a named, inclusive range of frames.
type Tag struct {
	Name      string
	From, To  int // zero-based, inclusive
	Direction LoopAnimationDirection
	Repeat    RepeatTimes
	Color     color.RGBA // deprecated in newer files, set to zero
}

// tagsChunk (0x2018) lists every tag of the sprite.
type tagsChunk struct {
	Tags []Tag
}

func (tagsChunk) chunkType() ChunkType { return ChunkTags }

func parseTags(c *cursor.Cursor) (tagsChunk, error) {
	var chunk tagsChunk
	count, err := c.Word()
	if err != nil {
		return chunk, err
	}
	if err := c.Skip(8); err != nil {
		return chunk, err
	}

	for i := 0; i < int(count); i++ {
		tag, err := parseTag(c)
		if err != nil {
			return chunk, fmt.Errorf("tag %d: %w", i, err)
		}
		chunk.Tags = append(chunk.Tags, tag)
	}
	return chunk, nil
}

func parseTag(c *cursor.Cursor) (Tag, error) {
	var tag Tag
	from, err := c.Word()
	if err != nil {
		return tag, err
	}
	to, err := c.Word()
	if err != nil {
		return tag, err
	}
	dir, err := c.Byte()
	if err != nil {
		return tag, err
	}
	repeat, err := c.Word()
	if err != nil {
		return tag, err
	}
	if err := c.Skip(6); err != nil {
		return tag, err
	}
	rgb, err := c.Bytes(3)
	if err != nil {
		return tag, err
	}
	if err := c.Skip(1); err != nil {
		return tag, err
	}
	name, err := c.String()
	if err != nil {
		return tag, err
	}

	tag.Name = name
	tag.From, tag.To = int(from), int(to)
	tag.Direction = LoopAnimationDirection(dir)
	tag.Repeat = RepeatTimes(repeat)
	tag.Color = color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
	return tag, nil
}

// inBounds reports whether the tag range is usable for frameCount frames.
func (t Tag) inBounds(frameCount int) bool {
	return t.From >= 0 && t.From <= t.To && t.To < frameCount
}

// clamp forces the tag range into [0, frameCount-1] with From <= To.
func (t Tag) clamp(frameCount int) Tag {
	last := max(frameCount-1, 0)
	t.To = min(max(t.To, 0), last)
	t.From = min(max(t.From, 0), t.To)
	return t
}

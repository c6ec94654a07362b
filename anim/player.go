// Package anim plays the tags of a decoded sprite by elapsed time.
package anim

import (
	"errors"
	"fmt"
	"time"

	"github.com/retroblast-engine/asemation"
)

var ErrUnknownTag = errors.New("unknown tag")

// Player advances through the frames of one tag at a time. It never changes
// the Document it plays.
type Player struct {
	durations []time.Duration
	tags      []asemation.Tag

	tag     asemation.Tag
	index   int           // current frame, absolute
	elapsed time.Duration // time spent on the current frame
	loop    bool
}

// New returns a Player that loops over every frame of doc.
func New(doc *asemation.Document) *Player {
	p := &Player{
		durations: make([]time.Duration, len(doc.Frames)),
		tags:      doc.Tags,
	}
	for i, f := range doc.Frames {
		p.durations[i] = f.Duration
	}
	p.play(asemation.Tag{From: 0, To: len(doc.Frames) - 1}, true)
	return p
}

// SetAnimation starts the named tag from its first frame. An empty name plays
// the whole sprite. With loop false the last frame of the tag is held.
func (p *Player) SetAnimation(name string, loop bool) error {
	if name == "" {
		p.play(asemation.Tag{From: 0, To: len(p.durations) - 1}, loop)
		return nil
	}
	for _, t := range p.tags {
		if t.Name == name {
			p.play(t, loop)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTag, name)
}

// play clamps the tag to the frames that exist, since tag bounds are stored
// as the file declares them.
func (p *Player) play(t asemation.Tag, loop bool) {
	last := len(p.durations) - 1
	t.To = min(max(t.To, 0), max(last, 0))
	t.From = min(max(t.From, 0), t.To)
	p.tag = t
	p.index = t.From
	p.elapsed = 0
	p.loop = loop
}

// IsPlaying reports whether the named tag is the current animation.
func (p *Player) IsPlaying(name string) bool {
	return p.tag.Name == name
}

// Tag returns the current tag, with its bounds clamped to the sprite.
func (p *Player) Tag() asemation.Tag { return p.tag }

// Frame returns the index of the frame to display, or -1 for a sprite
// without frames.
func (p *Player) Frame() int {
	if len(p.durations) == 0 {
		return -1
	}
	return p.index
}

// Done reports whether a non-looping animation is holding its last frame.
func (p *Player) Done() bool {
	return !p.loop && p.index == p.tag.To
}

// Update adds dt to the time spent on the current frame and advances as many
// frames as that time covers. A zero-duration frame advances one frame per
// call. It reports whether the displayed frame changed.
func (p *Player) Update(dt time.Duration) bool {
	if len(p.durations) == 0 || p.Done() {
		return false
	}
	start := p.index
	p.elapsed += dt
	for {
		d := p.durations[p.index]
		if p.elapsed < d {
			break
		}
		p.elapsed -= d
		p.advance()
		if d == 0 || p.Done() {
			break
		}
	}
	if p.Done() {
		p.elapsed = 0
	}
	return p.index != start
}

func (p *Player) advance() {
	if p.index < p.tag.To {
		p.index++
		return
	}
	if p.loop {
		p.index = p.tag.From
	}
}

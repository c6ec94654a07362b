// Package ebitenanim draws decoded sprites with Ebitengine.
package ebitenanim

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/retroblast-engine/asemation"
	"github.com/retroblast-engine/asemation/anim"
)

// Sprites holds one ebiten.Image per frame and the one currently shown.
type Sprites struct {
	Current *ebiten.Image
	All     []*ebiten.Image

	player *anim.Player
}

// New uploads every frame of doc. Frame pixels are premultiplied, which is
// what ebiten expects from an image.RGBA.
func New(doc *asemation.Document) *Sprites {
	s := &Sprites{
		All:    make([]*ebiten.Image, len(doc.Frames)),
		player: anim.New(doc),
	}
	for i := range doc.Frames {
		s.All[i] = ebiten.NewImageFromImage(doc.FrameImage(i))
	}
	s.sync()
	return s
}

// SetAnimation switches to the named tag unless it is already playing.
func (s *Sprites) SetAnimation(name string, loop bool) error {
	if s.player.IsPlaying(name) {
		return nil
	}
	if err := s.player.SetAnimation(name, loop); err != nil {
		return err
	}
	s.sync()
	return nil
}

// Update advances the animation by dt. Call it from ebiten.Game.Update with
// time.Second / time.Duration(ebiten.TPS()).
func (s *Sprites) Update(dt time.Duration) {
	if s.player.Update(dt) {
		s.sync()
	}
}

// Draw draws the current frame at (x, y).
func (s *Sprites) Draw(screen *ebiten.Image, x, y float64) {
	if s.Current == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(s.Current, op)
}

func (s *Sprites) sync() {
	if i := s.player.Frame(); i >= 0 {
		s.Current = s.All[i]
	}
}

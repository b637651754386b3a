package metrics

import (
	"github.com/san-kum/flingsim/internal/board"
)

// Stability is the fraction of frames in which every free ball moves slower
// than threshold.
type Stability struct {
	name       string
	threshold  float64
	fastFrames int
	frames     int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) OnFrame(b *board.Board, t float64) {
	s.frames++
	fast := false
	free(b, func(ball *board.Ball) {
		if ball.Velocity().Length() > s.threshold {
			fast = true
		}
	})
	if fast {
		s.fastFrames++
	}
}

func (s *Stability) Value() float64 {
	if s.frames == 0 {
		return 1.0
	}
	return 1.0 - float64(s.fastFrames)/float64(s.frames)
}

func (s *Stability) Reset() {
	s.fastFrames = 0
	s.frames = 0
}

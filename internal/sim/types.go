package sim

import "github.com/san-kum/flingsim/internal/board"

// Observer is notified after every frame.
type Observer interface {
	OnFrame(b *board.Board, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.04,
		Duration: 10.0,
	}
}

type Result struct {
	Frames     int
	Time       float64
	Collisions int
	Absorbed   int
}

// Sample is one ball's state at the end of a frame.
type Sample struct {
	Time     float64 `json:"time"`
	Ball     string  `json:"ball"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Absorbed bool    `json:"absorbed"`
}

// Recorder keeps a Sample per ball per frame.
type Recorder struct {
	samples []Sample
}

func NewRecorder() *Recorder {
	return &Recorder{samples: make([]Sample, 0, 256)}
}

func (r *Recorder) OnFrame(b *board.Board, t float64) {
	for _, ball := range b.Balls() {
		p, v := ball.Location(), ball.Velocity()
		r.samples = append(r.samples, Sample{
			Time:     t,
			Ball:     ball.Name(),
			X:        p.X,
			Y:        p.Y,
			VX:       v.X,
			VY:       v.Y,
			Absorbed: ball.Absorbed(),
		})
	}
}

func (r *Recorder) Samples() []Sample { return r.samples }

func (r *Recorder) Reset() { r.samples = r.samples[:0] }

// Series returns the height of the named ball over time, measured upwards
// from the bottom of the board.
func Series(samples []Sample, ball string) []float64 {
	var out []float64
	for _, s := range samples {
		if s.Ball == ball {
			out = append(out, board.Size-s.Y)
		}
	}
	return out
}

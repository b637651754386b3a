package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/flingsim/internal/board"
	"github.com/san-kum/flingsim/internal/sim"
)

// MaxFrameDt caps the step taken for a single frame, so a stalled terminal
// does not fling balls through the board in one jump.
const MaxFrameDt = 0.1

type TickMsg time.Time

// Factory builds a fresh board. The live model calls it again on reset.
type Factory func() (*board.Board, error)

// LiveModel animates a board, advancing it by the wall-clock time since the
// previous frame.
type LiveModel struct {
	factory  Factory
	sim      *sim.Simulator
	renderer *Renderer
	fps      int
	running  bool
	last     time.Time
	theme    Theme
	err      error
}

func NewLiveModel(factory Factory, fps int) (LiveModel, error) {
	b, err := factory()
	if err != nil {
		return LiveModel{}, err
	}
	if fps <= 0 {
		fps = 25
	}
	return LiveModel{
		factory:  factory,
		sim:      sim.New(b),
		renderer: NewRenderer(),
		fps:      fps,
		running:  true,
		theme:    ThemeArcade,
	}, nil
}

// Simulator exposes the running simulation.
func (m LiveModel) Simulator() *sim.Simulator { return m.sim }

func (m LiveModel) Running() bool { return m.running }

func (m LiveModel) Err() error { return m.err }

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			m.last = time.Time{}
		case "r":
			m.reset()
		case "t":
			m.theme = m.theme.next()
		}
	case TickMsg:
		now := time.Time(msg)
		if m.running {
			if !m.last.IsZero() {
				dt := now.Sub(m.last).Seconds()
				if dt > MaxFrameDt {
					dt = MaxFrameDt
				}
				m.sim.Frame(dt)
			}
			m.last = now
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *LiveModel) reset() {
	b, err := m.factory()
	if err != nil {
		m.err = err
		return
	}
	m.sim = sim.New(b)
	m.last = time.Time{}
	m.err = nil
}

func (m LiveModel) View() string {
	st := newStyles(m.theme)
	b := m.sim.Board()
	stepper := m.sim.Stepper()

	status := st.status.Render("RUNNING")
	if !m.running {
		status = st.paused.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(st.title.Render(strings.ToUpper(b.Name())))
	s.WriteString(fmt.Sprintf("  %s  t=%.2fs\n", status, stepper.Now()))

	boardView := st.panel.Render(m.renderer.Draw(b).Render(Palette(m.theme)))
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boardView, "  ", m.ballTable(st, b)))
	s.WriteString("\n")

	if m.err != nil {
		s.WriteString(st.paused.Render("reset failed: "+m.err.Error()) + "\n")
	}
	s.WriteString(st.help.Render("space pause • r reset • t theme • q quit"))
	return s.String()
}

func (m LiveModel) ballTable(st styles, b *board.Board) string {
	var s strings.Builder
	stats := m.sim.Stepper().Stats()
	s.WriteString(st.label.Render("gravity") + st.value.Render(fmt.Sprintf("%.3g", b.Gravity())) + "\n")
	s.WriteString(st.label.Render("friction") + st.value.Render(fmt.Sprintf("%.3g / %.3g", b.Friction1(), b.Friction2())) + "\n")
	s.WriteString(st.label.Render("frames") + st.value.Render(fmt.Sprintf("%d", stats.Frames)) + "\n")
	s.WriteString(st.label.Render("hits") + st.value.Render(fmt.Sprintf("%d", stats.Collisions)) + "\n\n")

	for _, ball := range b.Balls() {
		p, v := ball.Location(), ball.Velocity()
		state := fmt.Sprintf("(%5.2f, %5.2f) v=(%6.2f, %6.2f)", p.X, p.Y, v.X, v.Y)
		if ball.Absorbed() {
			state = "absorbed"
		}
		s.WriteString(st.label.Render(ball.Name()) + st.value.Render(state) + "\n")
	}
	return s.String()
}

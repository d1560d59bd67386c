package viz

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/meshview/internal/config"
	"github.com/san-kum/meshview/internal/mesh"
	"github.com/san-kum/meshview/internal/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	panelWidth    = 42
	chromeRows    = 7
	frameRate     = 30
)

type TickMsg time.Time

// dispatchMsg carries a function from the worker onto the Update goroutine.
type dispatchMsg func()

// Snapshotter writes the current mesh somewhere and returns a description
// for the status line.
type Snapshotter func(s *session.Session) (string, error)

// Model is the terminal front-end: a braille canvas of the mesh above a row
// of Run/Pause/Quit buttons, with a stats panel on the right.
type Model struct {
	sess   *session.Session
	cfg    *config.Config
	theme  Theme
	styles styles

	canvas        *Canvas
	width, height int
	dirty         *atomic.Bool

	showGraph bool
	showHelp  bool
	status    string
	snapshot  Snapshotter
}

func NewModel(sess *session.Session, cfg *config.Config, snap Snapshotter) Model {
	theme := GetTheme(cfg.Theme)
	m := Model{
		sess:      sess,
		cfg:       cfg,
		theme:     theme,
		styles:    newStyles(theme),
		width:     defaultWidth,
		height:    defaultHeight,
		dirty:     &atomic.Bool{},
		showGraph: cfg.ShowGraph,
		snapshot:  snap,
	}
	m.resize()
	m.dirty.Store(true)
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if m.cfg.Autostart {
		cmds = append(cmds, func() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} })
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and repaints when the worker changed the mesh.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.dirty.Store(true)
	case dispatchMsg:
		msg()
		m.dirty.Store(true)
	case TickMsg:
		if m.dirty.Swap(false) {
			m.draw()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	ctrl := m.sess.Controller
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		log.Printf("session %s: quit in state %s", m.sess.ID, ctrl.State())
		m.sess.Quit()
		return m, tea.Quit
	case "enter":
		ctrl.Press()
	case "r":
		ctrl.Run()
	case "p":
		ctrl.Pause()
	case " ":
		if ctrl.State() == session.Running {
			ctrl.Pause()
		} else {
			ctrl.Run()
		}
	case "g":
		m.showGraph = !m.showGraph
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case "s":
		m.status = m.takeSnapshot()
	case "?":
		m.showHelp = !m.showHelp
	}
	m.dirty.Store(true)
	return m, nil
}

func (m Model) takeSnapshot() string {
	if m.snapshot == nil {
		return "snapshots disabled"
	}
	where, err := m.snapshot(m.sess)
	if err != nil {
		log.Printf("session %s: snapshot: %v", m.sess.ID, err)
		return "snapshot failed: " + err.Error()
	}
	return "saved " + where
}

// resize fits a square canvas into the terminal beside the stats panel.
func (m *Model) resize() {
	cols := m.width - panelWidth - 4
	rows := m.height - chromeRows
	if cols < 4 {
		cols = 4
	}
	if rows < 2 {
		rows = 2
	}
	side := cols * 2
	if rows*4 < side {
		side = rows * 4
	}
	m.canvas = NewCanvas(side/2, side/4)
}

// draw rasterizes the edge set onto the canvas. The set's lock is held for
// the whole pass.
func (m *Model) draw() {
	m.canvas.Clear()
	side := m.canvas.SubWidth()
	if h := m.canvas.SubHeight(); h < side {
		side = h
	}
	border := 1
	proj, err := m.sess.Projection(side-1-2*border, border)
	if err != nil {
		return
	}
	radius := 0
	if m.cfg.DotSize >= 4 {
		radius = 1
	}
	m.sess.Edges.Each(func(e mesh.Edge) {
		x0, y0, x1, y1 := proj.Segment(e)
		m.canvas.DrawLine(x0, y0, x1, y1)
		if m.cfg.DotSize > 0 {
			m.canvas.DrawDot(x0, y0, radius)
			m.canvas.DrawDot(x1, y1, radius)
		}
	})
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.styles
	canvasView := st.canvas.Render(m.canvas.Render(st.edge, st.dot))

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.title())) + "\n")
	s.WriteString(st.subtle.Render("session "+shortID(m.sess.ID)) + "\n\n")
	s.WriteString(m.statusLine() + "\n\n")

	sum := m.sess.Stats.Summary()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%.3f", m.sess.Elapsed().Seconds()))
	row("edges", fmt.Sprintf("%d (peak %d)", sum.Edges, sum.PeakEdges))
	row("commands", fmt.Sprintf("%d", sum.Commands))
	row("inserts", fmt.Sprintf("%d", sum.Inserts))
	row("removes", fmt.Sprintf("%d", sum.Removes))
	row("hesitation", m.sess.Gate.Hesitation().String())
	if sum.NoopRemoves > 0 {
		row("no-op removes", fmt.Sprintf("%d", sum.NoopRemoves))
	}
	if sum.OutOfBounds > 0 {
		row("out of bounds", fmt.Sprintf("%d", sum.OutOfBounds))
	}

	if m.showGraph {
		if hist := m.sess.Stats.History(); len(hist) > 1 {
			chart := asciigraph.Plot(hist, asciigraph.Height(5), asciigraph.Width(panelWidth-14), asciigraph.Caption("edges"))
			s.WriteString(st.graph.Render(chart) + "\n")
		}
	}
	if m.status != "" {
		s.WriteString("\n" + st.subtle.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render("\n" + st.Separator(panelWidth-6) + "\nEnter:Default R:Run P:Pause Q:Quit\nG:Graph T:Theme S:Snapshot ?:Help"))

	statsView := st.stats.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	view := lipgloss.JoinVertical(lipgloss.Left, mainView, m.buttons())
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Enter    - Press default button     ║
║  R        - Run / resume             ║
║  P        - Pause                    ║
║  Space    - Toggle run and pause     ║
║  Q / Esc  - Quit                     ║
║  G        - Toggle edge-count graph  ║
║  T        - Cycle themes             ║
║  S        - Save SVG snapshot        ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

func (m Model) title() string {
	if m.sess.Header.Title == "" {
		return "meshview"
	}
	return m.sess.Header.Title
}

func (m Model) statusLine() string {
	st := m.styles
	if err := m.sess.Err(); err != nil {
		return st.failed.Render("FAILED") + " " + st.subtle.Render(err.Error())
	}
	if m.sess.Controller.Finished() {
		return st.running.Render("DONE")
	}
	switch m.sess.Controller.State() {
	case session.Running:
		return st.running.Render("RUNNING")
	case session.Paused:
		return st.paused.Render("PAUSED")
	}
	return st.subtle.Render("STOPPED")
}

func (m Model) buttons() string {
	def := m.sess.Controller.Default()
	render := func(a session.Action) string {
		if a == def {
			return m.styles.defaultBtn.Render(a.String())
		}
		return m.styles.button.Render(a.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		render(session.ActionRun), " ",
		render(session.ActionPause), " ",
		render(session.ActionQuit))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// teaObserver forwards worker requests into a running program.
type teaObserver struct {
	prog  *tea.Program
	dirty *atomic.Bool
}

func (o teaObserver) Dispatch(fn func()) { o.prog.Send(dispatchMsg(fn)) }
func (o teaObserver) Redraw()            { o.dirty.Store(true) }

// Run shows sess in the terminal until the user quits.
func Run(sess *session.Session, cfg *config.Config, snap Snapshotter) error {
	m := NewModel(sess, cfg, snap)
	// stdin carries the mesh stream, so keys come from the controlling tty
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInputTTY())
	sess.Attach(teaObserver{prog: p, dirty: m.dirty})
	_, err := p.Run()
	return err
}

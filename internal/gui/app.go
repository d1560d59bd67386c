package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/meshview/internal/config"
	"github.com/san-kum/meshview/internal/mesh"
	"github.com/san-kum/meshview/internal/session"
)

var (
	ColBg      = rl.White
	ColEdge    = rl.Black
	ColDot     = rl.Blue
	ColBar     = rl.NewColor(235, 235, 235, 255)
	ColButton  = rl.NewColor(210, 210, 210, 255)
	ColDefault = rl.NewColor(120, 160, 230, 255)
	ColText    = rl.NewColor(30, 30, 30, 255)
	ColError   = rl.Red
)

// App is the graphical front-end: a square canvas of the mesh with a bar of
// Run/Pause/Quit buttons and the time label underneath.
type App struct {
	sess   *session.Session
	cfg    *config.Config
	proj   mesh.Projection
	layout Layout
	q      *queue
	open   bool
}

func NewApp(sess *session.Session, cfg *config.Config) (*App, error) {
	proj, err := sess.Projection(cfg.Pixels, cfg.Border())
	if err != nil {
		return nil, err
	}
	w, h := proj.Outer()
	a := &App{
		sess:   sess,
		cfg:    cfg,
		proj:   proj,
		layout: NewLayout(w, h),
		q:      &queue{},
		open:   true,
	}
	sess.Attach(a.q)
	return a, nil
}

// Size is the window size: the canvas plus the button bar.
func (a *App) Size() (int, int) { return a.layout.WindowSize() }

// Run opens the window and blocks until it is closed or Quit is pressed.
func Run(sess *session.Session, cfg *config.Config) error {
	a, err := NewApp(sess, cfg)
	if err != nil {
		return err
	}

	w, h := a.Size()
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(w), int32(h), a.title())
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)
	rl.SetExitKey(0)

	if cfg.Autostart {
		a.press()
	}
	a.RunLoop()
	sess.Quit()
	return nil
}

func (a *App) RunLoop() {
	for a.open && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) title() string {
	if a.sess.Header.Title == "" {
		return "meshview"
	}
	return a.sess.Header.Title
}

func (a *App) press() {
	act := a.sess.Controller.Default()
	if act == session.ActionNone {
		return
	}
	log.Printf("session %s: default %s", a.sess.ID, act)
	a.open = apply(a.sess, act)
}

func (a *App) Update() {
	a.q.drain()

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		a.press()
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		a.open = apply(a.sess, session.ActionQuit)
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		pos := rl.GetMousePosition()
		if act := a.layout.ButtonAt(int(pos.X), int(pos.Y)); act != session.ActionNone {
			log.Printf("session %s: %s", a.sess.ID, act)
			a.open = apply(a.sess, act)
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.drawMesh()
	a.drawBar()
	rl.EndDrawing()
}

func (a *App) drawMesh() {
	r := float32(a.cfg.DotSize) / 2
	w, h := a.layout.CanvasW, a.layout.CanvasH
	a.sess.Edges.Each(func(e mesh.Edge) {
		x0, y0, x1, y1 := a.proj.Segment(e)
		if cx0, cy0, cx1, cy1, ok := mesh.ClipSegment(x0, y0, x1, y1, w, h); ok {
			rl.DrawLine(int32(cx0), int32(cy0), int32(cx1), int32(cy1), ColEdge)
		}
		if r > 0 {
			drawDot(x0, y0, w, h, r)
			drawDot(x1, y1, w, h, r)
		}
	})
}

// drawDot skips dots entirely off the canvas; their coordinates may not fit
// in int32.
func drawDot(x, y, w, h int, r float32) {
	pad := int(r) + 1
	if x < -pad || y < -pad || x > w+pad || y > h+pad {
		return
	}
	rl.DrawCircle(int32(x), int32(y), r, ColDot)
}

func (a *App) drawBar() {
	l := a.layout
	rl.DrawRectangle(0, int32(l.CanvasH), int32(l.CanvasW), barHeight, ColBar)

	def := a.sess.Controller.Default()
	for _, b := range l.Buttons {
		col := ColButton
		if b.Action == def {
			col = ColDefault
		}
		rl.DrawRectangle(int32(b.X), int32(b.Y), int32(b.W), int32(b.H), col)
		rl.DrawRectangleLines(int32(b.X), int32(b.Y), int32(b.W), int32(b.H), ColText)
		label := b.Action.String()
		tw := rl.MeasureText(label, fontSize)
		rl.DrawText(label, int32(b.X)+(int32(b.W)-tw)/2, int32(b.Y)+(int32(b.H)-fontSize)/2, fontSize, ColText)
	}

	text := fmt.Sprintf("time: %.3f", a.sess.Elapsed().Seconds())
	col := ColText
	if err := a.sess.Err(); err != nil {
		text = err.Error()
		col = ColError
	}
	rl.DrawText(text, int32(l.LabelX), int32(l.LabelY), fontSize, col)
}

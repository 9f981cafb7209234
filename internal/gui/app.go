// Package gui is the window viewer. Frames are rendered on a background
// goroutine and uploaded to a texture by the window loop.
package gui

import (
	"context"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/mandel/internal/compute"
	"github.com/san-kum/mandel/internal/frame"
	"github.com/san-kum/mandel/internal/logging"
	"github.com/san-kum/mandel/internal/view"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(230, 230, 230, 255)
	ColTextDim = rl.NewColor(150, 150, 150, 255)
	ColPanel   = rl.NewColor(0, 0, 0, 160)
)

// keyNames maps window keys onto the key names view.ParseCommand knows.
var keyNames = map[int32]string{
	rl.KeyW:          "w",
	rl.KeyA:          "a",
	rl.KeyS:          "s",
	rl.KeyD:          "d",
	rl.KeyUp:         "up",
	rl.KeyDown:       "down",
	rl.KeyLeft:       "left",
	rl.KeyRight:      "right",
	rl.KeyE:          "e",
	rl.KeyEqual:      "=",
	rl.KeyKpAdd:      "+",
	rl.KeyQ:          "q",
	rl.KeyMinus:      "-",
	rl.KeyKpSubtract: "-",
	rl.KeyR:          "r",
	rl.KeyEscape:     "esc",
}

type Options struct {
	// Scale is the integer upscaling of the frame in the window.
	Scale int
	Title string
}

type result struct {
	frame *frame.Frame
	err   error
}

type App struct {
	backend compute.Backend
	opts    Options

	tex    rl.Texture2D
	rgba   []rl.Color
	width  int
	height int

	wake    chan struct{}
	results chan result

	seq     uint64
	elapsed time.Duration
	err     error
	showHUD bool
}

func NewApp(b compute.Backend, opts Options) *App {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.Title == "" {
		opts.Title = "mandel"
	}
	w, h := b.Size()
	return &App{
		backend: b,
		opts:    opts,
		rgba:    make([]rl.Color, w*h),
		width:   w,
		height:  h,
		wake:    make(chan struct{}, 1),
		results: make(chan result, 1),
		showHUD: true,
	}
}

func (a *App) initWindow() {
	rl.InitWindow(int32(a.width*a.opts.Scale), int32(a.height*a.opts.Scale), a.opts.Title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	img := rl.GenImageColor(a.width, a.height, rl.Black)
	a.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
}

// kick asks the render goroutine for a pass without blocking.
func (a *App) kick() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *App) renderLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.wake:
		}
		f, ok, err := a.backend.Redraw(ctx)
		if !ok && err == nil {
			continue
		}
		select {
		case a.results <- result{frame: f, err: err}:
		case <-ctx.Done():
			if f != nil {
				f.Release()
			}
			return
		}
	}
}

// Run opens the window and blocks until it is closed or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.initWindow()
	defer rl.CloseWindow()
	defer rl.UnloadTexture(a.tex)

	logging.Logger().Info("window viewer started",
		"backend", a.backend.Name(),
		"size", fmt.Sprintf("%dx%d", a.width, a.height),
		"scale", a.opts.Scale)

	go a.renderLoop(ctx)
	a.kick()

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if quit := a.Update(); quit {
			break
		}
		a.collect()
		a.Draw()
	}
	return nil
}

// Update applies the keys pressed this frame. It reports true on quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}
	for key, name := range keyNames {
		if !rl.IsKeyPressed(key) {
			continue
		}
		cmd, _ := view.ParseCommand(name)
		if cmd == view.Quit {
			return true
		}
		a.err = a.backend.Apply(cmd)
	}
	if a.backend.Dirty() {
		a.kick()
	}
	return false
}

// collect uploads a finished frame, if any.
func (a *App) collect() {
	select {
	case r := <-a.results:
		if r.err != nil {
			logging.Logger().Warn("render failed", "err", r.err)
			a.err = r.err
			return
		}
		r.frame.FillRGBA(a.rgba)
		rl.UpdateTexture(a.tex, a.rgba)
		a.seq = r.frame.Seq
		a.elapsed = r.frame.Elapsed
		r.frame.Release()
	default:
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	rl.DrawTextureEx(a.tex, rl.NewVector2(0, 0), 0, float32(a.opts.Scale), rl.White)
	if a.showHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	snap := a.backend.View()
	w := int32(a.width * a.opts.Scale)
	h := int32(a.height * a.opts.Scale)

	rl.DrawRectangle(0, 0, w, 44, ColPanel)
	rl.DrawText(fmt.Sprintf("re %s", snap.CenterRe), 6, 4, 10, ColText)
	rl.DrawText(fmt.Sprintf("im %s", snap.CenterIm), 6, 17, 10, ColText)
	rl.DrawText(fmt.Sprintf("zoom %s", snap.Zoom), 6, 30, 10, ColText)

	status := fmt.Sprintf("%s #%d %s %d FPS", a.backend.Name(), a.seq, a.elapsed.Round(time.Millisecond), rl.GetFPS())
	if a.err != nil {
		status = a.err.Error()
	}
	rl.DrawRectangle(0, h-28, w, 28, ColPanel)
	rl.DrawText(status, 6, h-26, 10, ColTextDim)
	rl.DrawText(view.KeyHelp+"  [H] HUD", 6, h-13, 10, ColTextDim)
}

// Run shows b in a window until the user quits.
func Run(ctx context.Context, b compute.Backend, opts Options) error {
	return NewApp(b, opts).Run(ctx)
}

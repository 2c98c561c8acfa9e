// Package window hosts a runner session in a desktop window or, built
// for js/wasm, in a browser canvas.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/vovakirdan/runner-arcade/internal/config"
	"github.com/vovakirdan/runner-arcade/internal/core"
	"github.com/vovakirdan/runner-arcade/internal/engine"
	"github.com/vovakirdan/runner-arcade/internal/platform/live"
)

// Default scene size in pixels; one scene unit is one pixel.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

var (
	skyColor         = colornames.Lightskyblue
	groundColor      = colornames.Sienna
	playerColor      = colornames.Royalblue
	obstacleColor    = colornames.Crimson
	collectibleColor = colornames.Gold
	overlayColor     = color.RGBA{A: 0x80}
)

// Options configures the window host.
type Options struct {
	Variant    string
	Title      string
	ConfigPath string
	Preset     config.DifficultyPreset
	Width      int
	Height     int
	Watch      bool
	Logger     *log.Logger
}

// Game implements ebiten.Game over a live controller.
type Game struct {
	ctrl   *live.Controller
	field  engine.Playfield
	logger *log.Logger
	start  time.Time
	snap   engine.Snapshot
}

// NewGame builds the controller for opts.
func NewGame(opts Options) (*Game, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultWidth, DefaultHeight
	}
	field := engine.Playfield{Width: float64(opts.Width), Height: float64(opts.Height)}

	ctrl, err := live.New(live.Options{
		Variant:    opts.Variant,
		ConfigPath: opts.ConfigPath,
		Preset:     opts.Preset,
		Field:      field,
		Logger:     opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	if opts.Watch {
		if err := ctrl.Watch(); err != nil {
			ctrl.Close()
			return nil, err
		}
	}

	return &Game{
		ctrl:   ctrl,
		field:  field,
		logger: opts.Logger,
		snap:   ctrl.Snapshot(),
	}, nil
}

// Update advances the session by the wall time elapsed since the first frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.start.IsZero() {
		g.start = time.Now()
	}

	snap, err := g.ctrl.Tick(time.Since(g.start), primaryPressed())
	if err != nil {
		return err
	}
	g.snap = snap
	return nil
}

// primaryPressed reports a fresh space, arrow, click, tap or gamepad press.
func primaryPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		return true
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			return true
		}
	}
	return false
}

// Draw paints the scene, the HUD and any state banner.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)

	for _, c := range g.snap.Collectibles {
		fillBox(screen, c.Box, collectibleColor)
	}
	for _, o := range g.snap.Obstacles {
		fillBox(screen, o.Box, obstacleColor)
	}
	fillBox(screen, g.snap.Player, playerColor)

	floor := float32(g.field.Floor())
	vector.DrawFilledRect(screen, 0, floor-2, float32(g.field.Width), 2, groundColor, false)

	ebitenutil.DebugPrint(screen, hudText(g.snap))

	switch g.snap.State {
	case engine.StateNotStarted:
		g.banner(screen, "Click or press SPACE to start")
	case engine.StateOver:
		g.banner(screen, fmt.Sprintf("%s  Score: %d", endText(g.snap.EndReason), g.snap.Score))
	}
}

func fillBox(screen *ebiten.Image, b core.Box, c color.Color) {
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), c, false)
}

func (g *Game) banner(screen *ebiten.Image, text string) {
	const h = 32
	y := float32(g.field.Height)/2 - h/2
	vector.DrawFilledRect(screen, 0, y, float32(g.field.Width), h, overlayColor, false)

	// The debug font is 6 pixels wide and 16 tall
	x := int(g.field.Width)/2 - len(text)*3
	ebitenutil.DebugPrintAt(screen, text, x, int(y)+8)
}

func hudText(s engine.Snapshot) string {
	text := fmt.Sprintf("Score: %d\nSpeed: %.2f", s.Score, s.Speed)
	switch rem := s.Remaining; {
	case rem.HasTime:
		text += fmt.Sprintf("\nTime: %d", rem.Seconds)
	case rem.HasDistance:
		text += fmt.Sprintf("\nLeft: %.0f", rem.Distance)
	}
	return text
}

func endText(reason engine.EndReason) string {
	switch reason {
	case engine.EndTimeUp:
		return "Time's up!"
	case engine.EndDistance:
		return "Finished!"
	default:
		return "Game over!"
	}
}

// Layout keeps the scene at its configured size and lets ebiten scale it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.field.Width), int(g.field.Height)
}

// Close releases the config watcher.
func (g *Game) Close() error {
	return g.ctrl.Close()
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g, err := NewGame(opts)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(int(g.field.Width), int(g.field.Height))
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

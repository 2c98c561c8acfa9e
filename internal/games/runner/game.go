// Package runner puts the runner engine behind the registry.Game interface
// so the terminal host can play it on a character grid.
package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/runner-arcade/internal/config"
	"github.com/vovakirdan/runner-arcade/internal/core"
	"github.com/vovakirdan/runner-arcade/internal/engine"
	"github.com/vovakirdan/runner-arcade/internal/registry"
)

// Scene units covered by one terminal cell.
const (
	UnitsPerCol = 10.0
	UnitsPerRow = 20.0
)

// Glyphs for the terminal scene.
const (
	PlayerChar      = '█'
	ObstacleChar    = '▓'
	CollectibleChar = '◆'
	GroundChar      = '═'
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a YAML file that overrides the variant defaults.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset applies a preset on top of the loaded config.
// Unknown names reset to the config as loaded.
func SetDifficultyPreset(preset string) {
	difficultyPreset, _ = config.ParsePreset(preset)
}

// Game adapts one engine session to the terminal.
type Game struct {
	variant string
	title   string

	cfg     config.RunnerConfig
	runtime core.RuntimeConfig
	eng     *engine.Engine
	snap    engine.Snapshot
	err     error

	ticks   int64
	groundY int
}

// New creates a game for the given config variant.
func New(variant, title string) *Game {
	return &Game{variant: variant, title: title}
}

// ID returns the variant name.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Description summarizes the session rules of the variant defaults.
func (g *Game) Description() string {
	cfg, _ := config.DefaultFor(g.variant)
	if cfg.Session.TimeLimitSec > 0 {
		return fmt.Sprintf("Collect coins for %d seconds", cfg.Session.TimeLimitSec)
	}
	return "Run until you hit something"
}

// Reset loads the config and builds a fresh, unstarted engine sized to
// the screen. A config or playfield error is kept and rendered instead of
// the scene.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.ticks = 0

	cfg, err := config.Load(g.variant, configPath)
	if err == nil && difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		g.eng, g.err, g.snap = nil, err, engine.Snapshot{}
		return
	}
	g.cfg = cfg

	rows := runtime.ScreenH - hudRows - 1
	g.groundY = hudRows + rows

	g.eng, g.err = engine.New(cfg, engine.Playfield{
		Width:  float64(runtime.ScreenW) * UnitsPerCol,
		Height: float64(rows) * UnitsPerRow,
	})
	if g.err == nil {
		g.snap = g.eng.Snapshot()
	}
}

// Step advances one tick. The engine clock is synthesized from the tick
// count so the simulation runs at the host's tick rate.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.err != nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && g.snap.GameOver() {
		g.eng.Reset()
	}
	if in.Has(core.ActionJump) {
		g.eng.PrimaryAction()
	}

	g.ticks++
	snap, err := g.eng.Tick(g.now())
	if err == nil {
		g.snap = snap
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) now() time.Duration {
	return time.Duration(g.ticks) * time.Second / time.Duration(g.runtime.TickRate)
}

// Snapshot returns the state drawn by the last Render.
func (g *Game) Snapshot() engine.Snapshot {
	return g.snap
}

// Config returns the configuration in use.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Render draws the scene and HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.drawError(dst)
		return
	}

	dst.DrawHLine(0, g.groundY, dst.Width(), GroundChar, core.ColorGray)

	for _, c := range g.snap.Collectibles {
		g.fill(dst, c.Box, CollectibleChar, core.ColorYellow)
	}
	for _, o := range g.snap.Obstacles {
		g.fill(dst, o.Box, ObstacleChar, core.ColorRed)
	}
	g.fill(dst, g.snap.Player, PlayerChar, core.ColorGreen)

	g.drawHUD(dst)

	switch g.snap.State {
	case engine.StateNotStarted:
		g.drawCenteredMessage(dst, g.title, "Press SPACE to start")
	case engine.StateOver:
		g.drawCenteredMessage(dst, endTitle(g.snap.EndReason),
			fmt.Sprintf("Score: %d  |  Press R to restart", g.snap.Score))
	}
}

// fill draws a scene box as cells, clipped to the playfield rows.
func (g *Game) fill(dst *core.Screen, b core.Box, r rune, c core.Color) {
	cells := b.Cells(UnitsPerCol, UnitsPerRow)
	for y := cells.Y; y < cells.Bottom(); y++ {
		row := y + hudRows
		if row < hudRows || row >= g.groundY {
			continue
		}
		for x := cells.X; x < cells.Right(); x++ {
			dst.SetCell(x, row, r, c)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.snap.Score), core.ColorBrightWhite)

	var left string
	switch rem := g.snap.Remaining; {
	case rem.HasTime:
		left = fmt.Sprintf("Time: %d", rem.Seconds)
	case rem.HasDistance:
		left = fmt.Sprintf("Left: %.0f", rem.Distance)
	}
	if left != "" {
		dst.DrawTextCentered(0, left)
	}

	speed := fmt.Sprintf("Spd: %.2f", g.snap.Speed)
	dst.DrawTextColored(dst.Width()-len(speed)-1, 0, speed, core.ColorCyan)
}

func endTitle(reason engine.EndReason) string {
	switch reason {
	case engine.EndTimeUp:
		return "TIME UP"
	case engine.EndDistance:
		return "FINISH"
	default:
		return "GAME OVER"
	}
}

func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}

// State reports score and lifecycle to the host.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.snap.Score,
		Started:  g.snap.State != engine.StateNotStarted,
		GameOver: g.snap.GameOver(),
	}
}

func init() {
	registry.Register(config.VariantTimed, func() registry.Game {
		return New(config.VariantTimed, "Runner")
	})
	registry.Register(config.VariantEndless, func() registry.Game {
		return New(config.VariantEndless, "Endless Runner")
	})
}

// Err returns the error that kept Reset from building an engine, if any.
func (g *Game) Err() error {
	return g.err
}

func (g *Game) drawError(dst *core.Screen) {
	mid := dst.Height() / 2
	if errors.Is(g.err, engine.ErrInvalidPlayfield) {
		dst.DrawTextCentered(mid, "Screen too small")
		return
	}
	dst.DrawTextCentered(mid-1, "Config error")
	msg := []rune(g.err.Error())
	if len(msg) > dst.Width() {
		msg = msg[:dst.Width()]
	}
	dst.DrawTextCentered(mid, string(msg))
}

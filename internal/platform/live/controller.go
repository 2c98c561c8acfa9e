// Package live runs an engine against a wall clock: it restarts a finished
// session after the configured delay and applies config file changes
// between sessions. Window and browser hosts drive it once per frame.
package live

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runner-arcade/internal/config"
	"github.com/vovakirdan/runner-arcade/internal/engine"
)

// ErrNoConfigPath is returned by Watch when no config file was given.
var ErrNoConfigPath = errors.New("live: no config file to watch")

// Options selects the variant and where its config comes from.
type Options struct {
	Variant    string
	ConfigPath string
	Preset     config.DifficultyPreset
	Field      engine.Playfield
	Logger     *log.Logger
}

// Controller owns one engine and the restart and reload policy around it.
// Like the engine, it is driven from a single goroutine.
type Controller struct {
	opts    Options
	logger  *log.Logger
	cfg     config.RunnerConfig
	pending *config.RunnerConfig
	eng     *engine.Engine
	watcher *config.Watcher

	ended   bool
	endedAt time.Duration
}

// New loads the config and builds an unstarted engine.
func New(opts Options) (*Controller, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	eng, err := engine.New(cfg, opts.Field, engine.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &Controller{
		opts:   opts,
		logger: logger,
		cfg:    cfg,
		eng:    eng,
	}, nil
}

func loadConfig(opts Options) (config.RunnerConfig, error) {
	cfg, err := config.Load(opts.Variant, opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if opts.Preset != "" {
		config.ApplyPreset(&cfg, opts.Preset)
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("difficulty %s: %w", opts.Preset, err)
		}
	}
	return cfg, nil
}

// Watch reloads the config file whenever it changes on disk.
func (c *Controller) Watch() error {
	if c.opts.ConfigPath == "" {
		return ErrNoConfigPath
	}
	w, err := config.NewWatcher(c.opts.ConfigPath)
	if err != nil {
		return err
	}
	c.watcher = w
	c.logger.Info("watching config", "path", c.opts.ConfigPath)
	return nil
}

// Close stops the config watcher, if any.
func (c *Controller) Close() error {
	if c.watcher == nil {
		return nil
	}
	err := c.watcher.Close()
	c.watcher = nil
	return err
}

// Reload reads the config again. A valid result is applied when no session
// is running; an invalid one is returned and the current config kept.
func (c *Controller) Reload() error {
	cfg, err := loadConfig(c.opts)
	if err != nil {
		return err
	}
	c.pending = &cfg
	c.logger.Info("config reloaded", "variant", c.opts.Variant)
	return nil
}

// Tick applies the primary action, if any, and advances the engine to now.
func (c *Controller) Tick(now time.Duration, primary bool) (engine.Snapshot, error) {
	c.drainWatcher()

	if c.eng.State() == engine.StateNotStarted {
		c.applyPending()
	}
	if primary {
		c.eng.PrimaryAction()
	}

	snap, err := c.eng.Tick(now)
	if err != nil {
		return snap, err
	}
	if !snap.GameOver() {
		c.ended = false
		return snap, nil
	}

	if !c.ended {
		c.ended = true
		c.endedAt = now
		c.logger.Info("session over", "reason", snap.EndReason, "score", snap.Score)
	}

	delay := time.Duration(c.cfg.Session.RestartDelayMS) * time.Millisecond
	if delay > 0 && now-c.endedAt >= delay {
		c.restart()
		snap = c.eng.Snapshot()
	}
	return snap, nil
}

func (c *Controller) restart() {
	c.ended = false
	c.eng.Reset()
	c.applyPending()
}

// applyPending swaps in a reloaded config. The engine must not be running.
func (c *Controller) applyPending() {
	if c.pending == nil {
		return
	}
	cfg := *c.pending
	c.pending = nil

	eng, err := engine.New(cfg, c.opts.Field, engine.WithLogger(c.logger))
	if err != nil {
		c.logger.Error("reloaded config rejected", "err", err)
		return
	}
	c.eng = eng
	c.cfg = cfg
}

func (c *Controller) drainWatcher() {
	for c.watcher != nil {
		select {
		case _, ok := <-c.watcher.Events:
			if !ok {
				c.watcher = nil
				return
			}
			if err := c.Reload(); err != nil {
				c.logger.Error("config reload failed", "err", err)
			}
		case err, ok := <-c.watcher.Errors:
			if !ok {
				c.watcher = nil
				return
			}
			c.logger.Warn("config watcher", "err", err)
		default:
			return
		}
	}
}

// End finishes the current session.
func (c *Controller) End() {
	c.eng.End()
}

// Snapshot returns the engine's current state.
func (c *Controller) Snapshot() engine.Snapshot {
	return c.eng.Snapshot()
}

// Config returns the config of the current session.
func (c *Controller) Config() config.RunnerConfig {
	return c.cfg
}

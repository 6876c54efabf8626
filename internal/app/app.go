// Package app runs the window smoke test: bring-up, the frame loop and teardown.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/firodj/sdl-smoke/internal/config"
)

// Platform covers the window and its event queue.
type Platform interface {
	// ProcessEvents drains the pending events without blocking.
	ProcessEvents()
	// ShouldStop is true once a quit event was seen.
	ShouldStop() bool
	DisplaySize() [2]float32
	FramebufferSize() [2]float32
}

// Renderer clears and presents frames.
type Renderer interface {
	PreRender(clearColor [4]float32) error
	PostRender()
}

// Overlay draws on top of the cleared frame, before it is presented.
type Overlay interface {
	Render(displaySize [2]float32, framebufferSize [2]float32, stats Stats) error
}

// Options control a single Run.
type Options struct {
	ClearColor   [4]float32
	MaxFrames    uint64
	RendererName string
}

// Stats describe the frames presented so far.
type Stats struct {
	Frames       uint64
	Elapsed      time.Duration
	FrameTime    time.Duration
	RendererName string
}

// FPS is the average frame rate over the whole run.
func (stats Stats) FPS() float64 {
	if stats.Elapsed <= 0 {
		return 0
	}
	return float64(stats.Frames) / stats.Elapsed.Seconds()
}

// Run polls events and clears and presents a frame per iteration until the
// platform requests a stop, ctx is done or opts.MaxFrames were presented.
// overlay may be nil.
func Run(ctx context.Context, platform Platform, renderer Renderer, overlay Overlay, opts Options) (Stats, error) {
	stats := Stats{RendererName: opts.RendererName}
	start := time.Now()
	last := start

	for {
		platform.ProcessEvents()
		if platform.ShouldStop() {
			return stats, nil
		}
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return stats, nil
			}
			return stats, err
		}

		if err := renderer.PreRender(opts.ClearColor); err != nil {
			return stats, err
		}
		if overlay != nil {
			if err := overlay.Render(platform.DisplaySize(), platform.FramebufferSize(), stats); err != nil {
				return stats, fmt.Errorf("overlay: %w", err)
			}
		}
		renderer.PostRender()

		now := time.Now()
		stats.Frames++
		stats.FrameTime = now.Sub(last)
		stats.Elapsed = now.Sub(start)
		last = now

		if opts.MaxFrames > 0 && stats.Frames >= opts.MaxFrames {
			return stats, nil
		}
	}
}

// Opener brings up the platform, renderer and optional overlay into session.
// Every acquired resource must be registered with session.Defer as soon as
// it exists, so that a later failure still releases it. A failed bring-up
// step is reported as an *InitError.
type Opener func(cfg config.Config, session *Session) error

// Main runs the whole program and returns its exit status:
// 0 after a clean stop, 1 when bring-up or a frame failed.
func Main(ctx context.Context, cfg config.Config, logger *log.Logger, open Opener) int {
	session := &Session{}
	defer func() {
		session.Dispose()
		logger.Debug("released", "resources", session.Released())
	}()

	if err := open(cfg, session); err != nil {
		var initErr *InitError
		if errors.As(err, &initErr) {
			logger.Error("startup failed", "stage", initErr.Stage, "err", initErr.Err)
		} else {
			logger.Error("startup failed", "err", err)
		}
		return 1
	}
	if session.Platform == nil || session.Renderer == nil {
		logger.Error("startup failed", "err", "opener left the session incomplete")
		return 1
	}
	logger.Info("window open",
		"title", cfg.Title,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"renderer", session.RendererName,
		"overlay", session.Overlay != nil)

	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	stats, err := Run(ctx, session.Platform, session.Renderer, session.Overlay, Options{
		ClearColor:   cfg.ClearColor,
		MaxFrames:    cfg.MaxFrames,
		RendererName: session.RendererName,
	})
	if err != nil {
		logger.Error("frame failed", "frame", stats.Frames+1, "err", err)
		return 1
	}

	logger.Info("quit",
		"frames", stats.Frames,
		"elapsed", stats.Elapsed.Round(time.Millisecond),
		"fps", fmt.Sprintf("%.1f", stats.FPS()))
	return 0
}

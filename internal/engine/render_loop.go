package engine

import (
	"errors"

	"Gopher3DSky/internal/logger"

	"go.uber.org/zap"
)

var ErrNoFrameScheduler = errors.New("no frame scheduler available")

type LoopState int

const (
	LoopStopped LoopState = iota
	LoopRunning
)

func (s LoopState) String() string {
	if s == LoopRunning {
		return "running"
	}
	return "stopped"
}

// Updater advances per-frame state before the frame is drawn.
type Updater interface {
	Update(delta float64)
}

// RenderLoop draws one frame per host frame, forever. Each tick re-arms
// itself before doing any work, so exactly one tick is ever in flight.
type RenderLoop struct {
	ctx     *Context
	updater Updater
	sched   FrameScheduler

	state    LoopState
	frames   uint64
	lastTime float64
}

func NewRenderLoop(ctx *Context, updater Updater, sched FrameScheduler) (*RenderLoop, error) {
	if sched == nil {
		return nil, ErrNoFrameScheduler
	}
	return &RenderLoop{ctx: ctx, updater: updater, sched: sched}, nil
}

// Start requests the first frame. Calling it again has no effect.
func (l *RenderLoop) Start() {
	if l.state == LoopRunning {
		return
	}
	l.state = LoopRunning
	logger.Log.Info("Render loop started")
	l.sched.RequestNextFrame(l.tick)
}

func (l *RenderLoop) tick(now float64) {
	l.sched.RequestNextFrame(l.tick)

	var delta float64
	if l.frames > 0 {
		delta = now - l.lastTime
	}
	l.lastTime = now

	if l.updater != nil {
		l.updater.Update(delta)
	}
	l.ctx.Renderer.Render(l.ctx.Scene, l.ctx.Camera)
	l.frames++

	if l.frames%600 == 0 {
		logger.Log.Debug("Render loop", zap.Uint64("frames", l.frames), zap.Float64("delta", delta))
	}
}

func (l *RenderLoop) State() LoopState { return l.state }

// Frames counts completed ticks.
func (l *RenderLoop) Frames() uint64 { return l.frames }

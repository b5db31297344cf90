package engine

import (
	"fmt"
	"runtime"

	"Gopher3DSky/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Window is the glfw host. It is both the FrameScheduler and the Dispatcher
// of the application, and must be created and run on the main goroutine.
type Window struct {
	window *glfw.Window
	tasks  TaskQueue

	pending  []FrameCallback
	onResize []func(width, height int)
}

func NewWindow(cfg WindowConfig) (*Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create glfw window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	glfw.SwapInterval(1)
	matchTitleBar(win, cfg.Background)

	w := &Window{window: win}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		for _, fn := range w.onResize {
			fn(width, height)
		}
	})

	logger.Log.Info("Window created",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))))
	return w, nil
}

// RequestNextFrame queues cb for the next iteration of Run.
func (w *Window) RequestNextFrame(cb FrameCallback) {
	w.pending = append(w.pending, cb)
}

// Post is safe to call from any goroutine.
func (w *Window) Post(fn func()) {
	w.tasks.Post(fn)
	glfw.PostEmptyEvent()
}

// OnResize registers fn for framebuffer size changes.
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = append(w.onResize, fn)
}

// FramebufferSize is the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// Height is the window height in screen coordinates, the unit of cursor
// positions. It differs from the framebuffer height on HiDPI displays.
func (w *Window) Height() int {
	_, h := w.window.GetSize()
	return h
}

func (w *Window) GLFW() *glfw.Window {
	return w.window
}

// Run drives the host until the window is closed. Each iteration handles
// input, runs posted continuations, then fires the frame callbacks that were
// requested before it began.
func (w *Window) Run() {
	for !w.window.ShouldClose() {
		glfw.PollEvents()
		w.tasks.Drain()

		callbacks := w.pending
		w.pending = nil
		now := glfw.GetTime()
		for _, cb := range callbacks {
			cb(now)
		}
		w.window.SwapBuffers()
	}
	logger.Log.Info("Window closed")
}

func (w *Window) Destroy() {
	w.window.Destroy()
	glfw.Terminate()
}

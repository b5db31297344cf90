package engine

import (
	"fmt"

	"Gopher3DSky/internal/logger"
	"Gopher3DSky/internal/params"
	"Gopher3DSky/internal/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragPan
)

// OrbitInput turns pointer events into orbit control input: left drag
// rotates, right drag pans, the wheel dollies.
type OrbitInput struct {
	controls       *renderer.OrbitControls
	viewportHeight func() int

	mode         dragMode
	lastX, lastY float64
}

// viewportHeight reports the window height in screen coordinates, the unit
// glfw uses for cursor positions.
func NewOrbitInput(controls *renderer.OrbitControls, viewportHeight func() int) *OrbitInput {
	return &OrbitInput{controls: controls, viewportHeight: viewportHeight}
}

func (in *OrbitInput) height() float64 {
	if h := in.viewportHeight(); h > 0 {
		return float64(h)
	}
	return 1
}

func (in *OrbitInput) Press(button glfw.MouseButton, x, y float64) {
	switch button {
	case glfw.MouseButtonLeft:
		in.mode = dragRotate
	case glfw.MouseButtonRight:
		in.mode = dragPan
	default:
		return
	}
	in.lastX, in.lastY = x, y
}

func (in *OrbitInput) Release(glfw.MouseButton) {
	in.mode = dragNone
}

func (in *OrbitInput) Move(x, y float64) {
	dx, dy := x-in.lastX, y-in.lastY
	in.lastX, in.lastY = x, y
	switch in.mode {
	case dragRotate:
		in.controls.Rotate(dx, dy, in.height())
	case dragPan:
		in.controls.Pan(dx, dy, in.height())
	}
}

func (in *OrbitInput) Scroll(yoff float64) {
	in.controls.Zoom(yoff)
}

// Attach installs the pointer callbacks on window.
func (in *OrbitInput) Attach(window *glfw.Window) {
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			x, y := w.GetCursorPos()
			in.Press(button, x, y)
		case glfw.Release:
			in.Release(button)
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		in.Move(x, y)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		in.Scroll(yoff)
	})
}

// KeyboardEditor edits the parameter store from the keyboard. Tab and
// Shift+Tab select a parameter, Up and Down step it, Shift steps by ten.
type KeyboardEditor struct {
	store    *params.Store
	names    []string
	selected int
}

func NewKeyboardEditor(store *params.Store) *KeyboardEditor {
	return &KeyboardEditor{store: store, names: store.Names()}
}

func (e *KeyboardEditor) Selected() string {
	return e.names[e.selected]
}

// Describe renders the selected parameter as a label with its bounds.
func (e *KeyboardEditor) Describe() string {
	name := e.Selected()
	p := e.store.Parameter(name)
	return fmt.Sprintf("%s = %g [%g, %g] step %g", name, p.Value, p.Min, p.Max, p.Step)
}

// HandleKey reports whether the key was consumed.
func (e *KeyboardEditor) HandleKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) bool {
	if action != glfw.Press && action != glfw.Repeat {
		return false
	}
	shift := mods&glfw.ModShift != 0

	switch key {
	case glfw.KeyTab:
		n := len(e.names)
		if shift {
			e.selected = (e.selected + n - 1) % n
		} else {
			e.selected = (e.selected + 1) % n
		}
		logger.Log.Info("Parameter selected", zap.String("param", e.Describe()))
		return true
	case glfw.KeyUp, glfw.KeyDown:
		name := e.Selected()
		step := e.store.Parameter(name).Step
		if shift {
			step *= 10
		}
		if key == glfw.KeyDown {
			step = -step
		}
		e.store.Set(name, e.store.Get(name)+step)
		logger.Log.Info("Parameter changed", zap.String("name", name), zap.Float64("value", e.store.Get(name)))
		return true
	}
	return false
}

// Attach installs the key callback on window. Escape closes the window.
func (e *KeyboardEditor) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
			return
		}
		e.HandleKey(key, action, mods)
	})
}

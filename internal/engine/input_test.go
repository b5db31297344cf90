package engine

import (
	"testing"

	"Gopher3DSky/internal/params"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyboardEditorSelection(t *testing.T) {
	store := params.NewDefault()
	e := NewKeyboardEditor(store)
	names := store.Names()

	assert.Equal(t, names[0], e.Selected())
	assert.True(t, e.HandleKey(glfw.KeyTab, glfw.Press, 0))
	assert.Equal(t, names[1], e.Selected())

	e.HandleKey(glfw.KeyTab, glfw.Press, glfw.ModShift)
	e.HandleKey(glfw.KeyTab, glfw.Press, glfw.ModShift)
	assert.Equal(t, names[len(names)-1], e.Selected())
}

func TestKeyboardEditorSteps(t *testing.T) {
	store := params.NewDefault()
	e := NewKeyboardEditor(store)
	assert.Equal(t, params.Turbidity, e.Selected())

	e.HandleKey(glfw.KeyUp, glfw.Press, 0)
	assert.InDelta(t, 10.1, store.Get(params.Turbidity), 1e-9)

	e.HandleKey(glfw.KeyDown, glfw.Repeat, glfw.ModShift)
	assert.InDelta(t, 9.1, store.Get(params.Turbidity), 1e-9)

	for i := 0; i < 30; i++ {
		e.HandleKey(glfw.KeyUp, glfw.Press, glfw.ModShift)
	}
	assert.Equal(t, 20.0, store.Get(params.Turbidity))
}

func TestKeyboardEditorIgnoresOtherInput(t *testing.T) {
	store := params.NewDefault()
	e := NewKeyboardEditor(store)
	calls := 0
	store.OnChange(params.Turbidity, func(string, float64) { calls++ })

	assert.False(t, e.HandleKey(glfw.KeyUp, glfw.Release, 0))
	assert.False(t, e.HandleKey(glfw.KeyA, glfw.Press, 0))
	assert.Equal(t, 0, calls)
}

func TestKeyboardEditorDescribe(t *testing.T) {
	e := NewKeyboardEditor(params.NewDefault())
	assert.Equal(t, "turbidity = 10 [0, 20] step 0.1", e.Describe())
}

func TestOrbitInputDrag(t *testing.T) {
	ctx := newTestContext(&fakeRenderer{})
	rig := NewCameraRig(ctx, DefaultCameraConfig(), DefaultControlsConfig())
	in := NewOrbitInput(rig.Controls(), func() int { return 768 })

	// Moving without a button held does nothing.
	in.Move(10, 10)
	assert.False(t, rig.Controls().Update())

	in.Press(glfw.MouseButtonLeft, 10, 10)
	in.Move(60, 10)
	in.Release(glfw.MouseButtonLeft)
	assert.True(t, rig.Controls().Update())

	in.Move(200, 200)
	target := rig.Controls().Target
	in.Press(glfw.MouseButtonRight, 0, 0)
	in.Move(0, 40)
	rig.Update(1.0 / 60)
	assert.NotEqual(t, target, rig.Controls().Target)
}

func TestOrbitInputScroll(t *testing.T) {
	ctx := newTestContext(&fakeRenderer{})
	rig := NewCameraRig(ctx, DefaultCameraConfig(), DefaultControlsConfig())
	in := NewOrbitInput(rig.Controls(), func() int { return 0 })

	before := rig.Controls().Distance()
	in.Scroll(1)
	rig.Update(0)
	assert.Less(t, rig.Controls().Distance(), before)
}

func TestOrbitInputDragScalesWithViewportHeight(t *testing.T) {
	ctl := DefaultControlsConfig()
	ctl.Damping = false
	ctx := newTestContext(&fakeRenderer{})
	rig := NewCameraRig(ctx, DefaultCameraConfig(), ctl)
	in := NewOrbitInput(rig.Controls(), func() int { return 384 })

	// Half the viewport height is half a turn around the target.
	in.Press(glfw.MouseButtonLeft, 0, 0)
	in.Move(192, 0)
	rig.Update(1.0 / 60)

	pos := ctx.Camera.Position
	assert.InDelta(t, -400, pos.X(), 1e-2)
	assert.InDelta(t, 200, pos.Y(), 1e-2)
	assert.InDelta(t, 0, pos.Z(), 1e-2)
}

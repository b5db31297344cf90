package engine

import (
	"Gopher3DSky/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// recorder collects an ordered event log shared by fakes.
type recorder struct {
	events []string
}

func (r *recorder) add(e string) {
	if r != nil {
		r.events = append(r.events, e)
	}
}

type fakeRenderer struct {
	log *recorder

	exposure     float32
	exposureSets int
	renders      int
	width        int
	height       int
	onRender     func()
}

func (f *fakeRenderer) SetToneMappingExposure(e float32) {
	f.exposure = e
	f.exposureSets++
}

func (f *fakeRenderer) ToneMappingExposure() float32 { return f.exposure }

func (f *fakeRenderer) Render(*renderer.Scene, *renderer.Camera) {
	f.renders++
	f.log.add("render")
	if f.onRender != nil {
		f.onRender()
	}
}

func (f *fakeRenderer) Resize(w, h int) { f.width, f.height = w, h }
func (f *fakeRenderer) Cleanup()        {}

// stubLoader completes synchronously, as if the dispatcher ran the
// continuation right away.
type stubLoader struct {
	node      *renderer.Node
	err       error
	fireTwice bool
	calls     int
}

func (s *stubLoader) Load(url string, onSuccess func(*renderer.Node), onError func(error)) {
	s.calls++
	times := 1
	if s.fireTwice {
		times = 2
	}
	for i := 0; i < times; i++ {
		if s.err != nil {
			onError(s.err)
		} else {
			onSuccess(s.node)
		}
	}
}

// deferredLoader holds the continuations until the test releases them.
type deferredLoader struct {
	onSuccess func(*renderer.Node)
	onError   func(error)
}

func (d *deferredLoader) Load(url string, onSuccess func(*renderer.Node), onError func(error)) {
	d.onSuccess, d.onError = onSuccess, onError
}

// manualScheduler fires requested frames only when the test ticks it.
type manualScheduler struct {
	pending []FrameCallback
	now     float64
}

func (m *manualScheduler) RequestNextFrame(cb FrameCallback) {
	m.pending = append(m.pending, cb)
}

func (m *manualScheduler) tick(dt float64) {
	m.now += dt
	callbacks := m.pending
	m.pending = nil
	for _, cb := range callbacks {
		cb(m.now)
	}
}

type recordingUpdater struct {
	log    *recorder
	deltas []float64
}

func (u *recordingUpdater) Update(delta float64) {
	u.deltas = append(u.deltas, delta)
	u.log.add("update")
}

func newTestContext(rend renderer.Render) *Context {
	return NewContext(rend, 450000, mgl32.Vec3{0.8, 0.8, 0.8})
}

package engine

import (
	"errors"

	"Gopher3DSky/internal/loader"
	"Gopher3DSky/internal/logger"
	"Gopher3DSky/internal/renderer"

	"go.uber.org/zap"
)

// DefaultAssetURL is the character model shown by default.
const DefaultAssetURL = "https://raw.githubusercontent.com/Assxios/threejs_a_girl/main/assets/just_a_girl/scene.gltf"

// DefaultAssetOffsetY is the vertical placement of the loaded model.
const DefaultAssetOffsetY = -75

var ErrEmptyAsset = errors.New("loader delivered no node")

type AssetState int

const (
	AssetPending AssetState = iota
	AssetAttached
	AssetFailed
)

func (s AssetState) String() string {
	switch s {
	case AssetPending:
		return "pending"
	case AssetAttached:
		return "attached"
	case AssetFailed:
		return "failed"
	}
	return "unknown"
}

// PendingAsset tracks one load request. Node and Err are meaningful once Done
// is closed.
type PendingAsset struct {
	URL string

	state AssetState
	node  *renderer.Node
	err   error
	done  chan struct{}
}

func (p *PendingAsset) Done() <-chan struct{} { return p.done }
func (p *PendingAsset) Node() *renderer.Node  { return p.node }
func (p *PendingAsset) Err() error            { return p.err }
func (p *PendingAsset) State() AssetState     { return p.state }

// AssetAttachment loads a model and inserts it into the scene when it arrives.
type AssetAttachment struct {
	OffsetY float32

	ctx     *Context
	loader  loader.Loader
	onError func(url string, err error)
}

func NewAssetAttachment(ctx *Context, l loader.Loader, onError func(url string, err error)) *AssetAttachment {
	return &AssetAttachment{
		OffsetY: DefaultAssetOffsetY,
		ctx:     ctx,
		loader:  l,
		onError: onError,
	}
}

// Request starts a single load of url and returns immediately. There are no
// retries and the request cannot be cancelled.
func (a *AssetAttachment) Request(url string) *PendingAsset {
	p := &PendingAsset{URL: url, done: make(chan struct{})}
	logger.Log.Info("Requesting asset", zap.String("url", url))
	a.loader.Load(url,
		func(n *renderer.Node) { a.attach(p, n) },
		func(err error) { a.fail(p, err) },
	)
	return p
}

func (a *AssetAttachment) attach(p *PendingAsset, n *renderer.Node) {
	if p.state != AssetPending {
		logger.Log.Warn("Ignoring repeated asset delivery", zap.String("url", p.URL), zap.Stringer("state", p.state))
		return
	}
	if n == nil {
		a.fail(p, ErrEmptyAsset)
		return
	}

	n.Position[1] = a.OffsetY
	a.ctx.Scene.Add(n)

	p.node = n
	p.state = AssetAttached
	close(p.done)
	logger.Log.Info("Asset attached", zap.String("url", p.URL), zap.String("node", n.Name))
}

func (a *AssetAttachment) fail(p *PendingAsset, err error) {
	if p.state != AssetPending {
		logger.Log.Warn("Ignoring asset failure after completion", zap.String("url", p.URL), zap.Error(err))
		return
	}
	p.err = err
	p.state = AssetFailed
	close(p.done)

	logger.Log.Error("Asset load failed", zap.String("url", p.URL), zap.Error(err))
	if a.onError != nil {
		a.onError(p.URL, err)
	}
}

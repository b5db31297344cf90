package engine

import (
	"fmt"

	"Gopher3DSky/internal/loader"
	"Gopher3DSky/internal/logger"
	"Gopher3DSky/internal/params"
	"Gopher3DSky/internal/renderer"

	"go.uber.org/zap"
)

// App is the assembled scene: parameters bound to the sky, the model
// request in flight, the camera rig and the running render loop.
type App struct {
	Config     Config
	Context    *Context
	Store      *params.Store
	Binder     *SkyBinder
	Attachment *AssetAttachment
	Asset      *PendingAsset
	Rig        *CameraRig
	Loop       *RenderLoop
	Editor     *KeyboardEditor
}

// NewApp builds the scene on rend, requests the asset through l and starts
// the render loop on sched. The asset arrives later; a failed load leaves
// the scene without it.
func NewApp(cfg Config, rend renderer.Render, sched FrameScheduler, l loader.Loader) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, ErrNoFrameScheduler
	}

	ctx := NewContext(rend, cfg.Sky.Scale, cfg.BackgroundColor())

	store := params.NewDefault()
	if err := cfg.ApplyParams(store); err != nil {
		return nil, err
	}

	binder := NewSkyBinder(ctx, store)
	binder.Bind()
	binder.Apply()

	attachment := NewAssetAttachment(ctx, l, func(url string, err error) {
		logger.Log.Warn("Continuing without model", zap.String("url", url))
	})
	attachment.OffsetY = cfg.Asset.OffsetY
	asset := attachment.Request(cfg.Asset.URL)

	rig := NewCameraRig(ctx, cfg.Camera, cfg.Controls)
	rig.Resize(cfg.Window.Width, cfg.Window.Height)

	loop, err := NewRenderLoop(ctx, rig, sched)
	if err != nil {
		return nil, fmt.Errorf("render loop: %w", err)
	}
	loop.Start()

	return &App{
		Config:     cfg,
		Context:    ctx,
		Store:      store,
		Binder:     binder,
		Attachment: attachment,
		Asset:      asset,
		Rig:        rig,
		Loop:       loop,
		Editor:     NewKeyboardEditor(store),
	}, nil
}

// Resize propagates a drawable size change to the renderer and camera.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.Context.Renderer.Resize(width, height)
	a.Rig.Resize(width, height)
}

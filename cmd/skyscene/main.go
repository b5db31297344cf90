package main

import (
	"fmt"
	"os"
	"runtime"

	"Gopher3DSky/internal/engine"
	"Gopher3DSky/internal/loader"
	"Gopher3DSky/internal/logger"
	"Gopher3DSky/internal/renderer"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func init() {
	// glfw and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := pflag.StringP("config", "c", "", "TOML config file")
	assetURL := pflag.String("asset", "", "model URL or path (.gltf, .glb, .obj)")
	paramsPath := pflag.String("params", "", "TOML file of sky parameters, re-read on change")
	debug := pflag.Bool("debug", false, "development logging")
	pflag.Parse()

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = engine.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if *assetURL != "" {
		cfg.Asset.URL = *assetURL
	}

	logger.Init(*debug || cfg.Log.Debug)
	defer logger.Sync()
	logger.Log.Info("Gopher3D Sky initializing...")

	win, err := engine.NewWindow(cfg.Window)
	if err != nil {
		logger.Log.Fatal("Window setup failed", zap.Error(err))
	}
	defer win.Destroy()

	width, height := win.FramebufferSize()
	rend := renderer.NewOpenGLRenderer(width, height)
	if err := cfg.Render.Configure(rend); err != nil {
		logger.Log.Fatal("Renderer options invalid", zap.Error(err))
	}
	if err := rend.Init(); err != nil {
		logger.Log.Fatal("Renderer setup failed", zap.Error(err))
	}
	defer rend.Cleanup()

	cfg.Window.Width, cfg.Window.Height = width, height
	app, err := engine.NewApp(cfg, rend, win, loader.NewAssetLoader(win))
	if err != nil {
		logger.Log.Fatal("Startup failed", zap.Error(err))
	}
	win.OnResize(app.Resize)

	engine.NewOrbitInput(app.Rig.Controls(), win.Height).Attach(win.GLFW())
	app.Editor.Attach(win.GLFW())
	logger.Log.Info("Editing", zap.String("param", app.Editor.Describe()))

	if *paramsPath != "" {
		watcher, err := engine.NewParamWatcher(*paramsPath, app.Store, win)
		if err != nil {
			logger.Log.Fatal("Parameter watcher failed", zap.Error(err))
		}
		watcher.Start()
		defer watcher.Close()
	}

	win.Run()
}

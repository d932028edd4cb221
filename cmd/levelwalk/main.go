package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	lw "github.com/gekko3d/levelwalk"
	"github.com/gekko3d/levelwalk/camera"
	"github.com/gekko3d/levelwalk/gfx/glgfx"
	"github.com/gekko3d/levelwalk/gfx/wgpugfx"
	"github.com/gekko3d/levelwalk/platform"
	"github.com/gekko3d/levelwalk/shaders"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	renderer := flag.String("renderer", "", "Graphics backend: wgpu or gl")
	level := flag.String("level", "", "Level to load, e.g. maps/start")
	demo := flag.Bool("demo", false, "Draw the demo triangle and square")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := lw.LoadConfig(*configPath)
	if err == nil {
		err = applyFlags(&cfg, *renderer, *level, *demo, *debug)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := lw.NewDefaultLogger(cfg.Log.Prefix, cfg.Log.Debug)
	if err := run(cfg, logger); err != nil {
		logger.Errorf("%v", err)
		var cfgErr *lw.ConfigurationError
		if errors.As(err, &cfgErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func applyFlags(cfg *lw.FileConfig, renderer, level string, demo, debug bool) error {
	if renderer != "" {
		cfg.Renderer = renderer
	}
	if level != "" {
		cfg.Assets.Level = level
	}
	cfg.Demo = cfg.Demo || demo
	cfg.Log.Debug = cfg.Log.Debug || debug
	return cfg.Validate()
}

func run(cfg lw.FileConfig, logger *lw.DefaultLogger) error {
	camCfg, err := cfg.CameraConfig()
	if err != nil {
		return err
	}
	controller, err := camera.NewController(camCfg, camera.State{})
	if err != nil {
		return &lw.ConfigurationError{Field: "camera", Reason: err.Error(), Err: err}
	}
	name, err := lw.ParseRendererName(cfg.Renderer)
	if err != nil {
		return err
	}

	mode := platform.NoContext
	if name == lw.RendererGL {
		mode = platform.OpenGLContext
	}
	window, err := platform.Open(platform.Options{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		Mode:   mode,
	})
	if err != nil {
		return err
	}
	defer window.Close()

	render := lw.RenderModule{
		Level: cfg.Assets.Level,
		Demo:  cfg.Demo || cfg.Assets.Level == "",
	}
	switch name {
	case lw.RendererGL:
		g, err := glgfx.New(window.SwapBuffers)
		if err != nil {
			return err
		}
		defer g.Release()
		logger.Infof("OpenGL %s", g.Version())
		render.Graphics = g
		render.VertexSource = shaders.LevelVertexGLSL
		render.FragmentSource = shaders.LevelFragmentGLSL
	default:
		width, height := window.FramebufferSize()
		g, err := wgpugfx.New(window.SurfaceDescriptor(), width, height)
		if err != nil {
			return err
		}
		defer g.Release()
		render.Graphics = g
		render.VertexSource = shaders.LevelWGSL
		render.FragmentSource = shaders.LevelWGSL
	}

	app := lw.NewAppBuilder().
		UseModule(
			lw.LoggingModule{Logger: logger},
			lw.TimeModule{},
			lw.WindowModule{Window: window, QuitOnEscape: true},
			lw.InputModule{Source: window, StartCaptured: cfg.Camera.StartCaptured},
			lw.AssetModule{
				Fetcher: cfg.Assets.NewFetcher(),
				Timeout: cfg.Assets.Timeout,
				Workers: cfg.Assets.Workers,
			},
			lw.CameraModule{Controller: controller, SpawnOnLoad: true},
			lw.RendererModule{Name: name, Render: render},
		).
		Build()

	if assets, ok := lw.Resource[lw.AssetServer](app); ok {
		defer assets.Close()
	}
	app.Run()
	return nil
}

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"glscene/config"
	"glscene/internal/app"
	"glscene/internal/logger"
	"glscene/internal/opengl"
	"glscene/internal/platform"
	"glscene/renderer"
)

func main() {
	var (
		sceneName  = flag.String("scene", "lit", "built-in scene: "+strings.Join(config.PresetNames(), ", "))
		configPath = flag.String("config", "", "YAML scene file (overrides -scene)")
		debug      = flag.Bool("debug", false, "enable debug logging")
		width      = flag.Int("width", 0, "window width (0 keeps the scene value)")
		height     = flag.Int("height", 0, "window height (0 keeps the scene value)")
		dump       = flag.Bool("dump", false, "print the resolved scene as YAML and exit")
	)
	flag.Parse()

	if err := logger.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := loadConfig(*configPath, *sceneName)
	if err != nil {
		logger.Log.Error("failed to load scene", zap.Error(err))
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}

	if *dump {
		out, err := cfg.Marshal()
		if err != nil {
			logger.Log.Error("failed to encode scene", zap.Error(err))
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	if err := run(cfg); err != nil {
		logger.Log.Error("demo failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func loadConfig(path, preset string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Preset(preset)
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}

	wc := platform.DefaultWindowConfig()
	wc.Width = cfg.Window.Width
	wc.Height = cfg.Window.Height
	wc.Title = cfg.Window.Title

	window, err := platform.NewWindow(wc)
	if err != nil {
		return err
	}
	defer window.Destroy()

	dev, err := opengl.NewDevice()
	if err != nil {
		return err
	}
	fbw, fbh := window.FramebufferSize()
	dev.SetViewport(fbw, fbh)

	shader, err := app.NewShader(cfg, dev)
	if err != nil {
		return fmt.Errorf("build shader: %w", err)
	}
	defer shader.Destroy()

	sc, err := app.BuildScene(cfg, dev, fbw, fbh)
	if err != nil {
		return err
	}
	defer sc.Destroy()

	loop := renderer.NewLoop(window, dev, shader, sc, platform.Now)
	loop.Title = cfg.Window.Title
	return loop.Run()
}

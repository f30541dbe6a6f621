package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wastetoken/Palettebuddy/internal/audio"
	"github.com/Wastetoken/Palettebuddy/internal/engine"
	"github.com/Wastetoken/Palettebuddy/internal/params"
	"github.com/Wastetoken/Palettebuddy/internal/web"
	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

func main() {
	var (
		width      = flag.Int("width", 800, "Frame width in pixels")
		height     = flag.Int("height", 600, "Frame height in pixels")
		targetFPS  = flag.Float64("fps", 30, "Target frames per second")
		seed       = flag.Int64("seed", 1, "Generator seed")
		patternArg = flag.String("pattern", "wave", "Pattern (wave|interference|ripple|prism|turbulence|glitch|kaleido|pixelate|scanline|vortex)")
		hue        = flag.Float64("hue", 200, "Base hue in degrees [0,360)")
		spectra    = flag.Float64("spectra", 50, "Spectral spread [0,100]")
		exposure   = flag.Float64("exposure", 50, "Exposure [0,100], 50 neutral")
		distortion = flag.Float64("distortion", 30, "Distortion [0,100]")
		scale      = flag.Float64("scale", 50, "Scale [0,100]")
		grain      = flag.Float64("grain", 0, "Coarse grain opacity [0,100]")
		fineGrain  = flag.Float64("fine-grain", 0, "Fine grain opacity [0,100]")
		smudge     = flag.Float64("smudge", 0, "Smudge factor [0,100], 0 disables")

		deviceName = flag.String("audio-device", "", "PortAudio device name (substring match)")
		bufferSize = flag.Int("buffer-size", 4096, "Audio capture buffer size")
		noAudio    = flag.Bool("no-audio", false, "Use a synthetic energy source instead of a device")
		audioSync  = flag.Bool("audio", false, "Start audio sync immediately")
		listDevs   = flag.Bool("list-audio-devices", false, "List audio input devices and exit")

		httpPort    = flag.Int("http", 0, "Control server port (0 disables)")
		profilePath = flag.String("profile", "", "Write per-frame timing CSV to this path")
		configPath  = flag.String("config", "", "Load parameters from a saved JSON config")
		headless    = flag.Bool("no-window", false, "Render without a display surface")

		exportPath   = flag.String("export", "", "Render one frame to this PNG path and exit")
		exportWidth  = flag.Int("export-width", 1920, "Export width in pixels")
		exportHeight = flag.Int("export-height", 1080, "Export height in pixels")
	)
	flag.Parse()

	logFlags := log.LstdFlags
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		logFlags = 0
	}
	logger := log.New(os.Stderr, "[palettebuddy] ", logFlags)

	p := params.Parameters{
		Hue:          *hue,
		Spectra:      *spectra,
		Exposure:     *exposure,
		Distortion:   *distortion,
		Scale:        *scale,
		Pattern:      params.ParsePattern(*patternArg),
		Seed:         *seed,
		SmudgeActive: *smudge > 0,
		SmudgeFactor: *smudge,
		Grain:        *grain,
		FineGrain:    *fineGrain,
	}.Clamp()

	if *configPath != "" {
		loaded, err := web.LoadConfig(*configPath)
		if err != nil {
			logger.Fatalf("load config: %v", err)
		}
		p = loaded
	}

	if *exportPath != "" {
		data, err := engine.Export(p, *exportWidth, *exportHeight)
		if err != nil {
			logger.Fatalf("export: %v", err)
		}
		if err := os.WriteFile(*exportPath, data, 0o644); err != nil {
			logger.Fatalf("write %s: %v", *exportPath, err)
		}
		logger.Printf("exported %dx%d frame to %s", *exportWidth, *exportHeight, *exportPath)
		return
	}

	if needAudioInit(*noAudio, *listDevs) {
		if err := audio.Initialize(); err != nil {
			logger.Fatalf("initialize PortAudio: %v", err)
		}
		defer audio.Terminate()
	}

	if *listDevs {
		devices, err := audio.ListDevices()
		if err != nil {
			logger.Fatalf("list devices: %v", err)
		}
		for _, dev := range devices {
			marker := ""
			if dev.IsDefaultInput {
				marker = " (default)"
			}
			fmt.Printf("- %s [%s]%s inputs:%d sample:%.0f Hz\n",
				dev.Name, dev.HostAPI, marker, dev.MaxInput, dev.DefaultSampleHz)
		}
		return
	}

	var surface engine.Surface
	if *headless {
		surface = engine.NopSurface{}
	} else {
		var err error
		surface, err = engine.NewSDLSurface("palettebuddy", *width, *height)
		if err != nil {
			logger.Printf("%v; rendering headless", err)
			surface = engine.NopSurface{}
		}
	}

	eng := engine.New(engine.Config{
		Width:       *width,
		Height:      *height,
		TargetFPS:   *targetFPS,
		AudioDevice: *deviceName,
		BufferSize:  *bufferSize,
		SynthAudio:  *noAudio,
		ProfilePath: *profilePath,
		Log:         logger,
	}, surface)
	eng.SetParams(p)
	defer func() {
		if err := eng.Close(); err != nil {
			logger.Printf("cleanup: %v", err)
		}
	}()

	if *audioSync {
		eng.StartAudioSync()
	}

	if *httpPort > 0 {
		server := web.NewServer(eng, logger)
		go func() {
			if err := server.Start(*httpPort); err != nil {
				logger.Printf("control server: %v", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go hotkeys(ctx, cancel, eng, logger)

	if err := eng.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatalf("runtime error: %v", err)
	}
}

// needAudioInit reports whether PortAudio must be brought up. The hotkey and
// web toggles can start a capture at any time, so any run that could use a
// real device initializes it.
func needAudioInit(noAudio, listDevs bool) bool {
	return !noAudio || listDevs
}

// hotkeys reads single keystrokes until the context ends. Unavailable
// keyboard input (e.g. no TTY) only disables the shortcuts.
func hotkeys(ctx context.Context, cancel context.CancelFunc, eng *engine.Engine, logger *log.Logger) {
	if err := keyboard.Open(); err != nil {
		logger.Printf("keyboard input disabled: %v", err)
		return
	}
	defer keyboard.Close()

	go func() {
		<-ctx.Done()
		_ = keyboard.Close()
	}()

	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		switch {
		case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || char == 'q':
			cancel()
			return
		case char == 'p':
			p := eng.Params()
			p.Pattern = p.Pattern.Next()
			eng.SetParams(p)
			logger.Printf("pattern -> %s", p.Pattern)
		case char == 's':
			p := eng.Params()
			p.Seed++
			eng.SetParams(p)
			logger.Printf("seed -> %d", p.Seed)
		case char == 'a':
			eng.ToggleAudioSync()
		case char == 'e':
			go snapshot(eng, logger)
		}
	}
}

func snapshot(eng *engine.Engine, logger *log.Logger) {
	data, err := eng.ExportCurrent(1920, 1080)
	if err != nil {
		logger.Printf("export: %v", err)
		return
	}
	name := fmt.Sprintf("palettebuddy-%s.png", time.Now().Format("20060102-150405"))
	if err := os.WriteFile(name, data, 0o644); err != nil {
		logger.Printf("write %s: %v", name, err)
		return
	}
	logger.Printf("saved %s", name)
}

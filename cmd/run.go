package cmd

import (
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/feyli/arctrace/internal/composer"
	"github.com/feyli/arctrace/internal/config"
	"github.com/feyli/arctrace/internal/glrender"
	"github.com/feyli/arctrace/internal/window"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the composition",
	RunE:  Run,
}

var (
	fullscreenFlag bool
	verboseFlag    bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runtime.LockOSThread()

	runCmd.Flags().BoolVarP(&fullscreenFlag, "fullscreen", "f", false, "render fullscreen on the primary monitor")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}

func Run(cmd *cobra.Command, args []string) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
	if !verboseFlag {
		log = log.Level(zerolog.InfoLevel)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Warn().Err(err).Msg("falling back to default settings")
	}
	if fullscreenFlag {
		settings.Fullscreen = true
	}

	win, err := window.New(settings)
	if err != nil {
		return err
	}
	defer win.Destroy()

	renderer, err := glrender.New()
	if err != nil {
		return err
	}

	comp := composer.New(config.DefaultTunables(), log)

	width, height := win.Size()
	comp.Resize(width, height)

	win.OnActivate(comp.Activate)
	win.OnResize(comp.Resize)

	log.Info().Int("width", width).Int("height", height).Msg("starting")

	lastFrame := time.Now()
	lastSweep := lastFrame
	for !win.ShouldClose() {
		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		// Long stalls (window drags, suspend) would otherwise dump a
		// burst of drift cycles at once.
		if dt > 0.25 {
			dt = 0.25
		}

		comp.Tick(dt)

		// The composer emits a normalized intensity; the configured
		// overlay alpha decides how strongly it reads on screen.
		width, height := win.Size()
		renderer.Render(comp.Scene(), width, height, comp.OverlayIntensity()*settings.OverlayAlpha)

		if now.Sub(lastSweep) > time.Second {
			renderer.Sweep(comp.Scene())
			lastSweep = now
		}

		win.Swap()
		win.Poll()
	}

	log.Info().Msg("exiting")
	return nil
}

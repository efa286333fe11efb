package commands

import (
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/likx/scrollsnap/internal/capture"
	"github.com/likx/scrollsnap/internal/config"
	"github.com/likx/scrollsnap/internal/display"
	"github.com/likx/scrollsnap/internal/history"
	"github.com/likx/scrollsnap/internal/logger"
	"github.com/likx/scrollsnap/internal/match"
	"github.com/likx/scrollsnap/internal/notify"
	"github.com/likx/scrollsnap/internal/output"
	"github.com/likx/scrollsnap/internal/scroll"
	"github.com/likx/scrollsnap/internal/scroller"
)

var (
	captureRegion string
	captureOut    string
	captureFormat string
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Run a scrolling screenshot capture",
	Long: `Capture a scrolling region of the screen and stitch the frames into
one tall image.

The capture loop alternates grabbing the region and injecting scroll
input, waiting between cycles so the page can finish rendering. It stops
when the content stops moving, the end of the page is reached, the frame
limit is hit, or Ctrl+C is pressed; whatever was captured by then is
stitched and saved.`,
	Example: `  # Capture a 800x600 region at 100,160
  scrollsnap capture --region 100,160,800x600

  # Save as JPEG to an explicit path
  scrollsnap capture --region 0,0,1280x900 --out /tmp/page.jpg

  # Slower pages need a longer settle delay
  scrollsnap capture --region 100,160,800x600 --delay-ms 600`,
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().StringVar(&captureRegion, "region", "", "capture region as X,Y,WxH (required)")
	captureCmd.Flags().StringVar(&captureOut, "out", "", "output file (default: save_directory/scroll_<timestamp>.<format>)")
	captureCmd.Flags().StringVar(&captureFormat, "format", "", "output format: png, jpg, bmp (default from config)")
	captureCmd.Flags().Int("delay-ms", 0, "wait between scroll and next capture in milliseconds")
	captureCmd.Flags().Int("max-frames", 0, "safety cap on captured frames")
	captureCmd.MarkFlagRequired("region")

	viper.BindPFlag("scroll_delay_ms", captureCmd.Flags().Lookup("delay-ms"))
	viper.BindPFlag("scroll_max_frames", captureCmd.Flags().Lookup("max-frames"))
}

func runCapture(cmd *cobra.Command, args []string) error {
	cfgMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings := cfgMgr.Get()
	initLogging(settings)
	log := logger.WithComponent("capture-cmd")

	region, err := parseRegion(captureRegion)
	if err != nil {
		return err
	}

	format := captureFormat
	if format == "" {
		format = settings.DefaultFormat
	}
	if !output.ValidFormat(format) {
		return fmt.Errorf("unsupported format %q (supported: %s)", format, strings.Join(output.Formats, ", "))
	}

	server := display.Detect()
	log.Info().Str("display_server", string(server)).Msg("Display server detected")

	router, err := capture.NewRouter(server)
	if err != nil {
		return err
	}
	defer router.Close()

	scr, err := scroller.New(server)
	if err != nil {
		return err
	}

	opts := sessionOptions(settings)
	engine := scroll.NewEngine(router, scr, opts)

	if err := engine.Start(region, func(frames, estHeight int) {
		log.Info().Int("frames", frames).Int("estimated_height", estHeight).Msg("Capture progress")
	}); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		shouldContinue, err := engine.CaptureFrame()
		if err != nil {
			if engine.FrameCount() == 0 {
				return err
			}
			log.Warn().Err(err).Msg("Capture aborted, stitching partial session")
			break
		}
		if !shouldContinue {
			break
		}

		// Scroll failures are not fatal here: if content really did not
		// move, the next frame's overlap check ends the session
		engine.ScrollDown()

		select {
		case <-time.After(opts.Delay):
		case <-sigCh:
			log.Info().Msg("Stop requested")
			engine.Stop()
		}
	}

	result, err := engine.Finish()
	if err != nil {
		return err
	}

	outPath := captureOut
	if outPath == "" {
		outPath = filepath.Join(settings.SaveDirectory, output.DefaultFilename(format))
	}
	if err := output.Save(result.Image, outPath); err != nil {
		return err
	}

	recordHistory(settings, result, outPath)

	if settings.ShowNotification {
		body := fmt.Sprintf("%d frames stitched into %dx%d", result.FrameCount,
			result.Image.Bounds().Dx(), result.TotalHeight)
		if err := notify.Send("Scrolling capture saved", body); err != nil {
			log.Debug().Err(err).Msg("Notification failed")
		}
	}

	log.Info().
		Int("frames", result.FrameCount).
		Int("total_height", result.TotalHeight).
		Str("path", outPath).
		Msg("Capture saved")
	fmt.Println(outPath)
	return nil
}

// sessionOptions builds engine options from config, with bound flag
// overrides applied through viper.
func sessionOptions(settings *config.Settings) scroll.Options {
	opts := scroll.DefaultOptions()
	opts.MaxFrames = settings.ScrollMaxFrames
	opts.Delay = time.Duration(settings.ScrollDelayMs) * time.Millisecond
	opts.Match = match.Options{
		SearchRange:  settings.ScrollOverlapSearch,
		IgnoreTop:    settings.ScrollIgnoreTop,
		IgnoreBottom: settings.ScrollIgnoreBottom,
		Confidence:   settings.ScrollConfidence,
	}

	if viper.GetInt("scroll_delay_ms") > 0 {
		opts.Delay = time.Duration(viper.GetInt("scroll_delay_ms")) * time.Millisecond
	}
	if viper.GetInt("scroll_max_frames") > 0 {
		opts.MaxFrames = viper.GetInt("scroll_max_frames")
	}
	return opts
}

// initLogging configures the global logger from config plus flag overrides
func initLogging(settings *config.Settings) {
	level := settings.LogLevel
	if flagLevel := viper.GetString("log_level"); flagLevel != "" {
		level = flagLevel
	}
	logger.Init(level, viper.GetBool("log_pretty"))
}

// parseRegion parses "X,Y,WxH" into a rectangle
func parseRegion(s string) (image.Rectangle, error) {
	var x, y, w, h int
	if _, err := fmt.Sscanf(s, "%d,%d,%dx%d", &x, &y, &w, &h); err != nil {
		return image.Rectangle{}, fmt.Errorf("invalid region %q (expected X,Y,WxH): %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q: dimensions must be positive", s)
	}
	return image.Rect(x, y, x+w, y+h), nil
}

func recordHistory(settings *config.Settings, result *scroll.Result, outPath string) {
	configDir, err := config.Dir()
	if err != nil {
		return
	}
	store := history.NewStore(filepath.Join(configDir, "history.json"))
	entry := history.Entry{
		Path:       outPath,
		CapturedAt: time.Now(),
		FrameCount: result.FrameCount,
		Width:      result.Image.Bounds().Dx(),
		Height:     result.TotalHeight,
	}
	if err := store.Append(entry, settings.HistorySize); err != nil {
		logger.WithComponent("history").Warn().Err(err).Msg("Failed to record capture history")
	}
}

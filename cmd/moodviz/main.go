// Package main is the moodviz CLI: a mood-driven procedural animation shown
// in a desktop window, streamed to a browser, or rendered to an image.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/moodviz/moodviz/internal/adapter/metadata"
	"github.com/moodviz/moodviz/internal/app"
	"github.com/moodviz/moodviz/internal/config"
	"github.com/moodviz/moodviz/internal/domain"
)

var (
	configFile string
	logLevel   string

	// Session flags
	moodName string
	tempo    float64
	energy   float64
	valence  float64
	title    string
	artist   string
	songFile string

	// Render flags
	frames int
	out    string
	seed   uint64

	// Serve flags
	addr string
)

// main registers commands and flags and executes the root command. With no
// subcommand the desktop window opens.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "moodviz",
		Short:        "mood-driven procedural animation",
		SilenceUsage: true,
		RunE:         runWindow,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "open the desktop window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	addSessionFlags(windowCmd)
	addSessionFlags(rootCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a frame offscreen to png or svg",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	addSessionFlags(renderCmd)
	renderCmd.Flags().IntVar(&frames, "frames", 60, "frames to advance before the snapshot")
	renderCmd.Flags().StringVarP(&out, "out", "o", "frame.png", "output file (.png or .svg)")
	renderCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for a reproducible layout (0 = random)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the browser preview",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	moodsCmd := &cobra.Command{
		Use:   "moods",
		Short: "list mood profiles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), renderMoods())
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.GetVersionInfo().FullString())
		},
	}

	rootCmd.AddCommand(windowCmd, renderCmd, serveCmd, moodsCmd, versionCmd)
	return rootCmd
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&moodName, "mood", "", "mood (joy, calm, energy, sad)")
	cmd.Flags().Float64Var(&tempo, "tempo", 0, "tempo in BPM")
	cmd.Flags().Float64Var(&energy, "energy", domain.DefaultEnergy, "energy in [0,1]")
	cmd.Flags().Float64Var(&valence, "valence", 0, "valence in [0,1], used when --mood is empty")
	cmd.Flags().StringVar(&title, "title", "", "song title for the overlay")
	cmd.Flags().StringVar(&artist, "artist", "", "song artist for the overlay")
	cmd.Flags().StringVar(&songFile, "file", "", "audio file whose tags fill title and artist")
}

// loadSettings reads --config over the defaults and applies global flags.
func loadSettings() (*config.Config, error) {
	settings := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}
	if logLevel != "" {
		settings.Log.Level = logLevel
	}
	return settings, nil
}

// songFromFlags returns the attributes given on the command line, or nil
// when no session flag was set.
func songFromFlags(cmd *cobra.Command) (*domain.SongAttributes, error) {
	flags := cmd.Flags()
	changed := false
	for _, name := range []string{"mood", "tempo", "energy", "valence", "title", "artist", "file"} {
		if flags.Changed(name) {
			changed = true
			break
		}
	}
	if !changed {
		return nil, nil
	}

	attrs := domain.SongAttributes{
		Mood:   moodName,
		Tempo:  tempo,
		Title:  title,
		Artist: artist,
	}
	if flags.Changed("energy") {
		e := energy
		attrs.Energy = &e
	}
	if flags.Changed("valence") {
		v := valence
		attrs.Valence = &v
	}
	if songFile != "" {
		info, err := metadata.ReadFile(songFile)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", songFile, err)
		}
		attrs = info.Apply(attrs)
	}
	return &attrs, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	song, err := songFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := app.DefaultConfig()
	cfg.Settings = settings
	cfg.Song = song

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer application.Shutdown()

	// Blocks until the window is closed
	application.Run()
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		settings.Animation.Seed = seed
	}
	song, err := songFromFlags(cmd)
	if err != nil {
		return err
	}

	log, err := app.NewLogger(settings)
	if err != nil {
		return err
	}
	snap, err := app.Render(log, settings, app.RenderOptions{
		Song:   song,
		Frames: frames,
		Out:    out,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(snap, out))
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if addr != "" {
		settings.Web.Addr = addr
	}

	log, err := app.NewLogger(settings)
	if err != nil {
		return err
	}
	preview, err := app.NewPreview(log, settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return preview.Run(ctx)
}

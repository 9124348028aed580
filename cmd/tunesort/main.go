package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/tunesort/internal/config"
	"github.com/handiism/tunesort/internal/organize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath    string
	playlistsFile string
	outDir        string
	format        string
	prefix        string
	fromSongs     string
	noRename      bool
	noSongs       bool
	dryRun        bool
	verbose       bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tunesort [music_dir]",
	Short: "Generate sorted playlists from the tags of a music directory",
	Long: `tunesort reads the tags of every audio file in a music directory,
optionally renames the files to a canonical name, and writes one playlist
per definition found in the playlists file.

Playlists are ordered by their sort_by keys, then by artist, album, disc,
track and title.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runOrganize,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "tunesort.yaml", "Path to config file")
	flags.StringVarP(&playlistsFile, "playlists", "p", "", "Playlist definitions file (overrides config)")
	flags.StringVar(&fromSongs, "from-songs", "", "Load the library from a songs dump instead of scanning")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	rootCmd.Flags().StringVarP(&outDir, "out", "o", "", "Playlist output directory (overrides config)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "", "Playlist format: m3u8, m3u, pls, wpl, zpl")
	rootCmd.Flags().StringVar(&prefix, "prefix", "", "Path prefix of playlist entries (overrides config)")
	rootCmd.Flags().BoolVar(&noRename, "no-rename", false, "Do not rename audio files")
	rootCmd.Flags().BoolVar(&noSongs, "no-songs", false, "Do not write the songs dump")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute playlists without writing or renaming anything")

	rootCmd.AddCommand(showCmd, checkCmd, initConfigCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			os.Exit(130)
		}
		if logger != nil {
			logger.Error("tunesort failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// newLogger builds a console logger on top of the production config.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// loadSettings reads the config file and applies the flags that override it.
func loadSettings(cmd *cobra.Command, args []string) (*config.Settings, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if len(args) > 0 {
		settings.MusicDir = args[0]
	}
	if playlistsFile != "" {
		settings.PlaylistsFile = playlistsFile
	}
	if outDir != "" {
		settings.PlaylistDir = outDir
	}
	if format != "" {
		settings.PlaylistFormat = format
	}
	if cmd.Flags().Changed("prefix") {
		settings.PathPrefix = prefix
	}
	if noRename {
		settings.RenameFiles = false
	}
	if noSongs || fromSongs != "" {
		settings.WriteSongs = false
	}

	return settings, nil
}

// logEvent maps a progress event onto the logger.
func logEvent(event organize.ProgressEvent) {
	var fields []zap.Field
	if event.Playlist != "" {
		fields = append(fields, zap.String("playlist", event.Playlist))
	}
	if event.Level == organize.LevelSuccess || event.Tracks > 0 {
		fields = append(fields, zap.Int("tracks", event.Tracks))
	}
	if event.Path != "" {
		fields = append(fields, zap.String("path", event.Path))
	}

	switch event.Level {
	case organize.LevelVerbose:
		logger.Debug(event.Message, fields...)
	case organize.LevelWarning:
		logger.Warn(event.Message, fields...)
	case organize.LevelError:
		logger.Error(event.Message, fields...)
	default:
		logger.Info(event.Message, fields...)
	}
}

func runOrganize(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	manager := organize.NewManager(settings, organize.Options{
		FromSongs: fromSongs,
		DryRun:    dryRun,
	}, logEvent)

	ctx := cmd.Context()
	if err := manager.Initialize(ctx); err != nil {
		return err
	}
	if err := manager.WriteSongs(); err != nil {
		return err
	}
	if err := manager.GeneratePlaylists(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return ctx.Err()
		}
		return err
	}

	written, total := manager.GetProgress()
	logger.Info("Complete",
		zap.Int("songs", len(manager.Songs())),
		zap.Int32("playlists", written),
		zap.Int32("total", total),
		zap.Bool("dry_run", dryRun))
	return nil
}

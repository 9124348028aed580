package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/handiism/tunesort/internal/config"
	"github.com/handiism/tunesort/internal/model"
	"github.com/handiism/tunesort/internal/organize"
	"github.com/handiism/tunesort/internal/playlist"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var forceInit bool

var showCmd = &cobra.Command{
	Use:   "show <playlist> [music_dir]",
	Short: "Print the content of one playlist without writing anything",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runShow,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config and playlist definitions",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config <path>",
	Short: "Write a config file with default settings",
	Args:  cobra.ExactArgs(1),
	RunE:  runInitConfig,
}

func init() {
	initConfigCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")
}

func runShow(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, args[1:])
	if err != nil {
		return err
	}

	manager := organize.NewManager(settings, organize.Options{
		FromSongs: fromSongs,
		DryRun:    true,
	}, logEvent)
	if err := manager.Initialize(cmd.Context()); err != nil {
		return err
	}

	songs, err := manager.Preview(args[0])
	if err != nil {
		return err
	}

	renderSongs(songs)
	return nil
}

func renderSongs(songs []model.Song) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Artist", "Album", "Title", "Rating", "Path"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	for i, s := range songs {
		t.AppendRow(table.Row{
			i + 1,
			s.ArtistString(),
			s.Album,
			s.Title,
			ratingString(s.Rating),
			text.FgHiBlack.Sprint(s.Path),
		})
	}

	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d tracks", len(songs))})
	t.Render()
}

func ratingString(r int) string {
	if r == model.NoRating {
		return "-"
	}
	return strconv.Itoa(r)
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, nil)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	defs, err := playlist.LoadFile(settings.PlaylistsFile)
	if err != nil {
		return err
	}

	warnings := 0
	for _, def := range defs {
		for _, w := range def.Warnings() {
			logger.Warn(w, zap.String("playlist", def.Name))
			warnings++
		}
		logger.Debug("Playlist", zap.String("playlist", def.Name),
			zap.Int("conditions", len(def.Conditions)),
			zap.Strings("sort_by", def.SortBy))
	}

	logger.Info("Playlists checked",
		zap.String("file", settings.PlaylistsFile),
		zap.Int("playlists", len(defs)),
		zap.Int("warnings", warnings))
	return nil
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := config.DefaultSettings().Save(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	logger.Info("Wrote default config", zap.String("path", path))
	return nil
}

// Command lectern presents a prepared slide deck in a resizable window.
//
// It consumes the output directory of the document preparation pipeline
// (rendered page SVGs plus a media metadata manifest) and runs the viewer.
package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/phanxgames/lectern"
)

func main() {
	cmd := &cli.Command{
		Name:      "lectern",
		Usage:     "present a prepared slide deck",
		ArgsUsage: "DECK_DIR",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "viewer configuration file (yaml)",
			},
			&cli.BoolFlag{
				Name:  "fullscreen",
				Usage: "start in fullscreen",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "verbose diagnostics and an FPS readout",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("expected exactly one deck directory, got %d arguments", cmd.NArg())
	}

	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("fullscreen") {
		cfg.Fullscreen = true
	}

	log, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stderr sync failure is unactionable

	deck, err := lectern.LoadDeck(cmd.Args().First(), log)
	if err != nil {
		return err
	}
	log.Info("deck loaded",
		zap.String("dir", deck.Dir()),
		zap.Int("slides", deck.Len()))

	return lectern.Run(deck, lectern.RunConfig{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		ShowFPS:    cmd.Bool("debug"),
		Logger:     log,
	})
}

func newLogger(debug bool) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if !debug {
		zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zc.DisableCaller = true
	zc.DisableStacktrace = true
	return zc.Build()
}

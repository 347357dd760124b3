package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/tqbf/assetx/pkg/extract"
)

const appVersion = "0.1.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "assetx",
		Usage: "rebuild asset file trees from indexes and a blob store",
		Before: func(c *cli.Context) error {
			configureLogging(c.Bool("verbose"))
			return nil
		},
		Flags: append([]cli.Flag{
			&cli.StringSliceFlag{
				Name:    "root",
				EnvVars: []string{"ASSETX_ROOT"},
				Value:   cli.NewStringSlice(extract.DefaultRoot),
				Usage:   "assets folder (repeatable, first existing wins)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose output",
			},
		}, extractFlags()...),
		Action: extractAction,
		Commands: []*cli.Command{
			extractCmd(),
			listCmd(),
			importCmd(),
			{
				Name:  "version",
				Usage: "print version",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, appVersion)
					return nil
				},
			},
		},
	}
}

func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stderr) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

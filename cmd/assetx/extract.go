package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tqbf/assetx/pkg/extract"
	"github.com/tqbf/assetx/pkg/progress"
)

func extractCmd() *cli.Command {
	return &cli.Command{
		Name:   "extract",
		Usage:  "materialize every index under <root>/files",
		Flags:  extractFlags(),
		Action: extractAction,
	}
}

func extractFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "skip objects matching pattern (repeatable)",
		},
		&cli.BoolFlag{
			Name:  "unsafe-paths",
			Usage: "allow object paths that leave their package folder",
		},
		&cli.BoolFlag{
			Name:  "no-progress",
			Usage: "log progress instead of drawing bars",
		},
	}
}

func extractAction(c *cli.Context) error {
	if c.NArg() != 0 {
		return fmt.Errorf("usage: assetx extract [flags]")
	}

	sum, err := extract.Extract(
		c.StringSlice("root"),
		pickRenderer(lineageBool(c, "no-progress")),
		extract.WithExcludes(lineageStrings(c, "exclude")),
		extract.WithUnsafePaths(lineageBool(c, "unsafe-paths")),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer,
		"Extracted %d objects from %d packages\n",
		sum.Objects, sum.Packages,
	)
	if sum.Skipped > 0 {
		fmt.Fprintf(c.App.Writer, "Skipped %d excluded objects\n", sum.Skipped)
	}
	if sum.Unreadable > 0 {
		fmt.Fprintf(c.App.Writer, "%d indexes could not be read\n", sum.Unreadable)
	}
	return nil
}

// Extract flags are accepted both before and after the subcommand
// name. cli resolves a name against the nearest flag set that defines
// it, so values given to the app would be hidden by the command's own
// unset copy; walk the lineage instead.
func lineageBool(c *cli.Context, name string) bool {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx.Bool(name)
		}
	}
	return false
}

func lineageStrings(c *cli.Context, name string) []string {
	var out []string
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			out = append(out, ctx.StringSlice(name)...)
		}
	}
	return out
}

func pickRenderer(noProgress bool) progress.Renderer {
	if noProgress || !isTerminal(os.Stderr) {
		return progress.LogRenderer{}
	}
	return progress.TeaRenderer{Output: os.Stderr}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/tqbf/assetx/pkg/index"
	"github.com/tqbf/assetx/pkg/pack"
)

func importCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "store a directory as a package in the assets folder",
		ArgsUsage: "<dir> <package>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "exclude pattern (repeatable)",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "json",
				Usage: "index format: json, jsonc or yaml",
			},
		},
		Action: importAction,
	}
}

func importAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: assetx import <dir> <package>")
	}
	dir := c.Args().Get(0)
	packageID := c.Args().Get(1)

	format, err := parseFormat(c.String("format"))
	if err != nil {
		return err
	}
	if !validPackageID(packageID, format) {
		return fmt.Errorf("invalid package name %q", packageID)
	}

	root := c.StringSlice("root")[0]
	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("create root: %w", err)
	}

	idx, err := pack.Import(
		dir, root, packageID,
		c.StringSlice("exclude"),
		format,
	)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Fprintf(c.App.Writer,
		"Imported %d files (%s) as %s\n",
		idx.Len(), humanize.IBytes(idx.DeclaredSize()), packageID,
	)
	return nil
}

func parseFormat(s string) (index.Format, error) {
	switch s {
	case "json":
		return index.FormatJSON, nil
	case "jsonc":
		return index.FormatJSONC, nil
	case "yaml", "yml":
		return index.FormatYAML, nil
	}
	return 0, fmt.Errorf("unknown index format %q", s)
}

// validPackageID reports whether id survives the round trip through
// an index file name.
func validPackageID(id string, format index.Format) bool {
	if strings.ContainsAny(id, `/\`) {
		return false
	}
	f := index.File{Name: id + "." + format.String()}
	got, err := f.PackageID()
	return err == nil && got == id
}

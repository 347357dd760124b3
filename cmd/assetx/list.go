package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/tqbf/assetx/pkg/extract"
	"github.com/tqbf/assetx/pkg/index"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "show the packages an extract would produce",
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	root, err := extract.LocateRoot(c.StringSlice("root")...)
	if err != nil {
		return err
	}
	return listPackages(c.App.Writer, root)
}

func listPackages(w io.Writer, root string) error {
	files, err := index.Discover(root)
	if err != nil {
		return err
	}

	var objects int
	var size uint64
	for _, f := range files {
		id, err := f.PackageID()
		if err != nil {
			return err
		}
		idx, err := index.Load(f)
		if errors.Is(err, index.ErrUnreadable) {
			fmt.Fprintf(w, "  %s (unreadable)\n", id)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w,
			"  %s %d objects (%s)\n",
			id, idx.Len(), humanize.IBytes(idx.DeclaredSize()),
		)
		objects += idx.Len()
		size += idx.DeclaredSize()
	}
	fmt.Fprintf(w,
		"%d packages, %d objects (%s declared)\n",
		len(files), objects, humanize.IBytes(size),
	)
	return nil
}

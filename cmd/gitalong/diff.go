package main

import (
	"context"
	"fmt"

	"github.com/douglaslassance/gitalong/git"
	"github.com/urfave/cli/v3"
)

// newDiffCommand is a debug command exposing the Git Probe's unified diff
// directly, useful when diagnosing why a path was classified the way it was.
func newDiffCommand() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "print the unstaged diff of one or more paths (debug)",
		ArgsUsage: "<path...>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			client, err := git.NewClient()
			if err != nil {
				return err
			}

			var opts []git.DiffOption
			if paths := cmd.Args().Slice(); len(paths) > 0 {
				opts = append(opts, git.WithDiffPaths(paths...))
			}

			diffs, err := client.Diff(opts...)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			for _, d := range diffs {
				fmt.Fprintf(w, "diff --git %s\n", d.Path)
				for _, chunk := range d.Chunks {
					fmt.Fprintf(w, "  -%d,%d +%d,%d\n",
						chunk.Removed.LineNo, chunk.Removed.Count,
						chunk.Added.LineNo, chunk.Added.Count)
				}
			}
			return nil
		},
	}
}

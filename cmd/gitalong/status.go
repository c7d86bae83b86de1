package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/douglaslassance/gitalong"
	"github.com/urfave/cli/v3"
)

func newStatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "report the spread of each path's tracked commit across the fleet",
		ArgsUsage: "<path...>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("status requires at least one path")
			}

			repo, err := gitalong.Open(repoRoot(rootCommand(cmd)), logger(rootCommand(cmd)))
			if err != nil {
				return err
			}

			entries, err := repo.Status(ctx, paths)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			for _, entry := range entries {
				fmt.Fprintf(w, "%s %s %s %s %s %s %s\n",
					entry.Spread.String(),
					entry.Path,
					dashIfEmpty(entry.Sha),
					dashIfEmpty(strings.Join(entry.LocalBranches, ",")),
					dashIfEmpty(strings.Join(entry.RemoteBranches, ",")),
					dashIfEmpty(entry.Host),
					dashIfEmpty(entry.Author),
				)
			}
			return nil
		},
	}
}

// dashIfEmpty renders an unknown status field as "-" rather than an empty
// column, matching every other field's fixed-width expectation.
func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

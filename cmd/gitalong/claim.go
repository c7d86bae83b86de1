package main

import (
	"context"
	"fmt"

	"github.com/douglaslassance/gitalong"
	"github.com/urfave/cli/v3"
)

func newClaimCommand() *cli.Command {
	return &cli.Command{
		Name:      "claim",
		Usage:     "reserve exclusive edit rights to one or more paths",
		ArgsUsage: "<path...>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("claim requires at least one path")
			}

			repo, err := gitalong.Open(repoRoot(rootCommand(cmd)), logger(rootCommand(cmd)))
			if err != nil {
				return err
			}

			results, err := repo.Claim(ctx, paths)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			allClaimed := true
			for _, res := range results {
				if res.Claimed {
					fmt.Fprintf(w, "claimed %s\n", res.Path)
					continue
				}
				allClaimed = false
				if res.Blocking != nil {
					fmt.Fprintf(w, "blocked %s by %s\n", res.Path, res.Blocking.Author)
				} else {
					fmt.Fprintf(w, "blocked %s\n", res.Path)
				}
			}

			if !allClaimed {
				return cli.Exit("one or more paths could not be claimed", 1)
			}
			return nil
		},
	}
}

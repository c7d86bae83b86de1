package main

import (
	"context"
	"fmt"

	"github.com/douglaslassance/gitalong"
	"github.com/urfave/cli/v3"
)

func newReleaseCommand() *cli.Command {
	return &cli.Command{
		Name:      "release",
		Usage:     "release this clone's claim on one or more paths",
		ArgsUsage: "<path...>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("release requires at least one path")
			}

			repo, err := gitalong.Open(repoRoot(rootCommand(cmd)), logger(rootCommand(cmd)))
			if err != nil {
				return err
			}

			results, err := repo.Release(ctx, paths)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			allReleased := true
			for _, res := range results {
				if res.Released {
					fmt.Fprintf(w, "released %s\n", res.Path)
					continue
				}
				allReleased = false
				fmt.Fprintf(w, "still dirty %s\n", res.Path)
			}

			if !allReleased {
				return cli.Exit("one or more paths could not be released", 1)
			}
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/douglaslassance/gitalong"
	"github.com/urfave/cli/v3"
)

func newUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "publish this clone's tracked commits to the store",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			repo, err := gitalong.Open(repoRoot(rootCommand(cmd)), logger(rootCommand(cmd)))
			if err != nil {
				return err
			}
			if err := repo.Update(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, "update complete")
			return nil
		},
	}
}

// Command gitalong is the CLI front end for the Repository Core: it wraps
// setup/update/status/claim/release (and a diff debug command) around the
// gitalong package.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "gitalong",
		Usage: "coordinate edits to non-mergeable files across a Git team",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "C",
				Usage: "path to the managed repository",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		// Before resolves -C the same way `git -C <path>` does: every git
		// invocation made by the Git Probe runs against the process working
		// directory, so subcommands never need to thread a root path through.
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			dir, err := filepath.Abs(cmd.String("C"))
			if err != nil {
				return ctx, err
			}
			return ctx, os.Chdir(dir)
		},
		Commands: []*cli.Command{
			newSetupCommand(),
			newUpdateCommand(),
			newStatusCommand(),
			newClaimCommand(),
			newReleaseCommand(),
			newDiffCommand(),
		},
	}
}

// repoRoot returns the managed repository directory. Before has already
// chdir'd the process into it, so this is always the current directory.
func repoRoot(_ *cli.Command) string {
	return "."
}

// logger builds the process-wide slog.Logger honoring --verbose, passed
// explicitly into gitalong.Open rather than installed as a package global.
func logger(cmd *cli.Command) *slog.Logger {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// rootCommand walks up from cmd to the command carrying the global -C and
// --verbose flags, since urfave/cli/v3 scopes persistent flags to the
// command they're declared on and its parents, not its children directly.
func rootCommand(cmd *cli.Command) *cli.Command {
	root := cmd
	for root.Parent() != nil {
		root = root.Parent()
	}
	return root
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/douglaslassance/gitalong"
	"github.com/douglaslassance/gitalong/store"
	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v3"
)

// gitalongHooks are the hook names that, if installed, invoke
// `gitalong update` around the moments a clone's working tree changes.
var gitalongHooks = []string{"applypatch-msg", "post-checkout", "post-commit", "post-rewrite"}

const hookMarkerBegin = "# >>> gitalong >>>"
const hookMarkerEnd = "# <<< gitalong <<<"

func newSetupCommand() *cli.Command {
	return &cli.Command{
		Name:      "setup",
		Usage:     "write .gitalong.json and wire the managed repository into the store",
		ArgsUsage: "<store-url>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "modify-permissions", Usage: "enforce claims via filesystem permissions"},
			&cli.StringFlag{Name: "tracked-extensions", Usage: "comma separated list of tracked file extensions"},
			&cli.BoolFlag{Name: "track-uncommitted", Value: true, Usage: "publish uncommitted changes and claims"},
			&cli.BoolFlag{Name: "update-gitignore", Usage: "append .gitalong/ to .gitignore"},
			&cli.BoolFlag{Name: "update-hooks", Usage: "install gitalong update hooks"},
			&cli.StringSliceFlag{Name: "store-header", Usage: "HTTP header to send to a JSON document store, as KEY=VALUE"},
			&cli.FloatFlag{Name: "pull-threshold", Value: gitalong.DefaultPullThreshold, Usage: "seconds between automatic store pulls, saved to .gitalong.json; store reads do not consult it and fetch every time"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root := repoRoot(rootCommand(cmd))
			storeURL := cmd.Args().First()
			if storeURL == "" {
				return fmt.Errorf("setup requires a store URL argument")
			}

			headers, err := parseHeaders(cmd.StringSlice("store-header"))
			if err != nil {
				return err
			}

			cfg := gitalong.Config{
				StoreURL:          storeURL,
				StoreHeaders:      headers,
				ModifyPermissions: cmd.Bool("modify-permissions"),
				TrackedExtensions: splitCSV(cmd.String("tracked-extensions")),
				TrackUncommitted:  cmd.Bool("track-uncommitted"),
				PullThreshold:     cmd.Float("pull-threshold"),
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(root); err != nil {
				return err
			}

			if err := initStore(ctx, cfg, root); err != nil {
				return fmt.Errorf("initializing store: %w", err)
			}

			if cmd.Bool("update-gitignore") {
				if err := appendGitignore(root); err != nil {
					return err
				}
			}
			if cmd.Bool("update-hooks") {
				if err := installHooks(root); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.Root().Writer, "gitalong is set up at %s\n", root)
			return nil
		},
	}
}

// initStore clones (Git variant) or probes (JSON variant) the configured
// store eagerly, so setup leaves the clone ready for the first update rather
// than deferring that cost to it.
func initStore(ctx context.Context, cfg gitalong.Config, root string) error {
	backend, err := store.New(cfg.StoreURL, root, cfg.StoreHeaders, store.DefaultRetryPolicy)
	if err != nil {
		return err
	}
	if err := backend.Lock(); err != nil {
		return err
	}
	defer backend.Unlock()

	_, err = backend.Snapshot(ctx)
	return err
}

func parseHeaders(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(pairs))
	var errs *multierror.Error
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("invalid --store-header %q: expected KEY=VALUE", pair))
			continue
		}
		headers[key] = value
	}
	return headers, errs.ErrorOrNil()
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func appendGitignore(root string) error {
	path := filepath.Join(root, ".gitignore")
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if strings.Contains(string(existing), ".gitalong/") {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		w.WriteString("\n")
	}
	w.WriteString(".gitalong/\n")
	return w.Flush()
}

func installHooks(root string) error {
	for _, hook := range gitalongHooks {
		if err := installHook(root, hook); err != nil {
			return err
		}
	}
	return nil
}

// installHook appends a fenced gitalong update invocation to an existing
// hook script, or creates one, idempotently: a second run replaces the
// fenced block rather than duplicating it.
func installHook(root, hook string) error {
	path := filepath.Join(root, ".git", "hooks", hook)
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	block := hookMarkerBegin + "\ngitalong update >/dev/null 2>&1 || true\n" + hookMarkerEnd + "\n"

	content := string(existing)
	if begin := strings.Index(content, hookMarkerBegin); begin >= 0 {
		end := strings.Index(content, hookMarkerEnd)
		if end >= 0 {
			content = content[:begin] + block + content[end+len(hookMarkerEnd)+1:]
			return os.WriteFile(path, []byte(content), 0o755)
		}
	}

	if content == "" {
		content = "#!/bin/sh\n"
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += block
	return os.WriteFile(path, []byte(content), 0o755)
}

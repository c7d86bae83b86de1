package git

import (
	"fmt"
	"os"
	"strings"
)

// ActiveBranch returns the name of the currently checked out branch, or ""
// when HEAD is detached.
func (c *Client) ActiveBranch() (string, error) {
	out, err := c.exec("git branch --show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RevParse resolves ref to its full commit sha.
func (c *Client) RevParse(ref string) (string, error) {
	out, err := c.exec(fmt.Sprintf("git rev-parse %s", ref))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RemoteURL returns the fetch URL of the origin remote.
func (c *Client) RemoteURL() (string, error) {
	out, err := c.exec("git remote get-url origin")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LocalBranches returns every local branch, normalized to short names.
func (c *Client) LocalBranches() ([]string, error) {
	return c.refNames("git for-each-ref --format='%(refname:short)' refs/heads/")
}

// RemoteBranches returns every remote-tracking branch, normalized to short
// names (e.g. "origin/main", not "refs/remotes/origin/main").
func (c *Client) RemoteBranches() ([]string, error) {
	return c.refNames("git for-each-ref --format='%(refname:short)' refs/remotes/")
}

func (c *Client) refNames(cmd string) ([]string, error) {
	out, err := c.exec(cmd)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, "/HEAD") {
			continue
		}
		names = append(names, line)
	}
	return names, nil
}

// ContainingBranches reports, separately, which local branches and which
// remote-tracking branches have sha reachable from their tip. Branch names
// are normalized short names, matching LocalBranches/RemoteBranches.
func (c *Client) ContainingBranches(sha string) (local []string, remote []string, err error) {
	// Full refnames are classified before shortening: %(refname:short)
	// renders refs/remotes/origin/main as "origin/main", indistinguishable
	// from a local branch of that name.
	out, err := c.exec(fmt.Sprintf("git branch --all --contains %s --format='%%(refname)'", sha))
	if err != nil {
		return nil, nil, err
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, "/HEAD") {
			continue
		}
		if name, ok := strings.CutPrefix(line, "refs/remotes/"); ok {
			remote = append(remote, name)
			continue
		}
		if name, ok := strings.CutPrefix(line, "refs/heads/"); ok {
			local = append(local, name)
		}
	}
	return local, remote, nil
}

// WorkingChanges returns every working-tree dirty, staged, or untracked path
// reported by PorcelainStatus, restricted to the given extensions (matched
// case-insensitively against the path suffix, dot included, e.g. ".png").
// A nil or empty extensions list disables filtering.
func (c *Client) WorkingChanges(extensions []string) ([]string, error) {
	statuses, err := c.PorcelainStatus()
	if err != nil {
		return nil, err
	}

	var changes []string
	for _, status := range statuses {
		if !hasTrackedExtension(status.Path, extensions) {
			continue
		}
		changes = append(changes, status.Path)
	}
	return changes, nil
}

// TrackedFiles returns every file in the working tree matching extensions,
// whether already tracked by Git or merely present on disk untracked. Used
// to drive permission enforcement, which must consider every matching file,
// not only the ones the caller has touched.
func (c *Client) TrackedFiles(extensions []string) ([]string, error) {
	out, err := c.exec("git ls-files")
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var files []string
	for _, path := range strings.Split(out, "\n") {
		path = strings.TrimSpace(path)
		if path == "" || !hasTrackedExtension(path, extensions) || seen[path] {
			continue
		}
		seen[path] = true
		files = append(files, path)
	}

	statuses, err := c.PorcelainStatus()
	if err != nil {
		return nil, err
	}
	for _, status := range statuses {
		if status.Indicators[0] != Untracked {
			continue
		}
		if !hasTrackedExtension(status.Path, extensions) || seen[status.Path] {
			continue
		}
		seen[status.Path] = true
		files = append(files, status.Path)
	}

	return files, nil
}

func hasTrackedExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	lower := strings.ToLower(path)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// FileExistsOnDisk reports whether path exists relative to the current
// working directory, independent of its Git tracking state.
func (c *Client) FileExistsOnDisk(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Chmod sets path writable or read-only for its owner, leaving group/other
// bits untouched.
func (c *Client) Chmod(path string, writable bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if writable {
		mode |= 0o200
	} else {
		mode &^= 0o200
	}
	return os.Chmod(path, mode)
}

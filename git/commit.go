/*
Copyright (c) 2023 Purple Clay

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package git

import (
	"fmt"
	"strings"
)

// CommitOption provides a way for setting specific options during a commit
// operation. Each supported option can customize the way the commit is
// created against the current repository (working directory)
type CommitOption func(*commitOptions)

type commitOptions struct {
	AllowEmpty bool
}

// WithAllowEmpty allows a commit to be created without having to track
// any changes. This bypasses the default protection by git, preventing
// a commit from having the exact same tree as its parent
func WithAllowEmpty() CommitOption {
	return func(opts *commitOptions) {
		opts.AllowEmpty = true
	}
}

// Commit a snapshot of staged changes within the current repository (working
// directory) and describe those changes with a given log message. Commit
// behavior can be customized through the use of options
func (c *Client) Commit(msg string, opts ...CommitOption) error {
	options := &commitOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var commitCmd strings.Builder
	commitCmd.WriteString("git commit")

	if options.AllowEmpty {
		commitCmd.WriteString(" --allow-empty")
	}

	commitCmd.WriteString(fmt.Sprintf(" -m '%s'", msg))
	_, err := c.exec(commitCmd.String())
	return err
}

// CommitInfo describes a single commit as recorded in a repository's history.
type CommitInfo struct {
	Sha          string
	AuthorName   string
	AuthorEmail  string
	CommitDate   string
	Summary      string
	ChangedPaths []string
}

const logFieldSep = "\x1f"

// CommitByRef returns metadata and the changed paths for a single commit,
// identified by sha. ChangedPaths is derived from a diff against the
// commit's first parent, falling back to a diff against the empty tree
// for root commits with no parent.
func (c *Client) CommitByRef(sha string) (CommitInfo, error) {
	format := strings.Join([]string{"%H", "%an", "%ae", "%cI", "%s"}, logFieldSep)
	out, err := c.exec(fmt.Sprintf("git show -s --format='%s' %s", format, sha))
	if err != nil {
		return CommitInfo{}, err
	}

	fields := strings.Split(out, logFieldSep)
	if len(fields) != 5 {
		return CommitInfo{}, ErrGitExecCommand{Cmd: "git show", Out: out}
	}

	info := CommitInfo{
		Sha:         fields[0],
		AuthorName:  fields[1],
		AuthorEmail: fields[2],
		CommitDate:  fields[3],
		Summary:     fields[4],
	}

	paths, err := c.exec(fmt.Sprintf("git diff-tree --no-commit-id --name-only -r %s^ %s", sha, sha))
	if err != nil || strings.TrimSpace(paths) == "" {
		paths, err = c.exec(fmt.Sprintf("git diff-tree --no-commit-id --name-only -r --root %s", sha))
		if err != nil {
			return CommitInfo{}, err
		}
	}

	for _, p := range strings.Split(paths, "\n") {
		if p != "" {
			info.ChangedPaths = append(info.ChangedPaths, p)
		}
	}

	return info, nil
}

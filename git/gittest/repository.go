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

// Package gittest spins up real, disposable git repositories for use as test
// fixtures. No git behavior is mocked; every helper shells out to the
// installed git binary against a temporary directory.
package gittest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// DefaultBranch used when initializing a fixture repository.
	DefaultBranch = "main"

	// DefaultAuthorName is the name every fixture commit is authored under.
	DefaultAuthorName = "Test Author"

	// DefaultAuthorEmail is the email every fixture commit is authored under.
	DefaultAuthorEmail = "test.author@example.com"

	// DefaultAuthorLog is how DefaultAuthorName/DefaultAuthorEmail renders
	// within a `git log`/`git show` entry.
	DefaultAuthorLog = DefaultAuthorName + " <" + DefaultAuthorEmail + ">"

	// ClonedRepositoryName is the directory a fixture clone is checked out into.
	ClonedRepositoryName = "clone"
)

type repoOptions struct {
	files         []string
	stagedFiles   []string
	committedFile []string
	fileContent   map[string]string
	cloneDepth    int
}

// RepoOption customizes the fixture repository created by InitRepository.
type RepoOption func(*repoOptions)

// WithFiles writes each named, untracked file to the working directory.
func WithFiles(paths ...string) RepoOption {
	return func(o *repoOptions) {
		o.files = append(o.files, paths...)
	}
}

// WithStagedFiles writes each named file and stages it.
func WithStagedFiles(paths ...string) RepoOption {
	return func(o *repoOptions) {
		o.stagedFiles = append(o.stagedFiles, paths...)
	}
}

// WithCommittedFiles writes each named file and commits it on top of the
// initial commit.
func WithCommittedFiles(paths ...string) RepoOption {
	return func(o *repoOptions) {
		o.committedFile = append(o.committedFile, paths...)
	}
}

// WithFileContent overrides the contents written for a path referenced by
// WithFiles, WithStagedFiles, or WithCommittedFiles. Without this option,
// fixture files are written with their own path as content.
func WithFileContent(path, content string) RepoOption {
	return func(o *repoOptions) {
		if o.fileContent == nil {
			o.fileContent = map[string]string{}
		}
		o.fileContent[path] = content
	}
}

// WithCloneDepth creates the fixture as a shallow clone of a bare remote,
// truncated to depth commits.
func WithCloneDepth(depth int) RepoOption {
	return func(o *repoOptions) {
		o.cloneDepth = depth
	}
}

// InitRepository creates a disposable git repository rooted at a temporary
// directory, chdirs the test process into it, and restores the original
// working directory on cleanup. With WithCloneDepth set, the fixture is a
// shallow clone of a bare remote named "origin"; otherwise it is a plain
// local repository with one empty initial commit.
func InitRepository(t *testing.T, opts ...RepoOption) {
	t.Helper()

	options := &repoOptions{}
	for _, opt := range opts {
		opt(options)
	}

	cwd, err := os.Getwd()
	require.NoError(t, err)

	root := t.TempDir()
	require.NoError(t, os.Chdir(root))

	if options.cloneDepth > 0 {
		// A bare repository has no work tree to commit in, so the initial
		// commit is made in a throwaway clone and pushed
		Exec(t, "git init --bare origin.git -b "+DefaultBranch)
		Exec(t, "git clone ./origin.git seed")
		require.NoError(t, os.Chdir("seed"))
		Exec(t, "git -c user.name='"+DefaultAuthorName+"' -c user.email='"+DefaultAuthorEmail+
			"' commit --allow-empty -m 'initialize repository'")
		Exec(t, "git push origin "+DefaultBranch)
		require.NoError(t, os.Chdir(root))

		// git ignores --depth for plain local paths, so clone over file://
		Exec(t, "git clone --depth "+itoa(options.cloneDepth)+" file://"+filepath.ToSlash(root)+"/origin.git "+ClonedRepositoryName)
		require.NoError(t, os.Chdir(ClonedRepositoryName))
	} else {
		Exec(t, "git init -b "+DefaultBranch)
		ConfigSet(t, "user.name", DefaultAuthorName, "user.email", DefaultAuthorEmail)
		Exec(t, "git commit --allow-empty -m 'initialize repository'")
	}

	for _, path := range options.files {
		writeFile(t, path, options.fileContent[path])
	}

	for _, path := range options.stagedFiles {
		writeFile(t, path, options.fileContent[path])
		StageFile(t, path)
	}

	for _, path := range options.committedFile {
		writeFile(t, path, options.fileContent[path])
		StageFile(t, path)
		Commit(t, "chore: add "+path)
	}

	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if content == "" {
		content = path
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TempFile writes content to a fixture file relative to the current working
// directory, creating any parent directories, and returns its path.
func TempFile(t *testing.T, path, content string) string {
	t.Helper()
	writeFile(t, path, content)
	return path
}

// WorkingDirectory returns the absolute path of the current test's working
// directory, resolving any OS-level symlinks (e.g. macOS's /private prefix).
func WorkingDirectory(t *testing.T) string {
	t.Helper()

	cwd, err := os.Getwd()
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(cwd)
	require.NoError(t, err)

	return filepath.ToSlash(resolved)
}

// ConfigSet sets one or more git config key/value pairs locally, scoped to
// the fixture repository.
func ConfigSet(t *testing.T, kv ...string) {
	t.Helper()
	require.Zero(t, len(kv)%2, "ConfigSet requires an even number of key/value arguments")

	for i := 0; i < len(kv); i += 2 {
		Exec(t, "git config "+kv[i]+" '"+kv[i+1]+"'")
	}
}

// StageFile stages a single path.
func StageFile(t *testing.T, path string) {
	t.Helper()
	Exec(t, "git add "+path)
}

// StageAll stages every change within the working directory.
func StageAll(t *testing.T) {
	t.Helper()
	Exec(t, "git add -A")
}

// StagedFile reports whether path is currently staged.
func StagedFile(t *testing.T, path string) bool {
	t.Helper()
	out := Exec(t, "git diff --cached --name-only")
	for _, line := range strings.Split(out, "\n") {
		if line == path {
			return true
		}
	}
	return false
}

// Commit creates a commit authored by DefaultAuthorName/DefaultAuthorEmail.
func Commit(t *testing.T, msg string) {
	t.Helper()
	Exec(t, "git commit -m '"+msg+"'")
}

// CommitWithAuthor creates a commit authored by the given name and email.
func CommitWithAuthor(t *testing.T, msg, name, email string) {
	t.Helper()
	Exec(t, "git -c user.name='"+name+"' -c user.email='"+email+"' commit -m '"+msg+"'")
}

// CommitEmpty creates an empty commit authored by DefaultAuthorName/DefaultAuthorEmail.
func CommitEmpty(t *testing.T, msg string) {
	t.Helper()
	Exec(t, "git commit --allow-empty -m '"+msg+"'")
}

// CommitEmptyWithAuthor creates an empty commit authored by the given name and email.
func CommitEmptyWithAuthor(t *testing.T, msg, name, email string) {
	t.Helper()
	Exec(t, "git -c user.name='"+name+"' -c user.email='"+email+"' commit --allow-empty -m '"+msg+"'")
}

// LastCommit returns the full `git log -1` entry for HEAD.
func LastCommit(t *testing.T) string {
	t.Helper()
	return Exec(t, "git log -1")
}

// LastCommitHash returns the full sha of HEAD.
func LastCommitHash(t *testing.T) string {
	t.Helper()
	return Exec(t, "git rev-parse HEAD")
}

// PorcelainStatus returns the `git status --porcelain` output of the
// working directory.
func PorcelainStatus(t *testing.T) string {
	t.Helper()
	return Exec(t, "git status --porcelain")
}

// Exec runs an arbitrary shell command against the fixture repository and
// fails the test if it returns a non-zero exit code.
func Exec(t *testing.T, cmd string) string {
	t.Helper()

	p, err := syntax.NewParser().Parse(strings.NewReader(cmd), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	r, err := interp.New(
		interp.StdIO(os.Stdin, &buf, &buf),
	)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background(), p), buf.String())

	return strings.TrimSuffix(buf.String(), "\n")
}

// MustExec is an alias of Exec, kept for call sites that read more naturally
// asserting a required side effect rather than reading its output.
func MustExec(t *testing.T, cmd string) string {
	t.Helper()
	return Exec(t, cmd)
}

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

package git_test

import (
	"testing"

	git "github.com/douglaslassance/gitalong/git"
	"github.com/douglaslassance/gitalong/git/gittest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit(t *testing.T) {
	gittest.InitRepository(t, gittest.WithStagedFiles("test.txt"))

	client, _ := git.NewClient()
	err := client.Commit("this is an example commit message")

	require.NoError(t, err)

	out := gittest.LastCommit(t)
	assert.Contains(t, out, gittest.DefaultAuthorLog)
	assert.Contains(t, out, "this is an example commit message")
}

func TestCommitCleanWorkingTree(t *testing.T) {
	gittest.InitRepository(t)

	client, _ := git.NewClient()
	err := client.Commit("this is an example commit message")

	require.ErrorContains(t, err, "nothing to commit, working tree clean")
}

func TestCommitAllowEmpty(t *testing.T) {
	gittest.InitRepository(t)

	client, _ := git.NewClient()
	err := client.Commit("this is an empty commit", git.WithAllowEmpty())

	require.NoError(t, err)
}

func TestCommitByRef(t *testing.T) {
	gittest.InitRepository(t, gittest.WithCommittedFiles("test.txt"))

	sha := gittest.LastCommitHash(t)
	client, _ := git.NewClient()

	info, err := client.CommitByRef(sha)

	require.NoError(t, err)
	assert.Equal(t, sha, info.Sha)
	assert.Contains(t, info.ChangedPaths, "test.txt")
}

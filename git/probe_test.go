package git_test

import (
	"testing"

	"github.com/douglaslassance/gitalong/git"
	"github.com/douglaslassance/gitalong/git/gittest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveBranch(t *testing.T) {
	gittest.InitRepository(t)

	c, err := git.NewClient()
	require.NoError(t, err)

	branch, err := c.ActiveBranch()
	require.NoError(t, err)
	assert.Equal(t, gittest.DefaultBranch, branch)
}

func TestLocalBranches(t *testing.T) {
	gittest.InitRepository(t)
	gittest.Exec(t, "git branch feature")

	c, err := git.NewClient()
	require.NoError(t, err)

	branches, err := c.LocalBranches()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{gittest.DefaultBranch, "feature"}, branches)
}

func TestContainingBranches(t *testing.T) {
	gittest.InitRepository(t, gittest.WithCommittedFiles("test.txt"))
	sha := gittest.LastCommitHash(t)
	gittest.Exec(t, "git branch feature")

	c, err := git.NewClient()
	require.NoError(t, err)

	local, _, err := c.ContainingBranches(sha)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{gittest.DefaultBranch, "feature"}, local)
}

func TestWorkingChangesFiltersByExtension(t *testing.T) {
	gittest.InitRepository(t, gittest.WithFiles("tracked.png", "ignored.txt"))

	c, err := git.NewClient()
	require.NoError(t, err)

	changes, err := c.WorkingChanges([]string{".png"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tracked.png"}, changes)
}

func TestTrackedFilesIncludesCommittedAndUntracked(t *testing.T) {
	gittest.InitRepository(t, gittest.WithCommittedFiles("committed.png"), gittest.WithFiles("untracked.png", "ignored.txt"))

	c, err := git.NewClient()
	require.NoError(t, err)

	files, err := c.TrackedFiles([]string{".png"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"committed.png", "untracked.png"}, files)
}

func TestFileExistsOnDisk(t *testing.T) {
	gittest.InitRepository(t, gittest.WithFiles("present.png"))

	c, err := git.NewClient()
	require.NoError(t, err)

	assert.True(t, c.FileExistsOnDisk("present.png"))
	assert.False(t, c.FileExistsOnDisk("absent.png"))
}

func TestChmod(t *testing.T) {
	gittest.InitRepository(t, gittest.WithFiles("asset.png"))

	c, err := git.NewClient()
	require.NoError(t, err)

	require.NoError(t, c.Chmod("asset.png", false))
	require.NoError(t, c.Chmod("asset.png", true))
}

package gitalong_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/douglaslassance/gitalong"
	"github.com/douglaslassance/gitalong/git/gittest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupManagedRepo creates a bare "origin" for the managed repository, a
// second bare repository to back the gitalong store, clones the managed
// repository, and writes .gitalong.json pointing at the store. It returns
// the clone's working directory.
func setupManagedRepo(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	gittest.Exec(t, "git init --bare managed.git -b "+gittest.DefaultBranch)
	gittest.Exec(t, "git init --bare store.git -b "+gittest.DefaultBranch)

	// A bare repository has no work tree to commit in, so the store's
	// initial commit is made in a throwaway clone and pushed.
	gittest.Exec(t, "git clone ./store.git store-seed")
	require.NoError(t, os.Chdir(filepath.Join(root, "store-seed")))
	gittest.Exec(t, "git -c user.name='"+gittest.DefaultAuthorName+"' -c user.email='"+gittest.DefaultAuthorEmail+
		"' commit --allow-empty -m 'initialize store'")
	gittest.Exec(t, "git push origin "+gittest.DefaultBranch)
	require.NoError(t, os.Chdir(root))

	gittest.Exec(t, "git clone ./managed.git work")
	require.NoError(t, os.Chdir(filepath.Join(root, "work")))
	gittest.ConfigSet(t, "user.name", gittest.DefaultAuthorName, "user.email", gittest.DefaultAuthorEmail)
	gittest.Exec(t, "git commit --allow-empty -m 'initialize repository'")
	gittest.Exec(t, "git push origin "+gittest.DefaultBranch)

	cfg := gitalong.Config{
		StoreURL:          filepath.ToSlash(filepath.Join(root, "store.git")),
		ModifyPermissions: false,
		TrackedExtensions: []string{".png", ".gif", ".jpg"},
		TrackUncommitted:  true,
		PullThreshold:     30,
	}
	require.NoError(t, cfg.Save(gittest.WorkingDirectory(t)))

	return gittest.WorkingDirectory(t)
}

func TestUpdateAndStatusUncommittedTrackedFile(t *testing.T) {
	root := setupManagedRepo(t)
	gittest.TempFile(t, "uncommitted.png", "binary-ish content")

	repo, err := gitalong.Open(root, nil)
	require.NoError(t, err)

	require.NoError(t, repo.Update(context.Background()))

	entries, err := repo.Status(context.Background(), []string{"uncommitted.png"})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "+-------", entries[0].Spread.String())
	assert.Empty(t, entries[0].Sha)
}

func TestUpdateAndStatusUntrackedExtension(t *testing.T) {
	root := setupManagedRepo(t)
	gittest.TempFile(t, "untracked.txt", "not a tracked extension")

	repo, err := gitalong.Open(root, nil)
	require.NoError(t, err)

	require.NoError(t, repo.Update(context.Background()))

	entries, err := repo.Status(context.Background(), []string{"untracked.txt"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "--------", entries[0].Spread.String())
}

func TestUpdateAndStatusLocallyCommittedFile(t *testing.T) {
	root := setupManagedRepo(t)
	gittest.TempFile(t, "local.gif", "local only")
	gittest.StageFile(t, "local.gif")
	gittest.Commit(t, "add local.gif")

	repo, err := gitalong.Open(root, nil)
	require.NoError(t, err)

	require.NoError(t, repo.Update(context.Background()))

	entries, err := repo.Status(context.Background(), []string{"local.gif"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "-+------", entries[0].Spread.String())
	assert.NotEmpty(t, entries[0].Sha)
}

func TestUpdateLocksFileCommittedByAnotherClone(t *testing.T) {
	root := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	gittest.Exec(t, "git init --bare managed.git -b "+gittest.DefaultBranch)
	gittest.Exec(t, "git init --bare store.git -b "+gittest.DefaultBranch)

	// A bare repository has no work tree to commit in, so the store's
	// initial commit is made in a throwaway clone and pushed.
	gittest.Exec(t, "git clone ./store.git store-seed")
	require.NoError(t, os.Chdir(filepath.Join(root, "store-seed")))
	gittest.Exec(t, "git -c user.name='"+gittest.DefaultAuthorName+"' -c user.email='"+gittest.DefaultAuthorEmail+
		"' commit --allow-empty -m 'initialize store'")
	gittest.Exec(t, "git push origin "+gittest.DefaultBranch)
	require.NoError(t, os.Chdir(root))

	cfg := gitalong.Config{
		StoreURL:          filepath.ToSlash(filepath.Join(root, "store.git")),
		ModifyPermissions: true,
		TrackedExtensions: []string{".png"},
		TrackUncommitted:  true,
		PullThreshold:     30,
	}

	gittest.Exec(t, "git clone ./managed.git clone-a")
	require.NoError(t, os.Chdir(filepath.Join(root, "clone-a")))
	gittest.ConfigSet(t, "user.name", "Clone A", "user.email", "a@example.com")
	gittest.Exec(t, "git commit --allow-empty -m 'initialize repository'")
	gittest.Exec(t, "git push origin "+gittest.DefaultBranch)
	gittest.TempFile(t, "asset.png", "owned by a")
	gittest.StageFile(t, "asset.png")
	gittest.Commit(t, "add asset.png")
	gittest.Exec(t, "git push origin "+gittest.DefaultBranch)
	require.NoError(t, cfg.Save(gittest.WorkingDirectory(t)))

	repoA, err := gitalong.Open(gittest.WorkingDirectory(t), nil)
	require.NoError(t, err)
	require.NoError(t, repoA.Update(context.Background()))

	infoA, err := os.Stat("asset.png")
	require.NoError(t, err)
	assert.NotZero(t, infoA.Mode().Perm()&0o200, "clone-a should keep write access to its own file")

	require.NoError(t, os.Chdir(root))
	gittest.Exec(t, "git clone ./managed.git clone-b")
	require.NoError(t, os.Chdir(filepath.Join(root, "clone-b")))
	gittest.ConfigSet(t, "user.name", "Clone B", "user.email", "b@example.com")
	gittest.Exec(t, "git pull origin "+gittest.DefaultBranch)
	require.NoError(t, cfg.Save(gittest.WorkingDirectory(t)))

	repoB, err := gitalong.Open(gittest.WorkingDirectory(t), nil)
	require.NoError(t, err)
	require.NoError(t, repoB.Update(context.Background()))

	infoB, err := os.Stat("asset.png")
	require.NoError(t, err)
	assert.Zero(t, infoB.Mode().Perm()&0o200, "clone-b should see asset.png locked read-only")
}

func TestClaimThenReleaseRoundTrips(t *testing.T) {
	root := setupManagedRepo(t)
	gittest.TempFile(t, "b.png", "asset")

	repo, err := gitalong.Open(root, nil)
	require.NoError(t, err)

	claimed, err := repo.Claim(context.Background(), []string{"b.png"})
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.True(t, claimed[0].Claimed)
	assert.Nil(t, claimed[0].Blocking)

	released, err := repo.Release(context.Background(), []string{"b.png"})
	require.NoError(t, err)
	require.Len(t, released, 1)
	assert.True(t, released[0].Released)
}

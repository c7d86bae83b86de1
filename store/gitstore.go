package store

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/douglaslassance/gitalong/git"
	"github.com/douglaslassance/gitalong/trackedcommit"
	"github.com/gofrs/flock"
)

// recordsFile is the path, relative to the store clone's root, that holds
// the published record set as a single JSON array.
const recordsFile = "store.json"

// storeCloneDir is the directory, relative to the managed repository's
// root, that the Git-backed store is cloned into.
const storeCloneDir = ".gitalong"

// gitStore is the Git-backed Store Backend variant: a clone of a dedicated
// repository (or branch) whose sole content is recordsFile, updated by
// commit-and-push with retry on non-fast-forward rejection.
type gitStore struct {
	url   string
	dir   string
	retry RetryPolicy

	mu     sync.Mutex
	flock  *flock.Flock
	client *git.Client
	cloned bool
}

// newGitStore prepares (without yet cloning) a Git-backed store for url,
// cloned into storeCloneDir under repoRoot.
func newGitStore(url, repoRoot string, retry RetryPolicy) (*gitStore, error) {
	client, err := git.NewClient()
	if err != nil {
		return nil, fmt.Errorf("locating git client for store backend: %w", err)
	}

	dir := filepath.Join(repoRoot, storeCloneDir)

	return &gitStore{
		url:    url,
		dir:    dir,
		retry:  retry,
		flock:  flock.New(filepath.Join(os.TempDir(), "gitalong-store-"+hashURL(url)+".lock")),
		client: client,
	}, nil
}

func hashURL(url string) string {
	sum := sha1.Sum([]byte(url))
	return hex.EncodeToString(sum[:])[:16]
}

// Lock acquires the cross-process file lock guarding this store's clone.
func (s *gitStore) Lock() error {
	return s.flock.Lock()
}

// Unlock releases the lock acquired by Lock.
func (s *gitStore) Unlock() error {
	return s.flock.Unlock()
}

// withClone chdirs into the store's local clone (creating/fetching it first)
// and restores the previous working directory before returning.
func (s *gitStore) withClone(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureClone(); err != nil {
		return err
	}

	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	if err := os.Chdir(s.dir); err != nil {
		return fmt.Errorf("entering store clone: %w", err)
	}
	defer os.Chdir(prev)

	return fn()
}

func (s *gitStore) ensureClone() error {
	if s.cloned {
		return nil
	}
	if _, err := os.Stat(filepath.Join(s.dir, ".git")); err == nil {
		s.cloned = true
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.dir), 0o755); err != nil {
		return fmt.Errorf("preparing store cache directory: %w", err)
	}

	if _, err := s.client.Clone(s.url, git.WithDirectory(s.dir)); err != nil {
		return fmt.Errorf("cloning store repository %s: %w", s.url, err)
	}
	s.cloned = true
	return nil
}

// sync implements §4.3.1 step 1: fetch origin and force-advance the active
// branch to its remote-tracking tip, discarding any local commit this
// clone made on a prior, since-rejected push attempt.
func (s *gitStore) sync() error {
	if _, err := s.client.Fetch(); err != nil {
		return fmt.Errorf("fetching store remote: %w", err)
	}

	branch, err := s.client.ActiveBranch()
	if err != nil {
		return fmt.Errorf("resolving store branch: %w", err)
	}
	if branch == "" {
		return nil
	}

	if _, err := s.client.Checkout(branch, git.WithRef("origin/"+branch)); err != nil {
		return fmt.Errorf("advancing store branch to remote tip: %w", err)
	}
	return nil
}

// Snapshot fetches the latest state of the store branch and returns every
// record it currently holds.
func (s *gitStore) Snapshot(ctx context.Context) ([]trackedcommit.Record, error) {
	var records []trackedcommit.Record
	err := s.withClone(func() error {
		if err := s.sync(); err != nil {
			return err
		}
		recs, err := readRecords(s.dir)
		if err != nil {
			return err
		}
		records = recs
		return nil
	})
	return records, err
}

// Commit merges mine into the latest remote state and pushes the result,
// retrying on non-fast-forward rejection per the configured RetryPolicy.
func (s *gitStore) Commit(ctx context.Context, remote, host, author string, mine []trackedcommit.Record) error {
	return s.withClone(func() error {
		var lastErr error
		for attempt := 0; attempt < s.retry.MaxAttempts; attempt++ {
			if attempt > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(s.retry.Delay(attempt - 1)):
				}
			}

			if err := s.sync(); err != nil {
				lastErr = err
				continue
			}

			current, err := readRecords(s.dir)
			if err != nil {
				lastErr = err
				continue
			}

			if err := writeRecords(s.dir, merge(current, host, author, remote, mine)); err != nil {
				lastErr = err
				continue
			}

			if _, err := s.client.Stage(); err != nil {
				lastErr = fmt.Errorf("staging store update: %w", err)
				continue
			}

			// The merged record set equals what the store already holds;
			// there is nothing to commit or push.
			clean, err := s.client.Clean()
			if err != nil {
				lastErr = fmt.Errorf("checking store clone status: %w", err)
				continue
			}
			if clean {
				return nil
			}

			if err := s.client.Commit("gitalong: update tracked commits"); err != nil {
				lastErr = fmt.Errorf("committing store update: %w", err)
				continue
			}

			if _, err := s.client.Push(); err != nil {
				lastErr = fmt.Errorf("pushing store update: %w", err)
				continue
			}

			return nil
		}
		return fmt.Errorf("store commit failed after %d attempts: %w", s.retry.MaxAttempts, lastErr)
	})
}

func readRecords(dir string) ([]trackedcommit.Record, error) {
	path := filepath.Join(dir, recordsFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", recordsFile, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []trackedcommit.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", recordsFile, err)
	}
	return records, nil
}

func writeRecords(dir string, records []trackedcommit.Record) error {
	if records == nil {
		records = []trackedcommit.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", recordsFile, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(dir, recordsFile), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", recordsFile, err)
	}
	return nil
}

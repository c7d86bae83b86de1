// Package gitalong implements the Repository Core: it orchestrates the Git
// Probe, Tracked Commit, Store Backend, and Spread Classifier to answer
// update/status/claim/release against one managed repository.
package gitalong

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/douglaslassance/gitalong/batch"
	"github.com/douglaslassance/gitalong/git"
	"github.com/douglaslassance/gitalong/identity"
	"github.com/douglaslassance/gitalong/spread"
	"github.com/douglaslassance/gitalong/store"
	"github.com/douglaslassance/gitalong/trackedcommit"
)

// Repository orchestrates a single managed repository's gitalong state.
type Repository struct {
	root     string
	cfg      Config
	git      *git.Client
	identity identity.Identity
	store    store.Backend
	batch    *batch.Executor
	log      *slog.Logger

	// snapshot caches the last store read within this process, per the §5
	// ordering guarantee that a query immediately following update sees the
	// newly committed slice without a second round-trip to the backend.
	snapshot []trackedcommit.Record
}

// Open loads .gitalong.json from root and wires up the Git Probe, identity,
// and Store Backend needed to serve Repository Core operations. A nil
// logger defaults to a text logger on stderr that only emits error-level
// records.
func Open(root string, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		return nil, err
	}

	gitClient, err := git.NewClient()
	if err != nil {
		return nil, GitFailureError{Err: err}
	}

	id, err := identity.Resolve(gitClient)
	if err != nil {
		return nil, fmt.Errorf("resolving identity: %w", err)
	}

	backend, err := store.New(cfg.StoreURL, root, cfg.StoreHeaders, store.DefaultRetryPolicy)
	if err != nil {
		return nil, StoreUnavailableError{Attempts: 0, Err: err}
	}

	return &Repository{
		root:     root,
		cfg:      cfg,
		git:      gitClient,
		identity: id,
		store:    backend,
		batch:    batch.New(),
		log:      logger,
	}, nil
}

// remote returns the origin URL scoping this clone's records, per §3.
func (r *Repository) remote() (string, error) {
	url, err := r.git.RemoteURL()
	if err != nil {
		return "", GitFailureError{Err: err}
	}
	return url, nil
}

func (r *Repository) isMine(rec trackedcommit.Record) bool {
	return rec.Host == r.identity.Host && rec.Author == r.identity.User
}

// refreshSnapshot reads the store and caches the result for the remainder
// of this process.
func (r *Repository) refreshSnapshot(ctx context.Context) error {
	recs, err := r.store.Snapshot(ctx)
	if err != nil {
		return StoreUnavailableError{Attempts: store.DefaultRetryPolicy.MaxAttempts, Err: err}
	}
	r.snapshot = recs
	return nil
}

// Update recomputes this clone's contribution to the store and publishes
// it, per §4.5.
func (r *Repository) Update(ctx context.Context) error {
	if err := r.store.Lock(); err != nil {
		return StoreUnavailableError{Err: err}
	}
	defer r.store.Unlock()

	if err := r.refreshSnapshot(ctx); err != nil {
		return err
	}

	remote, err := r.remote()
	if err != nil {
		return err
	}

	mine, err := r.buildLocalRecords(remote)
	if err != nil {
		return err
	}

	merged := make([]trackedcommit.Record, 0, len(r.snapshot)+len(mine))
	for _, rec := range r.snapshot {
		if r.isMine(rec) && rec.Remote == remote {
			continue
		}
		merged = append(merged, rec)
	}
	merged = append(merged, mine...)

	if r.cfg.ModifyPermissions {
		if err := r.enforcePermissions(mine, merged); err != nil {
			return err
		}
	}

	if err := r.store.Commit(ctx, remote, r.identity.Host, r.identity.User, mine); err != nil {
		return StoreConflictError{Attempts: store.DefaultRetryPolicy.MaxAttempts, Err: err}
	}

	r.snapshot = merged

	r.log.Info("update complete", "identity", r.identity.String(), "records", len(mine))
	return nil
}

// buildLocalRecords computes this clone's full contribution to the store:
// one record per local branch tip, merged by sha with one per remote-tracking
// branch tip, plus an optional synthetic uncommitted record.
func (r *Repository) buildLocalRecords(remote string) ([]trackedcommit.Record, error) {
	bySha := map[string]trackedcommit.Record{}

	local, err := r.git.LocalBranches()
	if err != nil {
		return nil, GitFailureError{Err: err}
	}
	for _, branch := range local {
		if err := r.addBranchTip(bySha, remote, branch, false); err != nil {
			return nil, err
		}
	}

	remoteBranches, err := r.git.RemoteBranches()
	if err != nil {
		return nil, GitFailureError{Err: err}
	}
	for _, branch := range remoteBranches {
		if err := r.addBranchTip(bySha, remote, branch, true); err != nil {
			return nil, err
		}
	}

	records := make([]trackedcommit.Record, 0, len(bySha)+1)
	for _, rec := range bySha {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Sha < records[j].Sha })

	if r.cfg.TrackUncommitted {
		uncommitted, err := r.buildUncommittedRecord(remote)
		if err != nil {
			return nil, err
		}
		if !uncommitted.IsGarbage() {
			records = append(records, uncommitted)
		}
	}

	return records, nil
}

func (r *Repository) addBranchTip(bySha map[string]trackedcommit.Record, remote, branch string, isRemote bool) error {
	revision, err := r.git.RevParse(branch)
	if err != nil {
		return GitFailureError{Err: err}
	}

	rec, ok := bySha[revision]
	if !ok {
		info, err := r.git.CommitByRef(revision)
		if err != nil {
			return GitFailureError{Err: err}
		}
		localBranches, remoteBranches, err := r.git.ContainingBranches(revision)
		if err != nil {
			return GitFailureError{Err: err}
		}
		rec = trackedcommit.Record{
			Sha:     info.Sha,
			Remote:  remote,
			Host:    r.identity.Host,
			Author:  r.identity.User,
			Date:    info.CommitDate,
			Summary: info.Summary,
			Changes: info.ChangedPaths,
			Branches: trackedcommit.Branches{
				Local:  trackedcommit.NewBranchSet(localBranches...),
				Remote: trackedcommit.NewBranchSet(remoteBranches...),
			},
		}
	}

	if isRemote {
		rec.Branches.Remote.Add(branch)
	} else {
		rec.Branches.Local.Add(branch)
	}
	bySha[revision] = rec
	return nil
}

// buildUncommittedRecord builds the synthetic uncommitted record for the
// caller's identity, preserving any still-unresolved claims.
func (r *Repository) buildUncommittedRecord(remote string) (trackedcommit.Record, error) {
	changes, err := r.git.WorkingChanges(r.cfg.TrackedExtensions)
	if err != nil {
		return trackedcommit.Record{}, GitFailureError{Err: err}
	}

	var oldClaims []string
	for _, rec := range r.snapshot {
		if rec.IsUncommitted() && r.isMine(rec) && rec.Remote == remote {
			oldClaims = rec.Claims
			break
		}
	}

	changeSet := map[string]bool{}
	for _, c := range changes {
		changeSet[c] = true
	}

	preserved := make([]string, 0, len(oldClaims))
	for _, claim := range oldClaims {
		if changeSet[claim] {
			// The claimant has begun editing; the claim graduates into changes.
			continue
		}
		if !r.git.FileExistsOnDisk(claim) {
			continue
		}
		preserved = append(preserved, claim)
	}

	return trackedcommit.Record{
		Remote:  remote,
		Host:    r.identity.Host,
		Author:  r.identity.User,
		Changes: changes,
		Claims:  preserved,
	}, nil
}

// enforcePermissions sets every tracked-extension file in the working tree
// writable iff (a) it is in the changes or claims of the caller's own
// uncommitted record in mine, or (b) no other identity's record in merged
// marks it in changes. Every other file is set read-only. merged is the
// store's full record set after mine has replaced this clone's prior
// contribution, so a file another clone committed as changed in this same
// round is already accounted for.
func (r *Repository) enforcePermissions(mine, merged []trackedcommit.Record) error {
	owned := map[string]bool{}
	for _, rec := range mine {
		if !rec.IsUncommitted() {
			continue
		}
		for _, c := range rec.Changes {
			owned[c] = true
		}
		for _, c := range rec.Claims {
			owned[c] = true
		}
	}

	blockedElsewhere := map[string]bool{}
	for _, rec := range merged {
		if r.isMine(rec) {
			continue
		}
		for _, c := range rec.Changes {
			blockedElsewhere[c] = true
		}
	}

	files, err := r.git.TrackedFiles(r.cfg.TrackedExtensions)
	if err != nil {
		return GitFailureError{Err: err}
	}

	for _, path := range files {
		writable := owned[path] || !blockedElsewhere[path]
		if err := r.git.Chmod(path, writable); err != nil {
			return PermissionDeniedError{Path: path, Err: err}
		}
	}
	return nil
}

// StatusEntry is one line of `gitalong status` output.
type StatusEntry struct {
	Spread         spread.Bits
	Path           string
	Sha            string
	LocalBranches  []string
	RemoteBranches []string
	Host           string
	Author         string
}

// bestRecord returns the highest-priority record mentioning path, per §4.5:
// MINE_UNCOMMITTED > OTHER_UNCOMMITTED > any real-commit record, newest
// commit date breaking ties among real commits.
func (r *Repository) bestRecord(path string) (trackedcommit.Record, bool) {
	var mineUncommitted, otherUncommitted *trackedcommit.Record
	var best *trackedcommit.Record

	for i := range r.snapshot {
		rec := r.snapshot[i]
		if !containsPath(rec, path) {
			continue
		}

		if rec.IsUncommitted() {
			if r.isMine(rec) {
				mineUncommitted = &rec
			} else {
				otherUncommitted = &rec
			}
			continue
		}

		if best == nil || rec.Date > best.Date {
			best = &rec
		}
	}

	if mineUncommitted != nil {
		return *mineUncommitted, true
	}
	if otherUncommitted != nil {
		return *otherUncommitted, true
	}
	if best != nil {
		return *best, true
	}
	return trackedcommit.Record{}, false
}

func containsPath(rec trackedcommit.Record, path string) bool {
	for _, c := range rec.Changes {
		if c == path {
			return true
		}
	}
	for _, c := range rec.Claims {
		if c == path {
			return true
		}
	}
	return false
}

// LastCommit returns the highest-priority record mentioning path, or nil if
// no record mentions it anywhere in the current snapshot.
func (r *Repository) LastCommit(ctx context.Context, path string) (*trackedcommit.Record, error) {
	if r.snapshot == nil {
		if err := r.refreshSnapshot(ctx); err != nil {
			return nil, err
		}
	}

	rec, found := r.bestRecord(path)
	if !found {
		return nil, nil
	}
	return &rec, nil
}

// Status answers (spread, path, sha, branches, host, author) for each path,
// per §4.5/§6, using the Batch Executor so every path's lookup runs under
// the same snapshot.
func (r *Repository) Status(ctx context.Context, paths []string) ([]StatusEntry, error) {
	if r.snapshot == nil {
		if err := r.refreshSnapshot(ctx); err != nil {
			return nil, err
		}
	}

	activeBranch, err := r.git.ActiveBranch()
	if err != nil {
		return nil, GitFailureError{Err: err}
	}

	results, err := batch.Run(ctx, r.batch, paths, func(_ context.Context, path string) (StatusEntry, error) {
		rec, found := r.bestRecord(path)
		if !found {
			return StatusEntry{Path: path}, nil
		}

		bits := spread.Classify(rec, r.identity, activeBranch)
		return StatusEntry{
			Spread:         bits,
			Path:           path,
			Sha:            rec.Sha,
			LocalBranches:  rec.Branches.Local.Slice(),
			RemoteBranches: rec.Branches.Remote.Slice(),
			Host:           rec.Host,
			Author:         rec.Author,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]StatusEntry, len(results))
	for i, res := range results {
		entries[i] = res.Value
	}
	return entries, nil
}

// ClaimResult is the outcome of attempting to claim a single path.
type ClaimResult struct {
	Path    string
	Claimed bool
	// Blocking is the record that prevented the claim, set only when Claimed is false.
	Blocking *trackedcommit.Record
}

// Claim attempts to reserve exclusive edit rights to each path, per §4.5.
// Claim attempts for different paths are independent; partial success is
// reported per-path rather than failing the whole batch.
func (r *Repository) Claim(ctx context.Context, paths []string) ([]ClaimResult, error) {
	if err := r.store.Lock(); err != nil {
		return nil, StoreUnavailableError{Err: err}
	}
	defer r.store.Unlock()

	if err := r.refreshSnapshot(ctx); err != nil {
		return nil, err
	}

	remote, err := r.remote()
	if err != nil {
		return nil, err
	}

	mine, mineIdx := r.findMineUncommitted(remote)

	results := make([]ClaimResult, len(paths))
	claimed := make([]string, 0, len(paths))
	for i, path := range paths {
		if blocker, found := r.bestRecord(path); found && !r.isMine(blocker) {
			results[i] = ClaimResult{Path: path, Claimed: false, Blocking: &blocker}
			continue
		}

		if r.cfg.ModifyPermissions {
			if err := r.git.Chmod(path, true); err != nil {
				results[i] = ClaimResult{Path: path, Claimed: false}
				continue
			}
		}

		results[i] = ClaimResult{Path: path, Claimed: true}
		claimed = append(claimed, path)
	}

	if len(claimed) == 0 {
		return results, nil
	}

	mine.Remote = remote
	mine.Host = r.identity.Host
	mine.Author = r.identity.User
	mine.Claims = unionStrings(mine.Claims, claimed)

	var next []trackedcommit.Record
	if mineIdx >= 0 {
		next = append(append([]trackedcommit.Record{}, r.snapshot[:mineIdx]...), r.snapshot[mineIdx+1:]...)
	} else {
		next = append([]trackedcommit.Record{}, r.snapshot...)
	}
	next = append(next, mine)

	if err := r.store.Commit(ctx, remote, r.identity.Host, r.identity.User, []trackedcommit.Record{mine}); err != nil {
		return nil, StoreConflictError{Attempts: store.DefaultRetryPolicy.MaxAttempts, Err: err}
	}
	r.snapshot = next

	return results, nil
}

func (r *Repository) findMineUncommitted(remote string) (trackedcommit.Record, int) {
	for i, rec := range r.snapshot {
		if rec.IsUncommitted() && r.isMine(rec) && rec.Remote == remote {
			return rec, i
		}
	}
	return trackedcommit.Record{}, -1
}

func unionStrings(a, b []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ReleaseResult is the outcome of attempting to release a single path.
type ReleaseResult struct {
	Path     string
	Released bool
}

// Release removes paths from the caller's claims, per §4.5. A path already
// modified locally fails its own release, since local modification implies
// an active claim only Update can clear.
func (r *Repository) Release(ctx context.Context, paths []string) ([]ReleaseResult, error) {
	if err := r.store.Lock(); err != nil {
		return nil, StoreUnavailableError{Err: err}
	}
	defer r.store.Unlock()

	if err := r.refreshSnapshot(ctx); err != nil {
		return nil, err
	}

	remote, err := r.remote()
	if err != nil {
		return nil, err
	}

	changes, err := r.git.WorkingChanges(r.cfg.TrackedExtensions)
	if err != nil {
		return nil, GitFailureError{Err: err}
	}
	dirty := map[string]bool{}
	for _, c := range changes {
		dirty[c] = true
	}

	mine, mineIdx := r.findMineUncommitted(remote)
	if mineIdx < 0 {
		results := make([]ReleaseResult, len(paths))
		for i, p := range paths {
			results[i] = ReleaseResult{Path: p, Released: !dirty[p]}
		}
		return results, nil
	}

	results := make([]ReleaseResult, len(paths))
	remaining := map[string]bool{}
	for _, c := range mine.Claims {
		remaining[c] = true
	}

	for i, path := range paths {
		if dirty[path] {
			results[i] = ReleaseResult{Path: path, Released: false}
			continue
		}
		delete(remaining, path)
		if r.cfg.ModifyPermissions {
			_ = r.git.Chmod(path, false)
		}
		results[i] = ReleaseResult{Path: path, Released: true}
	}

	claims := make([]string, 0, len(remaining))
	for c := range remaining {
		claims = append(claims, c)
	}
	sort.Strings(claims)
	mine.Claims = claims

	next := append(append([]trackedcommit.Record{}, r.snapshot[:mineIdx]...), r.snapshot[mineIdx+1:]...)
	if !mine.IsGarbage() {
		next = append(next, mine)
	}

	if err := r.store.Commit(ctx, remote, r.identity.Host, r.identity.User, []trackedcommit.Record{mine}); err != nil {
		return nil, StoreConflictError{Attempts: store.DefaultRetryPolicy.MaxAttempts, Err: err}
	}
	r.snapshot = next

	return results, nil
}


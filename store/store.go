// Package store implements the Store Backend: an abstract mutable set of
// Tracked Commits shared across clones, with two variants — a Git-backed
// repository and a hosted JSON document over HTTP.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/douglaslassance/gitalong/trackedcommit"
)

// Backend is the capability interface every store variant implements.
// Selection between variants is by URL shape (see New), not inheritance.
type Backend interface {
	// Snapshot performs an atomic, consistent read of every record
	// currently published to the store.
	Snapshot(ctx context.Context) ([]trackedcommit.Record, error)

	// Commit atomically replaces every record published by (host, author)
	// for remote with mine, merged with the latest observed remote state
	// per the §4.3 merge rule: every existing record matching that
	// publisher identity is dropped, mine is appended in its place, and
	// records belonging to any other identity are preserved untouched.
	Commit(ctx context.Context, remote, host, author string, mine []trackedcommit.Record) error

	// Lock acquires cross-process mutual exclusion over this backend's
	// mutating operations, serializing concurrent invocations from the
	// same clone.
	Lock() error

	// Unlock releases a lock acquired by Lock.
	Unlock() error
}

// RetryPolicy configures the bounded exponential backoff used by both store
// variants when a write is rejected (non-fast-forward push, HTTP conflict).
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Factor      float64
	MaxDelay    time.Duration
}

// DefaultRetryPolicy is the §4.3/§5 default: 5 attempts, 100ms base delay,
// 2x backoff factor, capped at 2s.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 5,
	BaseDelay:   100 * time.Millisecond,
	Factor:      2,
	MaxDelay:    2 * time.Second,
}

// Delay returns the backoff duration before the given 0-indexed retry attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 0; i < attempt; i++ {
		d = time.Duration(float64(d) * p.Factor)
		if d > p.MaxDelay {
			return p.MaxDelay
		}
	}
	return d
}

// Headers is a set of HTTP header name/value pairs, whose values may
// reference an environment variable by a leading '$'.
type Headers map[string]string

// Resolve returns a copy of h with every "$NAME" value replaced by the
// current value of environment variable NAME, via the given lookup func
// (typically os.LookupEnv).
func (h Headers) Resolve(lookup func(string) (string, bool)) Headers {
	resolved := make(Headers, len(h))
	for k, v := range h {
		if strings.HasPrefix(v, "$") {
			if env, ok := lookup(strings.TrimPrefix(v, "$")); ok {
				v = env
			}
		}
		resolved[k] = v
	}
	return resolved
}

// merge applies the §4.3 merge rule: persist (remote \ mineOld) ∪ mineNew,
// where mineOld is every existing record published by (host, author) for
// remoteURL — not merely the records whose key happens to reappear in
// mineNew. This matters because a record's key for a real commit is
// (remote, sha, ""): once a branch advances, its old tip's sha no longer
// appears in mineNew at all, so keying removal off mineNew's keys would
// leave the stale tip in the store forever. Removal is keyed on publisher
// identity instead, so every one of the publisher's prior records is
// replaced by its current contribution, whatever shape that takes.
func merge(remote []trackedcommit.Record, host, author, remoteURL string, mineNew []trackedcommit.Record) []trackedcommit.Record {
	merged := make([]trackedcommit.Record, 0, len(remote)+len(mineNew))
	for _, r := range remote {
		if r.Host == host && r.Author == author && r.Remote == remoteURL {
			continue
		}
		merged = append(merged, r)
	}
	for _, r := range mineNew {
		if r.IsGarbage() {
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

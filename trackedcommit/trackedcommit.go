// Package trackedcommit implements the Tracked Commit value object: one
// record published by one clone into the shared store, either a real Git
// commit projected with extra fields or a synthetic "uncommitted" record.
package trackedcommit

import (
	"encoding/json"
	"sort"
)

// BranchSet is an unordered set of branch names that always serializes as a
// sorted JSON array, so round-tripping a record never reorders its branches.
type BranchSet map[string]struct{}

// NewBranchSet builds a BranchSet from a slice of branch names.
func NewBranchSet(names ...string) BranchSet {
	set := make(BranchSet, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is a member of the set.
func (s BranchSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Add inserts name into the set.
func (s BranchSet) Add(name string) {
	if name != "" {
		s[name] = struct{}{}
	}
}

// Union returns a new set containing the members of both s and other.
func (s BranchSet) Union(other BranchSet) BranchSet {
	out := make(BranchSet, len(s)+len(other))
	for name := range s {
		out[name] = struct{}{}
	}
	for name := range other {
		out[name] = struct{}{}
	}
	return out
}

// Slice returns the set's members in sorted order.
func (s BranchSet) Slice() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON renders the set as a sorted JSON array.
func (s BranchSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON populates the set from a JSON array of branch names.
func (s *BranchSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewBranchSet(names...)
	return nil
}

// Branches holds the local and remote-tracking reachability of a commit, as
// observed by its publisher.
type Branches struct {
	Local  BranchSet `json:"local"`
	Remote BranchSet `json:"remote"`
}

// Record is the central value object of the store: one Tracked Commit.
type Record struct {
	// Sha is the 40-char Git hash, or "" for a synthetic uncommitted record.
	Sha string `json:"sha"`

	// Remote is the URL of the managed repository's origin remote.
	Remote string `json:"remote"`

	// Branches holds local/remote-tracking reachability for this commit.
	Branches Branches `json:"branches"`

	// Host is the publisher's hostname.
	Host string `json:"host"`

	// Author is the publisher's identity (git user.email).
	Author string `json:"author"`

	// Date is commit provenance metadata; informational only.
	Date string `json:"date"`

	// Summary is the commit's subject line; informational only.
	Summary string `json:"summary"`

	// Changes is the ordered list of repository-relative paths this record covers.
	Changes []string `json:"changes"`

	// Claims is the ordered list of paths explicitly claimed but not yet
	// modified. Only meaningful on uncommitted records.
	Claims []string `json:"claims"`

	// extra preserves any JSON fields not recognized above, so a future
	// version's additions survive a read-merge-write cycle untouched.
	extra map[string]json.RawMessage
}

// recordAlias avoids infinite recursion when embedding Record's fields in
// custom (Un)MarshalJSON implementations.
type recordAlias Record

// IsUncommitted reports whether this record represents uncommitted work
// rather than a real commit.
func (r Record) IsUncommitted() bool {
	return r.Sha == ""
}

// IsGarbage reports whether the record has nothing left to publish: no
// changes and no claims. Per the store invariants, such a record must be
// dropped by its owner on the next publish.
func (r Record) IsGarbage() bool {
	return len(r.Changes) == 0 && len(r.Claims) == 0
}

// Key returns the field tuple records are deduplicated by: real commits by
// (remote, sha); uncommitted records by (remote, host, author).
func (r Record) Key() [3]string {
	if r.IsUncommitted() {
		return [3]string{r.Remote, r.Host, r.Author}
	}
	return [3]string{r.Remote, r.Sha, ""}
}

// Equal implements the §4.2 equality rule: (remote, sha, host, author) for
// real commits; (remote, host, author) only when sha is empty.
func (r Record) Equal(other Record) bool {
	if r.Remote != other.Remote || r.Host != other.Host || r.Author != other.Author {
		return false
	}
	if r.IsUncommitted() || other.IsUncommitted() {
		return r.IsUncommitted() == other.IsUncommitted()
	}
	return r.Sha == other.Sha
}

// MergeBranches returns a copy of r whose local and remote branch sets are
// the union of r's and other's; no other field of other is taken.
func (r Record) MergeBranches(other Record) Record {
	merged := r
	merged.Branches.Local = r.Branches.Local.Union(other.Branches.Local)
	merged.Branches.Remote = r.Branches.Remote.Union(other.Branches.Remote)
	return merged
}

// MarshalJSON serializes the record, re-emitting any opaque fields captured
// by a prior UnmarshalJSON call.
func (r Record) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(recordAlias(r))
	if err != nil {
		return nil, err
	}

	if len(r.extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range r.extra {
		if _, known := merged[k]; !known {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// UnmarshalJSON deserializes the record, preserving any fields not present
// on recordAlias in r.extra so they survive a future re-marshal untouched.
func (r *Record) UnmarshalJSON(data []byte) error {
	var alias recordAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	known := knownRecordFields()
	extra := map[string]json.RawMessage{}
	for k, v := range raw {
		if !known[k] {
			extra[k] = v
		}
	}

	*r = Record(alias)
	if len(extra) > 0 {
		r.extra = extra
	}
	return nil
}

func knownRecordFields() map[string]bool {
	return map[string]bool{
		"sha": true, "remote": true, "branches": true, "host": true,
		"author": true, "date": true, "summary": true, "changes": true,
		"claims": true,
	}
}

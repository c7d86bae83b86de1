package spread_test

import (
	"testing"

	"github.com/douglaslassance/gitalong/identity"
	"github.com/douglaslassance/gitalong/spread"
	"github.com/douglaslassance/gitalong/trackedcommit"
	"github.com/stretchr/testify/assert"
)

var me = identity.Identity{Host: "workstation", User: "me@example.com"}

// TestClassifyCommittedAndPushed mirrors the "committed-and-pushed file"
// end-to-end scenario: the record lives on a branch other than the one
// currently checked out, both locally and on the remote.
func TestClassifyCommittedAndPushed(t *testing.T) {
	r := trackedcommit.Record{
		Sha:    "abc123",
		Host:   me.Host,
		Author: me.User,
		Branches: trackedcommit.Branches{
			Local:  trackedcommit.NewBranchSet("feature"),
			Remote: trackedcommit.NewBranchSet("feature"),
		},
	}

	b := spread.Classify(r, me, "main")
	assert.Equal(t, "--+-+---", b.String())
}

// TestClassifyLocalOnly mirrors the "locally-only committed file" scenario:
// committed on the active branch, never pushed.
func TestClassifyLocalOnly(t *testing.T) {
	r := trackedcommit.Record{
		Sha:    "abc123",
		Host:   me.Host,
		Author: me.User,
		Branches: trackedcommit.Branches{
			Local: trackedcommit.NewBranchSet("main"),
		},
	}

	b := spread.Classify(r, me, "main")
	assert.Equal(t, "-+------", b.String())
}

// TestClassifyUncommittedTracked mirrors the "uncommitted tracked file" scenario.
func TestClassifyUncommittedTracked(t *testing.T) {
	r := trackedcommit.Record{Host: me.Host, Author: me.User}

	b := spread.Classify(r, me, "main")
	assert.Equal(t, "+-------", b.String())
}

// TestClassifyUntrackedExtension mirrors the "untracked-extension file"
// scenario: no record exists for the path at all.
func TestClassifyUntrackedExtension(t *testing.T) {
	b := spread.Classify(trackedcommit.Record{}, me, "main")
	assert.Equal(t, "--------", b.String())
}

func TestClassifyOtherUncommitted(t *testing.T) {
	r := trackedcommit.Record{Host: "other-host", Author: "other@example.com"}

	b := spread.Classify(r, me, "main")
	assert.True(t, b.Has(spread.OtherUncommitted))
	assert.False(t, b.Has(spread.MineUncommitted))
}

func TestClassifyDetachedHeadUnsetsMatchingBits(t *testing.T) {
	r := trackedcommit.Record{
		Sha:    "abc123",
		Host:   me.Host,
		Author: me.User,
		Branches: trackedcommit.Branches{
			Local:  trackedcommit.NewBranchSet("main"),
			Remote: trackedcommit.NewBranchSet("main"),
		},
	}

	b := spread.Classify(r, me, "")
	assert.False(t, b.Has(spread.MineActiveBranch))
	assert.False(t, b.Has(spread.RemoteMatchingBranch))
	assert.True(t, b.Has(spread.MineOtherBranch))
	assert.True(t, b.Has(spread.RemoteOtherBranch))
}

// TestClassifyClaimConflict mirrors the "claim conflict" scenario: clone B
// observes clone A's uncommitted record advertising a claim.
func TestClassifyClaimConflict(t *testing.T) {
	cloneA := identity.Identity{Host: "host-a", User: "a@example.com"}
	record := trackedcommit.Record{Host: cloneA.Host, Author: cloneA.User, Claims: []string{"a.png"}}

	cloneB := identity.Identity{Host: "host-b", User: "b@example.com"}
	b := spread.Classify(record, cloneB, "main")
	assert.True(t, b.Has(spread.OtherUncommitted))
}

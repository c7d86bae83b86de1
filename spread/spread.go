// Package spread classifies where a Tracked Commit lives across the fleet:
// locally, on matching or other remote branches, on other clones, or as
// uncommitted work. The classifier is a pure function of its inputs.
package spread

import (
	"strings"

	"github.com/douglaslassance/gitalong/identity"
	"github.com/douglaslassance/gitalong/trackedcommit"
)

// Bits is an 8-bit set describing every location a commit was observed in.
// Multiple bits can be set simultaneously.
type Bits uint8

const (
	// MineUncommitted is set when the record is the caller's own uncommitted record.
	MineUncommitted Bits = 1 << iota

	// MineActiveBranch is set when the record is the caller's and reachable
	// from the caller's active branch.
	MineActiveBranch

	// MineOtherBranch is set when the record is the caller's and reachable
	// from a local branch other than the active one.
	MineOtherBranch

	// RemoteMatchingBranch is set when the record is reachable from a
	// remote-tracking branch whose name matches the caller's active branch.
	RemoteMatchingBranch

	// RemoteOtherBranch is set when the record is reachable from a
	// remote-tracking branch other than the one matching the active branch.
	RemoteOtherBranch

	// OtherOtherBranch is set when the record belongs to another identity and
	// is reachable from a local branch other than the caller's active one.
	OtherOtherBranch

	// OtherMatchingBranch is set when the record belongs to another identity
	// and is reachable from a branch matching the caller's active branch.
	OtherMatchingBranch

	// OtherUncommitted is set when the record is another identity's uncommitted record.
	OtherUncommitted
)

// names holds the fixed left-to-right bit order used by String, matching the
// order mandated for `gitalong status` output.
var names = [8]Bits{
	MineUncommitted,
	MineActiveBranch,
	MineOtherBranch,
	RemoteMatchingBranch,
	RemoteOtherBranch,
	OtherOtherBranch,
	OtherMatchingBranch,
	OtherUncommitted,
}

// String renders the bitset as eight characters in the fixed bit order, '+'
// where the bit is set and '-' otherwise.
func (b Bits) String() string {
	var sb strings.Builder
	for _, bit := range names {
		if b&bit != 0 {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// Has reports whether every bit set in mask is also set in b.
func (b Bits) Has(mask Bits) bool {
	return b&mask == mask
}

// Classify computes the spread of a record for the given identity and
// active branch. An empty activeBranch denotes a detached HEAD; in that
// case MineActiveBranch and RemoteMatchingBranch are never set, since there
// is no branch name to match against.
func Classify(r trackedcommit.Record, id identity.Identity, activeBranch string) Bits {
	var b Bits

	mine := r.Host == id.Host && r.Author == id.User
	uncommitted := r.Sha == ""

	if uncommitted && mine {
		b |= MineUncommitted
	}
	if uncommitted && !mine {
		b |= OtherUncommitted
	}

	hasOtherLocal := hasOtherThan(r.Branches.Local, activeBranch)
	matchesLocal := activeBranch != "" && r.Branches.Local.Contains(activeBranch)

	if r.Host == id.Host {
		if matchesLocal {
			b |= MineActiveBranch
		}
		if hasOtherLocal {
			b |= MineOtherBranch
		}
	} else {
		if matchesLocal {
			b |= OtherMatchingBranch
		}
		if hasOtherLocal {
			b |= OtherOtherBranch
		}
	}

	if activeBranch != "" && r.Branches.Remote.Contains(activeBranch) {
		b |= RemoteMatchingBranch
	}
	if hasOtherThan(r.Branches.Remote, activeBranch) {
		b |= RemoteOtherBranch
	}

	return b
}

func hasOtherThan(set trackedcommit.BranchSet, exclude string) bool {
	for _, name := range set.Slice() {
		if name != exclude {
			return true
		}
	}
	return false
}

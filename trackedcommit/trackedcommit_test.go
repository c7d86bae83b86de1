package trackedcommit_test

import (
	"encoding/json"
	"testing"

	"github.com/douglaslassance/gitalong/trackedcommit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchSetRoundTripsSorted(t *testing.T) {
	set := trackedcommit.NewBranchSet("feature/b", "main", "feature/a")

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `["feature/a","feature/b","main"]`, string(data))

	var decoded trackedcommit.BranchSet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Contains("main"))
	assert.Equal(t, []string{"feature/a", "feature/b", "main"}, decoded.Slice())
}

func TestEqualUncommitted(t *testing.T) {
	a := trackedcommit.Record{Remote: "origin", Host: "h1", Author: "a@x.com"}
	b := trackedcommit.Record{Remote: "origin", Host: "h1", Author: "a@x.com", Summary: "different"}
	c := trackedcommit.Record{Remote: "origin", Host: "h2", Author: "a@x.com"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestEqualCommitted(t *testing.T) {
	a := trackedcommit.Record{Remote: "origin", Sha: "abc", Host: "h1", Author: "a@x.com"}
	b := trackedcommit.Record{Remote: "origin", Sha: "abc", Host: "h1", Author: "a@x.com"}
	c := trackedcommit.Record{Remote: "origin", Sha: "def", Host: "h1", Author: "a@x.com"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestIsGarbage(t *testing.T) {
	assert.True(t, trackedcommit.Record{}.IsGarbage())
	assert.False(t, trackedcommit.Record{Changes: []string{"a.png"}}.IsGarbage())
	assert.False(t, trackedcommit.Record{Claims: []string{"a.png"}}.IsGarbage())
}

func TestMergeBranches(t *testing.T) {
	a := trackedcommit.Record{
		Branches: trackedcommit.Branches{Local: trackedcommit.NewBranchSet("main")},
	}
	b := trackedcommit.Record{
		Branches: trackedcommit.Branches{Local: trackedcommit.NewBranchSet("feature")},
	}

	merged := a.MergeBranches(b)
	assert.ElementsMatch(t, []string{"main", "feature"}, merged.Branches.Local.Slice())
}

func TestUnmarshalPreservesUnknownFields(t *testing.T) {
	raw := `{
		"sha": "abc123",
		"remote": "origin",
		"branches": {"local": ["main"], "remote": []},
		"host": "host1",
		"author": "a@x.com",
		"date": "2024-01-01T00:00:00Z",
		"summary": "initial",
		"changes": ["a.png"],
		"claims": [],
		"futureField": "keepme"
	}`

	var record trackedcommit.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &record))

	out, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "keepme", decoded["futureField"])
}

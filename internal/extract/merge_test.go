package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"stixify/internal/stix"
)

func TestMergeFirstSeenWins(t *testing.T) {
	a := stix.Bundle{Type: "bundle", ID: "bundle--aaaa1234567", Objects: []stix.Object{
		{"id": "malware--x123456789", "type": "malware", "name": "A"},
	}}
	b := stix.Bundle{Type: "bundle", ID: "bundle--bbbb1234567", Objects: []stix.Object{
		{"id": "malware--x123456789", "type": "malware", "name": "B"},
		{"id": "tool--y1234567890", "type": "tool", "name": "C"},
	}}

	merged := MergeBundles([]stix.Bundle{a, b})
	require.Len(t, merged.Objects, 2)
	require.Equal(t, "malware--x123456789", merged.Objects[0].ID())
	require.Equal(t, "A", merged.Objects[0].Name(), "earlier bundle's version wins")
	require.Equal(t, "tool--y1234567890", merged.Objects[1].ID())
	require.Equal(t, "C", merged.Objects[1].Name())
}

func TestMergeFreshBundleID(t *testing.T) {
	a := stix.NewBundle(nil)
	merged := MergeBundles([]stix.Bundle{a})
	require.NotEqual(t, a.ID, merged.ID)
	require.True(t, strings.HasPrefix(merged.ID, "bundle--"))
}

func TestMergeSkipsObjectsWithoutID(t *testing.T) {
	a := stix.Bundle{Type: "bundle", ID: "bundle--aaaa1234567", Objects: []stix.Object{
		{"type": "malware", "name": "anonymous"},
		{"id": "tool--y1234567890", "type": "tool"},
	}}
	merged := MergeBundles([]stix.Bundle{a})
	require.Len(t, merged.Objects, 1)
}

func TestMergeEmptyInput(t *testing.T) {
	merged := MergeBundles(nil)
	require.Equal(t, "bundle", merged.Type)
	require.NotNil(t, merged.Objects)
	require.Empty(t, merged.Objects)
}

func TestMergeDoesNotMutateSources(t *testing.T) {
	a := stix.Bundle{Type: "bundle", ID: "bundle--aaaa1234567", Objects: []stix.Object{
		{"id": "malware--x123456789", "type": "malware"},
	}}
	_ = MergeBundles([]stix.Bundle{a, a})
	require.Len(t, a.Objects, 1)
	require.Equal(t, "bundle--aaaa1234567", a.ID)
}

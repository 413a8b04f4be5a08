package stix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := NewID("malware")
	require.True(t, strings.HasPrefix(id, "malware--"))
	require.True(t, WellFormedID(id))

	// Empty type still yields a usable id.
	id = NewID("")
	require.True(t, strings.HasPrefix(id, "unknown--"))
}

func TestWellFormedID(t *testing.T) {
	require.True(t, WellFormedID("malware--1234567890"))
	require.True(t, WellFormedID("threat-actor--d0372943-1579-4117-ae8c-2ba3897081a9"))
	require.False(t, WellFormedID(""))
	require.False(t, WellFormedID("malware"))
	require.False(t, WellFormedID("malware--short"))
	require.False(t, WellFormedID("--1234567890"))
}

func TestNewBundleShape(t *testing.T) {
	b := NewBundle(nil)
	require.Equal(t, "bundle", b.Type)
	require.True(t, strings.HasPrefix(b.ID, "bundle--"))
	require.NotNil(t, b.Objects)
	require.Empty(t, b.Objects)
}

func TestMarshalIndent(t *testing.T) {
	b := Bundle{
		Type:    "bundle",
		ID:      "bundle--abc12345678",
		Objects: []Object{{"type": "malware", "id": "malware--1234567890", "name": "TrickBot <v2>"}},
	}
	out, err := b.MarshalIndent()
	require.NoError(t, err)
	s := string(out)
	require.Contains(t, s, "\n  \"id\": \"bundle--abc12345678\"")
	// HTML escaping stays off.
	require.Contains(t, s, "TrickBot <v2>")
	require.NotContains(t, s, "\\u003c")
}

func TestObjectAccessors(t *testing.T) {
	o := Object{
		"type":              "relationship",
		"id":                "relationship--aaaaaaaaaa",
		"relationship_type": "uses",
		"source_ref":        "threat-actor--x123456789",
		"target_ref":        "malware--y1234567890",
	}
	require.Equal(t, "relationship", o.Type())
	rt, src, dst := o.Relationship()
	require.Equal(t, "uses", rt)
	require.Equal(t, "threat-actor--x123456789", src)
	require.Equal(t, "malware--y1234567890", dst)

	// Non-string fields read as empty rather than panicking.
	bad := Object{"type": 7, "id": nil}
	require.Equal(t, "", bad.Type())
	require.Equal(t, "", bad.ID())
	require.Equal(t, "", bad.Name())
}

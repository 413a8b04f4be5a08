package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecoverStrict(t *testing.T) {
	v, ok := Recover(`[{"type":"malware","id":"malware--1234567890"}]`)
	require.True(t, ok)
	arr, isArr := v.([]any)
	require.True(t, isArr)
	require.Len(t, arr, 1)
}

func TestRecoverRepairsTruncatedArray(t *testing.T) {
	// Two complete objects, missing the closing brace of the second and the
	// closing bracket of the array.
	in := `[{"type":"malware","id":"malware--1234567890"},{"type":"threat-actor","id":"threat-actor--0987654321"`
	v, ok := Recover(in)
	require.True(t, ok)
	arr, isArr := v.([]any)
	require.True(t, isArr)
	require.Len(t, arr, 2)

	ids := []string{}
	for _, item := range arr {
		m := item.(map[string]any)
		ids = append(ids, m["id"].(string))
	}
	require.Contains(t, ids, "malware--1234567890")
	require.Contains(t, ids, "threat-actor--0987654321")
}

func TestRecoverRepairsTruncatedObject(t *testing.T) {
	in := `{"type":"bundle","id":"bundle--abc12345678","objects":[{"type":"tool","id":"tool--1234567890"}`
	v, ok := Recover(in)
	require.True(t, ok)
	m, isMap := v.(map[string]any)
	require.True(t, isMap)
	require.Equal(t, "bundle", m["type"])
	require.Len(t, m["objects"], 1)
}

func TestRecoverRepairIgnoresBracesInStrings(t *testing.T) {
	// The description contains literal braces; a naive character count would
	// append the wrong number of closers.
	in := `[{"type":"malware","id":"malware--1234567890","description":"uses {config} blobs"},{"type":"tool","id":"tool--0987654321"`
	v, ok := Recover(in)
	require.True(t, ok)
	arr := v.([]any)
	require.Len(t, arr, 2)
}

func TestRecoverSalvagesFragments(t *testing.T) {
	// One well-formed object followed by corrupted garbage: the good object
	// survives, the broken one is dropped silently.
	in := `[{"type":"malware","id":"malware--1234567890","name":"TrickBot"}, {"type":"tool","name": broken!!}`
	v, ok := Recover(in)
	require.True(t, ok)
	arr, isArr := v.([]any)
	require.True(t, isArr)
	require.Len(t, arr, 1)
	m := arr[0].(map[string]any)
	require.Equal(t, "malware--1234567890", m["id"])
}

func TestRecoverSalvageHandlesNestedObjects(t *testing.T) {
	in := `garbage {"type":"indicator","id":"indicator--1234567890","meta":{"nested":{"deep":true}}} more garbage {"oops": }`
	v, ok := Recover(in)
	require.True(t, ok)
	arr := v.([]any)
	require.Len(t, arr, 1)
	m := arr[0].(map[string]any)
	require.Equal(t, "indicator", m["type"])
}

func TestRecoverFails(t *testing.T) {
	for _, in := range []string{"", "   ", "no json here", "{broken", `{"a": }`} {
		_, ok := Recover(in)
		require.False(t, ok, "input %q should not recover", in)
	}
}

func TestRecoverRepairOfBareBrackets(t *testing.T) {
	// Pathological but truncated input still repairs into valid JSON; the
	// normalizer later reduces it to an empty bundle.
	v, ok := Recover("[[[")
	require.True(t, ok)
	require.IsType(t, []any{}, v)
}

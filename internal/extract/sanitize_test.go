package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeStripsMarkdownFences(t *testing.T) {
	in := "```json\n{\"type\":\"bundle\",\"id\":\"bundle--abc12345678\",\"objects\":[]}\n```"
	require.Equal(t, `{"type":"bundle","id":"bundle--abc12345678","objects":[]}`, Sanitize(in))
}

func TestSanitizeStripsBareFences(t *testing.T) {
	in := "```\n[{\"type\":\"malware\"}]\n```"
	require.Equal(t, `[{"type":"malware"}]`, Sanitize(in))
}

func TestSanitizeSkipsLeadingProse(t *testing.T) {
	in := "Here is the extracted intelligence:\n{\"type\":\"malware\",\"name\":\"TrickBot\"}"
	require.Equal(t, `{"type":"malware","name":"TrickBot"}`, Sanitize(in))

	in = "The objects are [{\"type\":\"tool\"}] as requested."
	require.Equal(t, `[{"type":"tool"}] as requested.`, Sanitize(in))
}

func TestSanitizeNoJSONStartReturnsText(t *testing.T) {
	require.Equal(t, "no json here at all", Sanitize("  no json here at all\n"))
	require.Equal(t, "", Sanitize("   \n\t"))
}

func TestSanitizeAlreadyClean(t *testing.T) {
	in := `{"type":"bundle","objects":[]}`
	require.Equal(t, in, Sanitize(in))
}

func TestSanitizeFenceGluedToContent(t *testing.T) {
	require.Equal(t, `{"a":1}`, Sanitize("```json{\"a\":1}```"))
}

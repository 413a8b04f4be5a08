package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.Contains(t, c.Flavors(), DefaultFlavor)
	require.Contains(t, c.Flavors(), "openrouter")
	require.Contains(t, c.Flavors(), "gemini")
}

func TestRenderSubstitutesText(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	doc := "APT28 deployed X-Agent against the ministry."
	out := c.Render("openrouter", doc)
	require.Contains(t, out, doc)
	require.NotContains(t, out, Placeholder)
}

func TestRenderUnknownFlavorFallsBack(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	doc := "some document text"
	got := c.Render("no-such-flavor", doc)
	want := c.Render(DefaultFlavor, doc)
	require.Equal(t, want, got)
	require.True(t, strings.Contains(got, doc))
}

// Package prompt loads the static extraction instruction templates. Templates
// are embedded at build time and the catalog is parsed once; after Load the
// catalog is read-only.
package prompt

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates
var templateFS embed.FS

// Placeholder is the token in every template that the document text replaces.
const Placeholder = "[TEXT_CONTENT]"

// DefaultFlavor is used when a provider has no dedicated template.
const DefaultFlavor = "default"

// Catalog maps extraction flavors to their instruction templates.
type Catalog struct {
	templates map[string]string
}

type catalogFile struct {
	Flavors map[string]string `yaml:"flavors"`
}

// Load reads the embedded catalog and all templates it references.
func Load() (*Catalog, error) {
	raw, err := templateFS.ReadFile("templates/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("prompt: read catalog: %w", err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("prompt: parse catalog: %w", err)
	}
	if _, ok := cf.Flavors[DefaultFlavor]; !ok {
		return nil, fmt.Errorf("prompt: catalog has no %q flavor", DefaultFlavor)
	}

	c := &Catalog{templates: make(map[string]string, len(cf.Flavors))}
	for flavor, file := range cf.Flavors {
		tpl, err := templateFS.ReadFile("templates/" + file)
		if err != nil {
			return nil, fmt.Errorf("prompt: read template %s for flavor %s: %w", file, flavor, err)
		}
		if !strings.Contains(string(tpl), Placeholder) {
			return nil, fmt.Errorf("prompt: template %s lacks %s placeholder", file, Placeholder)
		}
		c.templates[flavor] = string(tpl)
	}
	return c, nil
}

// Render substitutes text into the flavor's template. An unknown flavor falls
// back to the default template rather than failing.
func (c *Catalog) Render(flavor, text string) string {
	tpl, ok := c.templates[flavor]
	if !ok {
		tpl = c.templates[DefaultFlavor]
	}
	return strings.ReplaceAll(tpl, Placeholder, text)
}

// Flavors lists the known flavor names.
func (c *Catalog) Flavors() []string {
	out := make([]string, 0, len(c.templates))
	for k := range c.templates {
		out = append(out, k)
	}
	return out
}

// Package extract turns free-form LLM output into well-formed STIX bundles.
// The pipeline per provider is prompt render -> completion -> Sanitize ->
// Recover -> Normalize; Extractor runs that pipeline across providers with
// fallback. Nothing in this package propagates an error past ExtractBundle:
// the worst case is a syntactically valid, empty bundle.
package extract

import (
	"context"
	"log"

	"stixify/internal/llm"
	"stixify/internal/metrics"
	"stixify/internal/prompt"
	"stixify/internal/stix"
)

// Provider pairs a client with the prompt flavor it gets.
type Provider struct {
	Client llm.Client
	Flavor string
}

// Extractor runs the extraction pipeline across an ordered provider list.
// It is stateless between calls; the catalog is read-only after Load.
type Extractor struct {
	providers []Provider
	catalog   *prompt.Catalog
}

// New builds an Extractor. Providers with a nil client are skipped, which is
// how a backend with missing credentials is disabled without taking the other
// one down.
func New(catalog *prompt.Catalog, providers ...Provider) *Extractor {
	kept := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p.Client != nil {
			kept = append(kept, p)
		}
	}
	return &Extractor{providers: kept, catalog: catalog}
}

// ExtractBundle extracts a STIX bundle from documentText. Providers are tried
// strictly in order, one blocking call at a time; the first non-empty bundle
// wins. A provider error and a structurally valid but empty result both mean
// "try the next one". When every provider comes up empty the result is a fresh
// empty bundle, not an error — absence of data is data. documentLabel only
// feeds the logs.
func (e *Extractor) ExtractBundle(ctx context.Context, documentText, documentLabel string) stix.Bundle {
	for _, p := range e.providers {
		name := p.Client.Name()
		b, err := e.runProvider(ctx, p, documentText)
		if err != nil {
			log.Printf("extract: provider %s failed for %q: %v", name, documentLabel, err)
			metrics.ProviderCalls.WithLabelValues(name, "error").Inc()
			continue
		}
		if len(b.Objects) == 0 {
			log.Printf("extract: provider %s returned no objects for %q", name, documentLabel)
			metrics.ProviderCalls.WithLabelValues(name, "empty").Inc()
			continue
		}
		log.Printf("extract: provider %s extracted %d objects for %q", name, len(b.Objects), documentLabel)
		metrics.ProviderCalls.WithLabelValues(name, "ok").Inc()
		return b
	}
	log.Printf("extract: all providers exhausted for %q, returning empty bundle", documentLabel)
	return stix.NewBundle(nil)
}

func (e *Extractor) runProvider(ctx context.Context, p Provider, text string) (stix.Bundle, error) {
	rendered := e.catalog.Render(p.Flavor, text)
	raw, err := p.Client.Complete(ctx, rendered)
	if err != nil {
		return stix.Bundle{}, err
	}
	v, ok := Recover(Sanitize(raw))
	if !ok {
		// Unsalvageable output is indistinguishable from "nothing found";
		// Normalize(nil) gives the empty bundle either way.
		return stix.NewBundle(nil), nil
	}
	return Normalize(v), nil
}

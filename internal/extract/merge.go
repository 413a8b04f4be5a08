package extract

import "stixify/internal/stix"

// MergeBundles unions the objects of the given bundles into one fresh bundle,
// deduplicating by id. The first occurrence of an id wins and later duplicates
// are dropped, so extractions earlier in the slice (typically the primary
// provider's) take precedence over later ones. Object order is first-seen
// order; the source bundles are never modified. Objects without an id are
// skipped — the normalizer assigns ids, so a missing one means the object
// never went through the pipeline.
func MergeBundles(bundles []stix.Bundle) stix.Bundle {
	seen := make(map[string]struct{})
	merged := make([]stix.Object, 0)
	for _, b := range bundles {
		for _, o := range b.Objects {
			id := o.ID()
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, o)
		}
	}
	return stix.NewBundle(merged)
}

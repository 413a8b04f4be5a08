package extract

import (
	"strings"

	"stixify/internal/stix"
)

// Normalize shapes whatever Recover produced into a well-formed bundle. The
// input may be a bundle-shaped map, a bare array of entities, some other JSON
// value, or nil; the output is always a valid envelope. Unrecognized shapes
// collapse to an empty bundle rather than an error.
//
// Normalize is idempotent: feeding its output back in changes nothing, and in
// particular never rewrites an id that is already well formed.
func Normalize(v any) stix.Bundle {
	switch x := v.(type) {
	case map[string]any:
		// "bundle-back" shows up in the wild as a mangled envelope tag;
		// accept it and emit "bundle".
		if t, _ := x["type"].(string); t == "bundle" || t == "bundle-back" {
			if rawObjs, ok := x["objects"].([]any); ok {
				b := stix.Bundle{
					Type:    "bundle",
					ID:      bundleID(x),
					Objects: toObjects(rawObjs),
				}
				assignIDs(b.Objects)
				return b
			}
		}
		return stix.NewBundle(nil)
	case []any:
		b := stix.NewBundle(toObjects(x))
		assignIDs(b.Objects)
		return b
	default:
		return stix.NewBundle(nil)
	}
}

func bundleID(envelope map[string]any) string {
	id, _ := envelope["id"].(string)
	if strings.HasPrefix(id, "bundle--") && stix.WellFormedID(id) {
		return id
	}
	return stix.NewID("bundle")
}

// toObjects keeps only map-shaped entries; scalars inside an objects array
// carry no usable entity data.
func toObjects(raw []any) []stix.Object {
	objs := make([]stix.Object, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			objs = append(objs, stix.Object(m))
		}
	}
	return objs
}

// assignIDs gives every object without a usable id a fresh "<type>--<uuid>",
// touching no other field. Well-formed ids are kept even when their type
// prefix disagrees with the object's type; model output is untrusted and the
// id is still a stable dedupe key.
func assignIDs(objs []stix.Object) {
	for _, o := range objs {
		if stix.WellFormedID(o.ID()) {
			continue
		}
		o["id"] = stix.NewID(o.Type())
	}
}

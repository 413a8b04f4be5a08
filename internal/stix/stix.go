// Package stix holds the bundle and object model shared by the extraction
// pipeline and the gateway. Objects are open maps rather than per-type structs:
// the type vocabulary coming out of a model is open-ended, and keeping unknown
// fields intact matters more than static typing here.
package stix

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Object is a single STIX object. Fields beyond "type" and "id" are
// carried verbatim.
type Object map[string]any

// Type returns the object's type discriminator, or "" when absent.
func (o Object) Type() string {
	t, _ := o["type"].(string)
	return t
}

// ID returns the object's identifier, or "" when absent.
func (o Object) ID() string {
	id, _ := o["id"].(string)
	return id
}

// Name returns the object's name field, or "" when absent.
func (o Object) Name() string {
	n, _ := o["name"].(string)
	return n
}

// Relationship returns the relationship fields when the object is a
// relationship. Missing fields come back empty; no validation is applied.
func (o Object) Relationship() (relType, sourceRef, targetRef string) {
	relType, _ = o["relationship_type"].(string)
	sourceRef, _ = o["source_ref"].(string)
	targetRef, _ = o["target_ref"].(string)
	return
}

// Bundle is the top-level STIX envelope. Objects may be empty; an empty
// bundle is a valid terminal state, not an error.
type Bundle struct {
	Type    string   `json:"type"`
	ID      string   `json:"id"`
	Objects []Object `json:"objects"`
}

// NewID generates a fresh identifier for the given object type.
func NewID(objType string) string {
	if objType == "" {
		objType = "unknown"
	}
	return objType + "--" + uuid.NewString()
}

// NewBundle builds a bundle envelope around objects with a fresh id.
// A nil slice becomes an empty objects array so serialized bundles always
// carry "objects": [].
func NewBundle(objects []Object) Bundle {
	if objects == nil {
		objects = []Object{}
	}
	return Bundle{
		Type:    "bundle",
		ID:      NewID("bundle"),
		Objects: objects,
	}
}

// WellFormedID reports whether id looks like "<type>--<token>" with a token
// longer than 8 characters. The prefix is not required to equal the object's
// actual type: model output routinely violates that invariant and the ids are
// still usable as dedupe keys.
func WellFormedID(id string) bool {
	idx := strings.Index(id, "--")
	if idx <= 0 {
		return false
	}
	return len(id[idx+2:]) > 8
}

// MarshalIndent serializes the bundle as UTF-8 JSON with 2-space indentation
// and HTML escaping off, the form in which bundles are persisted.
func (b Bundle) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Package xmlent resolves XML external entities against local copies so
// documents referencing well known DTDs parse without network access.
package xmlent

import (
	"io"
	"strings"

	"github.com/respath/respath/resources"
)

// configDTD is the resource path of the local copy shipped in builtin.
const configDTD = "dtd/respath-config.dtd"

// Resolver maps system identifier suffixes to local resource paths.  An
// unmatched or unreadable identifier resolves to nil, which tells the parser
// to fall back to the entity's declared location; a lookup problem here never
// fails the parse.
type Resolver struct {
	local map[string]string
}

// New creates a resolver preloaded with the DTDs this module ships.
func New() *Resolver {
	r := &Resolver{local: make(map[string]string)}
	r.Register("respath-config.dtd", configDTD)
	return r
}

// Register maps a lower-case system identifier suffix to the resource holding
// its local copy.
func (r *Resolver) Register(suffix, resource string) {
	r.local[strings.ToLower(suffix)] = resource
}

// Resolve returns the local copy of the entity named by the identifiers, or
// (nil, nil) when the entity should be fetched from its declared location.
func (r *Resolver) Resolve(publicID, systemID string) (io.ReadCloser, error) {
	if systemID == "" {
		return nil, nil
	}

	lower := strings.ToLower(systemID)
	for suffix, resource := range r.local {
		if !strings.Contains(lower, suffix) {
			continue
		}
		rc, err := resources.GetStream(resource)
		if err != nil {
			// the local copy is gone; let the parser use the declared location
			return nil, nil
		}
		return rc, nil
	}
	return nil, nil
}

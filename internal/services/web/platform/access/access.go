// Package access models the capability set granted to the current actor.
package access

import "strings"

const (
	ProjectRead  = "project:read"
	ProjectWrite = "project:write"
	TeamRead     = "team:read"
	TeamWrite    = "team:write"
	OrgAdmin     = "org:admin"
)

// Set is an immutable set of capability strings.
type Set struct {
	caps map[string]struct{}
}

// NewSet builds a Set from capability strings. Blank entries are ignored.
func NewSet(capabilities ...string) Set {
	caps := make(map[string]struct{}, len(capabilities))
	for _, capability := range capabilities {
		capability = strings.TrimSpace(capability)
		if capability == "" {
			continue
		}
		caps[capability] = struct{}{}
	}
	return Set{caps: caps}
}

// Has reports whether capability is granted.
func (s Set) Has(capability string) bool {
	_, ok := s.caps[strings.TrimSpace(capability)]
	return ok
}

// Len returns the number of granted capabilities.
func (s Set) Len() int {
	return len(s.caps)
}

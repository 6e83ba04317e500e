// Package schema is the versioned annotation document format and its single
// deserialization chokepoint. See Parse.
package schema

import "fmt"

// AstAnchor identifies a code element within a file. Shared across all
// schema versions.
type AstAnchor struct {
	UnitType  string  `json:"unit_type"`
	Name      string  `json:"name"`
	Signature *string `json:"signature,omitempty"`
}

// LineRange is a 1-indexed, inclusive range of line numbers. Shared across
// all schema versions.
type LineRange struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

func (r LineRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

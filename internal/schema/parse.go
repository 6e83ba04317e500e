package schema

import (
	"encoding/json"
	"fmt"
)

// schemaPeek extracts only the schema tag, without deserializing the rest
// of the document, so Parse can dispatch on version before committing to a
// concrete type.
type schemaPeek struct {
	Schema string `json:"schema"`
}

// ParseError is returned by Parse. Kind distinguishes a malformed document
// from one carrying a version this build doesn't know how to migrate.
type ParseError struct {
	Kind    ParseErrorKind
	Version string
	cause   error
}

type ParseErrorKind int

const (
	ParseErrorInvalidJSON ParseErrorKind = iota
	ParseErrorUnknownVersion
)

func (e *ParseError) Error() string {
	switch e.Kind {
	case ParseErrorUnknownVersion:
		return fmt.Sprintf("unknown annotation schema version: %s", e.Version)
	default:
		return fmt.Sprintf("invalid annotation JSON: %v", e.cause)
	}
}

func (e *ParseError) Unwrap() error { return e.cause }

// Parse is the single deserialization chokepoint for annotation JSON. Every
// reader — query engine, write pipelines, CLI — must call Parse rather than
// unmarshal annotation payloads directly; doing otherwise is a code-review
// defect (spec.md §9).
//
// Parse peeks at the schema field, dispatches chronicle/v2 straight through
// and chronicle/v1 through MigrateV1ToV2, and rejects anything else as an
// unknown version.
func Parse(data []byte) (*Annotation, error) {
	var peek schemaPeek
	if err := json.Unmarshal(data, &peek); err != nil {
		return nil, &ParseError{Kind: ParseErrorInvalidJSON, cause: err}
	}

	switch peek.Schema {
	case CurrentSchema:
		var ann Annotation
		if err := json.Unmarshal(data, &ann); err != nil {
			return nil, &ParseError{Kind: ParseErrorInvalidJSON, cause: err}
		}
		return &ann, nil
	case "chronicle/v1":
		var v1 AnnotationV1
		if err := json.Unmarshal(data, &v1); err != nil {
			return nil, &ParseError{Kind: ParseErrorInvalidJSON, cause: err}
		}
		migrated := MigrateV1ToV2(v1)
		return &migrated, nil
	default:
		return nil, &ParseError{Kind: ParseErrorUnknownVersion, Version: peek.Schema}
	}
}

// Serialize writes an annotation back to its canonical JSON wire form.
func Serialize(a *Annotation) ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

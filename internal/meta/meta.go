// Package meta holds the album metadata model: chapter boundaries, album
// and per-track tags, and the codecs that move both through their
// Matroska XML forms. Chapters and tags built in the same run reference
// the same track sequence through shared chapter UIDs.
package meta

import "fmt"

// ValidationError reports input sequences whose cardinalities disagree.
// It signals a programming or data inconsistency and is always fatal.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return "metadata validation: " + e.Detail
}

// ParseError reports a chapter or tag artifact that could not be decoded.
type ParseError struct {
	Reason string
	Field  string
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return "metadata parse: " + e.Reason
	}
	return fmt.Sprintf("metadata parse: %s %q", e.Reason, e.Field)
}

// Package model defines the parsed, format-agnostic representation of a
// scenario document: global metadata, configuration, declared libraries, and
// the ordered action list. Values are immutable once a loader has produced
// them; both engine modes read the same model.
package model

// Package form defines the typed observation form model built from formspec
// definitions, plus the validator that turns raw user input into clean field
// values. Builders reside in internal/form but return the types defined here.
// Validation rules expose canonical identifiers (min/max, minLength/maxLength,
// pattern) with string parameters so consumers can map numeric bounds
// (including exclusive limits), textual constraints, and regexes without
// sacrificing deterministic JSON snapshots.
package form

// Package orchestrator coordinates the full pipeline from form schema to
// rendered block document: load the schema, parse it into form definitions,
// build a form model, validate the raw input against it, and render the
// resulting observation block with the selected renderer. Dependencies are
// injected via options; missing ones are initialised with the built-in
// implementations.
package orchestrator

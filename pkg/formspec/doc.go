// Package formspec defines the declarative form definitions that drive the
// SALT observation forms. Each proposal type (GRB follow-up, and whatever the
// observatory adds later) is described by an operation inside an OpenAPI 3
// document; this package exposes the Source/Document/Loader/Parser contracts
// while the kin-openapi implementations live under internal/formspec.
package formspec

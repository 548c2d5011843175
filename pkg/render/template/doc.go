// Package template defines renderer-agnostic template interfaces and
// adapters. Renderers depend on the TemplateRenderer seam rather than a
// concrete engine so tests can substitute fakes and callers can swap engines.
package template

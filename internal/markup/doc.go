// Package markup locates and rewrites tables in Confluence-style wiki markup.
//
// The package understands a narrow slice of the dialect: heading lines of the
// form "h1. Title" through "h6. Title", table header lines delimited by double
// bars ("||Name||Status||"), and table body lines delimited by single bars
// ("|Alice|Open|"). Everything else in a document is opaque text and is
// preserved byte for byte when a table is rewritten.
//
// All functions are pure: they take a document string and return a new one,
// so callers may use them from any number of goroutines without coordination.
package markup

package model

// Format is an output serialization format.
type Format string

const (
	// FormatJSON writes one JSON object per document.
	FormatJSON Format = "json"
	// FormatYAML writes one YAML document per document.
	FormatYAML Format = "yaml"
)

// Document holds the instances materialized from one source.
type Document struct {
	Source    Path
	Instances []Instance
}

// TypeListing describes the types declared by one source and the warnings
// raised while compiling it.
type TypeListing struct {
	Source      Path
	Types       []DeclaredType
	Diagnostics Diagnostics
}

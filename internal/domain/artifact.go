package domain

import (
	m "go2json.dev/pkg/go2json/internal/model"
)

// FactoryPrefix starts the name of the synthetic constructor emitted for
// every default-constructible type. Source units may not declare names with it.
const FactoryPrefix = "Go2JSONNew"

// Artifact is a compiled unit. It holds only immutable data, so it can be
// shared between goroutines and materialized any number of times.
type Artifact struct {
	// Unit is the emitted source: the checked unit plus its factories.
	Unit        m.SourceUnit
	Package     string
	Types       []m.DeclaredType
	References  m.ReferenceSet
	Diagnostics m.Diagnostics
}

// FactorySymbol returns the qualified name of the factory for declaredType.
func (a *Artifact) FactorySymbol(declaredType m.DeclaredType) string {
	return a.Package + "." + FactoryPrefix + declaredType.Name
}

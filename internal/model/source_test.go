package model

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSourceUnit(t *testing.T) {
	assert.Equal(t, SourceUnit{Name: DefaultUnitName, Text: "type A struct{}"}, NewSourceUnit("", "type A struct{}"))
	assert.Equal(t, "types.go", NewSourceUnit("types.go", "").Name)
}

func TestRequiredImports(t *testing.T) {
	assert.Equal(t, ImportSet{"time", "container/list", "encoding/json", "sort", "strings"}, RequiredImports)

	seen := make(map[string]bool)
	for _, importPath := range RequiredImports {
		assert.False(t, seen[importPath], importPath)
		assert.True(t, DefaultReferenceSet.Allows(importPath), importPath)

		seen[importPath] = true
	}
}

func TestReferenceSet_Allows(t *testing.T) {
	assert.True(t, DefaultReferenceSet.Allows("fmt"))
	assert.False(t, DefaultReferenceSet.Allows("os"))
	assert.False(t, DefaultReferenceSet.Allows("unsafe"))
}

func TestDiagnostics(t *testing.T) {
	diagnostics := Diagnostics{
		{Severity: SeverityWarning, Message: `"sort" imported and not used; removed`, Position: token.Position{Filename: "input.go", Line: 5, Column: 2}},
		{Severity: SeverityError, Message: "undefined: Missing", Position: token.Position{Filename: "input.go", Line: 9, Column: 18}},
		{Severity: SeverityError, Message: "broken", Position: token.Position{Filename: "other.go"}},
		{Severity: SeverityError, Message: "bare"},
	}

	assert.True(t, diagnostics.HasErrors())
	assert.Len(t, diagnostics.Errors(), 3)
	assert.Len(t, diagnostics.Warnings(), 1)
	assert.False(t, diagnostics.Warnings().HasErrors())

	assert.Equal(t,
		"input.go:5:2: warning: \"sort\" imported and not used; removed\n"+
			"input.go:9:18: error: undefined: Missing\n"+
			"other.go: error: broken\n"+
			"error: bare",
		diagnostics.String())
}

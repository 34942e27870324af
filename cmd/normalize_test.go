package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCmd_AddsClauseAndImports(t *testing.T) {
	stdout, _, err := executeCommand(t, "type A struct{}\n", "normalize", "--package", "models")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "package models\n"))

	for _, importPath := range []string{"time", "container/list", "encoding/json", "sort", "strings"} {
		assert.Contains(t, stdout, `"`+importPath+`"`)
	}
}

func TestNormalizeCmd_RejectsSeveralSources(t *testing.T) {
	_, _, err := executeCommand(t, "", "normalize", "a.go", "b.go")
	assert.Error(t, err)
}

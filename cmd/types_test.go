package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypesCmd_ListsDeclaredTypes(t *testing.T) {
	path := writeSource(t, "types.go", profileSource+"\ntype Point struct{ X, Y int }\n\nfunc NewPoint(x, y int) Point { return Point{x, y} }\n")

	stdout, _, err := executeCommand(t, "", "types", path)

	require.NoError(t, err)

	// Table footers are upper-cased.
	stdout = strings.ToUpper(stdout)

	for _, want := range []string{"Profile", "NewProfile()", "Role", "enum", "Point", "NewPoint(2)", "TOTAL TYPES 3", "imported and not used"} {
		assert.Contains(t, stdout, strings.ToUpper(want))
	}
}

func TestTypesCmd_ParseError(t *testing.T) {
	_, stderr, err := executeCommand(t, "type A struct {\n", "types")

	require.Error(t, err)
	assert.Contains(t, stderr, "error:")
}

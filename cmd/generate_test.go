package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileSource = "type Profile struct {\n\tName string `json:\"name\" yaml:\"name\"`\n\tAge  int    `json:\"age\" yaml:\"age\"`\n}\n\nfunc NewProfile() *Profile { return &Profile{Name: \"ada\"} }\n\ntype Role string\n\nconst Admin Role = \"admin\"\n"

func TestGenerateCmd_JSONFromFile(t *testing.T) {
	path := writeSource(t, "profile.go", profileSource)

	stdout, _, err := executeCommand(t, "", "generate", "--indent", "0", path)

	require.NoError(t, err)
	assert.Equal(t, `{"Profile":{"name":"ada","age":0}}`+"\n", stdout)
}

func TestGenerateCmd_YAMLFromStdin(t *testing.T) {
	stdout, _, err := executeCommand(t, profileSource, "gen", "-f", "yaml")

	require.NoError(t, err)
	assert.Equal(t, "Profile:\n  name: ada\n  age: 0\n", stdout)
}

func TestGenerateCmd_SeveralSourcesKeepOrder(t *testing.T) {
	first := writeSource(t, "first.go", "type First struct{ N int }\n")
	second := writeSource(t, "second.go", "type Second struct{ S string }\n")

	stdout, _, err := executeCommand(t, "", "generate", "--indent", "0", "-p", "2", first, second)

	require.NoError(t, err)
	assert.Equal(t, "{\"First\":{\"N\":0}}\n{\"Second\":{\"S\":\"\"}}\n", stdout)
}

func TestGenerateCmd_CompileErrorPrintsDiagnostics(t *testing.T) {
	path := writeSource(t, "broken.go", "type A struct{ B Missing }\n")

	stdout, stderr, err := executeCommand(t, "", "generate", path)

	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error:")
	assert.Contains(t, stderr, "Missing")
}

func TestGenerateCmd_UnsupportedFormat(t *testing.T) {
	_, _, err := executeCommand(t, profileSource, "generate", "--format", "toml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

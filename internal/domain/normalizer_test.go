package domain

import (
	"context"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go2json.dev/pkg/go2json/internal/adapter"
	m "go2json.dev/pkg/go2json/internal/model"
)

func newTestNormalizer() Normalizer {
	return NewNormalizer(adapter.NewLocalGoFileAdapter(), "")
}

func importsOf(t *testing.T, text string) []string {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "input.go", text, parser.ImportsOnly)
	require.NoError(t, err)

	paths := make([]string, 0, len(file.Imports))
	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		require.NoError(t, err)

		paths = append(paths, importPath)
	}

	return paths
}

func TestNormalizer_AddsMissingImportsInOrder(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "no imports",
			src:  "package schema\n\ntype A struct{}\n",
			want: []string{"time", "container/list", "encoding/json", "sort", "strings"},
		},
		{
			name: "single import",
			src:  "package schema\n\nimport \"fmt\"\n\ntype A struct{ Name fmt.Stringer }\n",
			want: []string{"fmt", "time", "container/list", "encoding/json", "sort", "strings"},
		},
		{
			name: "some present",
			src:  "package schema\n\nimport (\n\t\"strings\"\n\t\"time\"\n)\n\ntype A struct{ At time.Time }\n",
			want: []string{"strings", "time", "container/list", "encoding/json", "sort"},
		},
		{
			name: "aliased import counts as present",
			src:  "package schema\n\nimport js \"encoding/json\"\n\ntype A struct{ Raw js.RawMessage }\n",
			want: []string{"encoding/json", "time", "container/list", "sort", "strings"},
		},
		{
			name: "several import declarations",
			src:  "package schema\n\nimport \"bytes\"\nimport \"sort\"\n\ntype A struct{ B bytes.Buffer }\n",
			want: []string{"bytes", "sort", "time", "container/list", "encoding/json", "strings"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := newTestNormalizer().Normalize(context.Background(), m.NewSourceUnit("", tt.src))
			require.NoError(t, err)

			assert.Equal(t, m.DefaultUnitName, unit.Name)
			assert.Equal(t, tt.want, importsOf(t, unit.Text))
			assert.Contains(t, unit.Text, "type A struct")
		})
	}
}

func TestNormalizer_AllPresentIsUnchanged(t *testing.T) {
	src := "package schema\n\n// keep\nimport (\n\t\"strings\"\n\t\"sort\"\n\t\"encoding/json\"\n\t\"container/list\"\n\t\"time\"\n)\n\ntype   A   struct{}\n"
	input := m.NewSourceUnit("types.go", src)

	unit, err := newTestNormalizer().Normalize(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, input, unit)
}

func TestNormalizer_Idempotent(t *testing.T) {
	sources := []string{
		"package schema\n\ntype A struct{}\n",
		"package schema\n\nimport \"fmt\" // printing\n\ntype A struct{ S fmt.Stringer }\n",
		"type B struct{ N int }\n",
	}

	normalizer := newTestNormalizer()

	for _, src := range sources {
		once, err := normalizer.Normalize(context.Background(), m.NewSourceUnit("", src))
		require.NoError(t, err)

		twice, err := normalizer.Normalize(context.Background(), once)
		require.NoError(t, err)

		assert.Equal(t, once, twice)
	}
}

func TestNormalizer_PrependsPackageClause(t *testing.T) {
	t.Run("default package", func(t *testing.T) {
		unit, err := newTestNormalizer().Normalize(context.Background(), m.NewSourceUnit("", "type A struct{}\n"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(unit.Text, "package schema\n"))
		assert.Len(t, importsOf(t, unit.Text), len(m.RequiredImports))
	})

	t.Run("configured package", func(t *testing.T) {
		normalizer := NewNormalizer(adapter.NewLocalGoFileAdapter(), "models")

		unit, err := normalizer.Normalize(context.Background(), m.NewSourceUnit("", "// A is empty.\ntype A struct{}\n"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(unit.Text, "package models\n"))
		assert.Contains(t, unit.Text, "// A is empty.")
	})
}

func TestNormalizer_ParseError(t *testing.T) {
	_, err := newTestNormalizer().Normalize(context.Background(), m.NewSourceUnit("broken.go", "package schema\n\ntype A struct {\n"))
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "broken.go", parseErr.Unit)
	require.NotEmpty(t, parseErr.Diagnostics)
	assert.Equal(t, m.SeverityError, parseErr.Diagnostics[0].Severity)
	assert.Equal(t, "broken.go", parseErr.Diagnostics[0].Position.Filename)
}

func TestNormalizer_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestNormalizer().Normalize(ctx, m.NewSourceUnit("", "package schema\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

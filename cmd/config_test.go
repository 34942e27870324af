package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "go2json", configBaseName)
	assert.Equal(t, "go2json.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output.format", outputFormatConfigKey)
	assert.Equal(t, "output.indent", outputIndentConfigKey)
	assert.Equal(t, "source.package", sourcePackageConfigKey)
	assert.Equal(t, "run.parallel", runParallelConfigKey)
	assert.Equal(t, "GO2JSON", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger_WritesToFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	logPath := filepath.Join(t.TempDir(), "go2json.log")

	writer := configureLogger(logPath, true)
	t.Cleanup(func() { _ = writer.Close() })

	slog.Debug("debug message", "unit", "input.go")

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "debug message")
	assert.Contains(t, string(contents), "unit=input.go")
	assert.Same(t, globalLogger, slog.Default())
}

func TestEnvOverridesDefault(t *testing.T) {
	t.Setenv("GO2JSON_OUTPUT_FORMAT", "yaml")

	stdout, _, err := executeCommand(t, "type A struct{ Count int }\n", "generate")

	require.NoError(t, err)
	assert.Equal(t, "A:\n  count: 0\n", stdout)
}

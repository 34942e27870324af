// Package adapter contains infrastructure adapters for the go2json CLI.
package adapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	m "go2json.dev/pkg/go2json/internal/model"
)

// StdinPath is the source path that reads from standard input.
const StdinPath m.Path = "-"

// SourceFSAdapter abstracts where source units come from so the workflow can
// be tested without touching the disk.
type SourceFSAdapter interface {
	// Read loads a source unit from a local path, a storage URL or stdin.
	Read(ctx context.Context, location m.Path) (m.SourceUnit, error)
}

// LocalSourceFSAdapter reads sources through afs, which covers local files as
// well as every storage scheme afs has registered.
type LocalSourceFSAdapter struct {
	fs    afs.Service
	stdin io.Reader
}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter reading stdin from os.Stdin.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return NewSourceFSAdapter(afs.New(), os.Stdin)
}

// NewSourceFSAdapter constructs a LocalSourceFSAdapter with explicit dependencies.
func NewSourceFSAdapter(fs afs.Service, stdin io.Reader) *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{fs: fs, stdin: stdin}
}

// Read loads the source unit at location.
func (a *LocalSourceFSAdapter) Read(ctx context.Context, location m.Path) (m.SourceUnit, error) {
	if err := ctx.Err(); err != nil {
		return m.SourceUnit{}, err
	}

	if location == StdinPath {
		content, err := io.ReadAll(a.stdin)
		if err != nil {
			return m.SourceUnit{}, fmt.Errorf("failed to read stdin: %w", err)
		}

		return m.NewSourceUnit("", string(content)), nil
	}

	URL, err := normalizeLocation(location)
	if err != nil {
		return m.SourceUnit{}, err
	}

	content, err := a.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return m.SourceUnit{}, fmt.Errorf("failed to read %s: %w", location, err)
	}

	return m.NewSourceUnit(unitName(location), string(content)), nil
}

func normalizeLocation(location m.Path) (string, error) {
	value := string(location)
	if strings.Contains(value, "://") {
		return value, nil
	}

	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", location, err)
	}

	return abs, nil
}

func unitName(location m.Path) string {
	value := string(location)
	if strings.Contains(value, "://") {
		return path.Base(value)
	}

	return filepath.Base(value)
}

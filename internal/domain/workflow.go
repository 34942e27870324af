package domain

import (
	"context"

	m "go2json.dev/pkg/go2json/internal/model"
)

// GenerateArgs are the arguments of Workflow.Generate.
type GenerateArgs struct {
	Sources  []m.Path
	Format   m.Format
	Parallel int
}

// TypesArgs are the arguments of Workflow.Types.
type TypesArgs struct {
	Sources  []m.Path
	Parallel int
}

// NormalizeArgs are the arguments of Workflow.Normalize.
type NormalizeArgs struct {
	Source m.Path
}

// Workflow runs the CLI commands over a batch of sources.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	Types(ctx context.Context, args TypesArgs) error
	Normalize(ctx context.Context, args NormalizeArgs) error
}

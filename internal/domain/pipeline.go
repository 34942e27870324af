package domain

import (
	"context"

	m "go2json.dev/pkg/go2json/internal/model"
)

// Generator runs the whole pipeline for one source unit. It keeps no state
// between calls and is safe for concurrent use.
type Generator interface {
	// Generate normalizes, compiles and materializes the unit. The caller
	// ranges over the sequence once or closes it.
	Generate(ctx context.Context, unit m.SourceUnit) (*Sequence, error)

	// Inspect normalizes and compiles the unit without running it.
	Inspect(ctx context.Context, unit m.SourceUnit) (*Artifact, error)

	// Normalize returns the normalized unit.
	Normalize(ctx context.Context, unit m.SourceUnit) (m.SourceUnit, error)
}

type generator struct {
	normalizer   Normalizer
	compiler     Compiler
	materializer Materializer
}

// NewGenerator creates a Generator from its three phases.
func NewGenerator(normalizer Normalizer, compiler Compiler, materializer Materializer) Generator {
	return &generator{
		normalizer:   normalizer,
		compiler:     compiler,
		materializer: materializer,
	}
}

func (g *generator) Normalize(ctx context.Context, unit m.SourceUnit) (m.SourceUnit, error) {
	return g.normalizer.Normalize(ctx, unit)
}

func (g *generator) Inspect(ctx context.Context, unit m.SourceUnit) (*Artifact, error) {
	normalized, err := g.normalizer.Normalize(ctx, unit)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return g.compiler.Compile(ctx, normalized)
}

func (g *generator) Generate(ctx context.Context, unit m.SourceUnit) (*Sequence, error) {
	artifact, err := g.Inspect(ctx, unit)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return g.materializer.Materialize(ctx, artifact)
}

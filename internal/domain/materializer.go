package domain

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync/atomic"

	"go2json.dev/pkg/go2json/internal/adapter"
	m "go2json.dev/pkg/go2json/internal/model"
)

// Materializer builds instances of the types declared in an artifact.
type Materializer interface {
	Materialize(ctx context.Context, artifact *Artifact) (*Sequence, error)
}

type materializer struct {
	adapter.InterpreterAdapter
}

// NewMaterializer creates a Materializer.
func NewMaterializer(interpreterAdapter adapter.InterpreterAdapter) Materializer {
	return &materializer{InterpreterAdapter: interpreterAdapter}
}

// Materialize loads the artifact into a fresh interpreter. Instances are
// built while the returned Sequence is ranged over.
func (mt *materializer) Materialize(ctx context.Context, artifact *Artifact) (*Sequence, error) {
	unit, err := mt.Load(ctx, artifact.Unit, artifact.References)
	if err != nil {
		return nil, loadError(artifact, err)
	}

	return &Sequence{ctx: ctx, artifact: artifact, unit: unit}, nil
}

func loadError(artifact *Artifact, err error) error {
	var failure *adapter.CompileFailure
	if errors.As(err, &failure) {
		return &CompileError{Unit: artifact.Unit.Name, Diagnostics: failure.Diagnostics}
	}

	var panicked *adapter.PanicError
	if errors.As(err, &panicked) {
		return &ConstructionError{TypeName: artifact.Package + ".init", Err: err}
	}

	return fmt.Errorf("failed to load %s: %w", artifact.Unit.Name, err)
}

// Sequence yields the instances of one materialization. It can be ranged
// over once; the interpreter is released when ranging stops.
type Sequence struct {
	ctx      context.Context
	artifact *Artifact
	unit     adapter.LoadedUnit
	consumed atomic.Bool
}

// All returns the instances in declaration order. Enumerations and types
// without a default constructor are skipped. The first failing constructor
// yields a *ConstructionError and ends the sequence.
func (s *Sequence) All() iter.Seq2[m.Instance, error] {
	return func(yield func(m.Instance, error) bool) {
		if s.consumed.Swap(true) {
			yield(m.Instance{}, ErrSequenceConsumed)
			return
		}

		defer s.unit.Close()

		for _, declaredType := range s.artifact.Types {
			if err := s.ctx.Err(); err != nil {
				yield(m.Instance{}, err)
				return
			}

			if !declaredType.HasDefaultConstructor() {
				slog.Debug("Skipping type", "type", declaredType.QualifiedName(), "kind", declaredType.Kind)
				continue
			}

			value, err := s.unit.Call(s.artifact.FactorySymbol(declaredType))
			if err != nil {
				slog.Error("Construction failed", "type", declaredType.QualifiedName(), "error", err)
				yield(m.Instance{}, &ConstructionError{TypeName: declaredType.QualifiedName(), Err: err})

				return
			}

			if !yield(m.Instance{Type: declaredType, Value: value}, nil) {
				return
			}
		}
	}
}

// Close releases the interpreter of a sequence that will not be ranged over.
func (s *Sequence) Close() {
	if !s.consumed.Swap(true) {
		s.unit.Close()
	}
}

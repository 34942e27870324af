package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"go2json.dev/pkg/go2json/internal/adapter"
	"go2json.dev/pkg/go2json/internal/controller"
	m "go2json.dev/pkg/go2json/internal/model"
	"golang.org/x/sync/errgroup"
)

type workflowPipeline struct {
	adapter.SourceFSAdapter
	controller.UI
	Generator
}

// NewWorkflowPipeline creates a Workflow processing sources concurrently
// with the provided dependencies.
func NewWorkflowPipeline(fsAdapter adapter.SourceFSAdapter, ui controller.UI, generator Generator) Workflow {
	return &workflowPipeline{
		SourceFSAdapter: fsAdapter,
		UI:              ui,
		Generator:       generator,
	}
}

// SourceError ties a failure to the source it came from.
type SourceError struct {
	Source m.Path
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Generate materializes every source and writes one document per source, in
// the order the sources were given.
func (w *workflowPipeline) Generate(ctx context.Context, args GenerateArgs) error {
	documents := make([]m.Document, len(args.Sources))

	err := forEachSource(ctx, args.Sources, args.Parallel, func(ctx context.Context, i int, source m.Path) error {
		document, err := w.generateDocument(ctx, source)
		if err != nil {
			return err
		}

		documents[i] = document

		return nil
	})
	if err != nil {
		return w.report(ctx, err)
	}

	format := args.Format
	if format == "" {
		format = m.FormatJSON
	}

	if err := w.DisplayDocuments(ctx, format, documents); err != nil {
		slog.Error("Failed to display documents", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflowPipeline) generateDocument(ctx context.Context, source m.Path) (m.Document, error) {
	unit, err := w.Read(ctx, source)
	if err != nil {
		return m.Document{}, err
	}

	sequence, err := w.Generator.Generate(ctx, unit)
	if err != nil {
		return m.Document{}, err
	}
	defer sequence.Close()

	document := m.Document{Source: source}

	for instance, err := range sequence.All() {
		if err != nil {
			return m.Document{}, err
		}

		document.Instances = append(document.Instances, instance)
	}

	slog.Debug("Generated document", "source", source, "instances", len(document.Instances))

	return document, nil
}

// Types compiles every source and lists its declared types.
func (w *workflowPipeline) Types(ctx context.Context, args TypesArgs) error {
	listings := make([]m.TypeListing, len(args.Sources))

	err := forEachSource(ctx, args.Sources, args.Parallel, func(ctx context.Context, i int, source m.Path) error {
		unit, err := w.Read(ctx, source)
		if err != nil {
			return err
		}

		artifact, err := w.Inspect(ctx, unit)
		if err != nil {
			return err
		}

		listings[i] = m.TypeListing{Source: source, Types: artifact.Types, Diagnostics: artifact.Diagnostics}

		return nil
	})
	if err != nil {
		return w.report(ctx, err)
	}

	return w.DisplayTypes(ctx, listings)
}

// Normalize prints the normalized form of a single source.
func (w *workflowPipeline) Normalize(ctx context.Context, args NormalizeArgs) error {
	unit, err := w.Read(ctx, args.Source)
	if err != nil {
		return w.report(ctx, &SourceError{Source: args.Source, Err: err})
	}

	normalized, err := w.Generator.Normalize(ctx, unit)
	if err != nil {
		return w.report(ctx, &SourceError{Source: args.Source, Err: err})
	}

	return w.DisplaySource(ctx, normalized)
}

// report shows the diagnostics carried by err, if any, and returns err.
func (w *workflowPipeline) report(ctx context.Context, err error) error {
	source := m.Path("")

	var sourceErr *SourceError
	if errors.As(err, &sourceErr) {
		source = sourceErr.Source
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		w.DisplayDiagnostics(ctx, source, parseErr.Diagnostics)
	}

	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		w.DisplayDiagnostics(ctx, source, compileErr.Diagnostics)
	}

	slog.Error("Workflow failed", "source", source, "error", err)

	return err
}

// forEachSource runs fn for every source with at most parallel goroutines.
// The first failure cancels the others and is returned as a *SourceError.
func forEachSource(ctx context.Context, sources []m.Path, parallel int, fn func(ctx context.Context, i int, source m.Path) error) error {
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for i, source := range sources {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			if err := fn(groupCtx, i, source); err != nil {
				return &SourceError{Source: source, Err: err}
			}

			return nil
		})
	}

	return group.Wait()
}

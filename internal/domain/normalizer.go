// Package domain contains the compile, load and materialize pipeline.
package domain

import (
	"context"
	"errors"
	"go/ast"
	"go/scanner"
	"go/token"
	"log/slog"
	"strconv"

	"go2json.dev/pkg/go2json/internal/adapter"
	m "go2json.dev/pkg/go2json/internal/model"
)

// DefaultPackageName is the package clause given to snippets without one.
const DefaultPackageName = "schema"

// Normalizer ensures a source unit has a package clause and every required import.
type Normalizer interface {
	Normalize(ctx context.Context, unit m.SourceUnit) (m.SourceUnit, error)
}

type normalizer struct {
	adapter.GoFileAdapter
	required    m.ImportSet
	packageName string
}

// NewNormalizer creates a Normalizer adding m.RequiredImports. An empty
// packageName selects DefaultPackageName.
func NewNormalizer(goFileAdapter adapter.GoFileAdapter, packageName string) Normalizer {
	if packageName == "" {
		packageName = DefaultPackageName
	}

	return &normalizer{
		GoFileAdapter: goFileAdapter,
		required:      m.RequiredImports,
		packageName:   packageName,
	}
}

// Normalize returns the unit unchanged when nothing is missing. Otherwise the
// missing imports are appended after the existing ones, in required order.
func (n *normalizer) Normalize(ctx context.Context, unit m.SourceUnit) (m.SourceUnit, error) {
	text := unit.Text

	withClause := !n.HasPackageClause([]byte(text))
	if withClause {
		text = "package " + n.packageName + "\n\n" + text
	}

	fset := token.NewFileSet()

	file, err := n.Parse(ctx, fset, unit.Name, []byte(text))
	if err != nil {
		return m.SourceUnit{}, newParseError(unit.Name, err)
	}

	missing := n.missingImports(file)
	if len(missing) == 0 {
		if withClause {
			return m.SourceUnit{Name: unit.Name, Text: text}, nil
		}

		return unit, nil
	}

	appendImports(file, missing)

	out, err := n.Print(fset, file)
	if err != nil {
		return m.SourceUnit{}, err
	}

	slog.Debug("Normalized source", "unit", unit.Name, "added", missing)

	return m.SourceUnit{Name: unit.Name, Text: string(out)}, nil
}

// missingImports compares import paths verbatim; aliases do not matter.
func (n *normalizer) missingImports(file *ast.File) []string {
	declared := make(map[string]bool, len(file.Imports))

	for _, spec := range file.Imports {
		if importPath, err := strconv.Unquote(spec.Path.Value); err == nil {
			declared[importPath] = true
		}
	}

	var missing []string

	for _, importPath := range n.required {
		if !declared[importPath] {
			missing = append(missing, importPath)
		}
	}

	return missing
}

// appendImports adds the paths to the last import declaration, or to a new
// one right after the package clause. New specs are positioned at the end of
// the previous import so the printer keeps comments where they were.
func appendImports(file *ast.File, paths []string) {
	var last *ast.GenDecl

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			break
		}

		last = gen
	}

	anchor := file.Name.End()
	if last != nil {
		anchor = importAnchor(last)
	}

	specs := make([]ast.Spec, 0, len(paths))

	for _, importPath := range paths {
		spec := &ast.ImportSpec{
			Path:   &ast.BasicLit{ValuePos: anchor, Kind: token.STRING, Value: strconv.Quote(importPath)},
			EndPos: anchor,
		}
		specs = append(specs, spec)
		file.Imports = append(file.Imports, spec)
	}

	if last != nil {
		last.Specs = append(last.Specs, specs...)
		return
	}

	decl := &ast.GenDecl{TokPos: anchor, Tok: token.IMPORT, Specs: specs}
	file.Decls = append([]ast.Decl{decl}, file.Decls...)
}

func importAnchor(decl *ast.GenDecl) token.Pos {
	spec, ok := decl.Specs[len(decl.Specs)-1].(*ast.ImportSpec)
	if !ok {
		return decl.End()
	}

	if spec.Comment != nil {
		return spec.Comment.End()
	}

	return spec.End()
}

func newParseError(unit string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var list scanner.ErrorList
	if !errors.As(err, &list) {
		return &ParseError{Unit: unit, Diagnostics: m.Diagnostics{{
			Severity: m.SeverityError,
			Message:  err.Error(),
			Position: token.Position{Filename: unit},
		}}}
	}

	diagnostics := make(m.Diagnostics, 0, len(list))
	for _, e := range list {
		diagnostics = append(diagnostics, m.Diagnostic{Severity: m.SeverityError, Message: e.Msg, Position: e.Pos})
	}

	return &ParseError{Unit: unit, Diagnostics: diagnostics}
}

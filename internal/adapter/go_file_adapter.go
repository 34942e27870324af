package adapter

import (
	"bytes"
	"context"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/scanner"
	"go/token"
)

// GoFileAdapter encapsulates Go-specific parsing and printing so the domain
// layer can focus on normalization and classification rules.
type GoFileAdapter interface {
	// Parse builds an AST using the provided file set and source bytes.
	Parse(ctx context.Context, fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// Print renders an AST back to source without reordering imports.
	Print(fileSet *token.FileSet, file *ast.File) ([]byte, error)

	// HasPackageClause reports whether the first token of src is the package keyword.
	HasPackageClause(src []byte) bool
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct {
	printer printer.Config
}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{
		printer: printer.Config{Mode: printer.UseSpaces | printer.TabIndent, Tabwidth: 8},
	}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(ctx context.Context, fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Object resolution stays on: astutil.UsesImport depends on it.
	return parser.ParseFile(fileSet, filename, src, parser.ParseComments)
}

// Print renders the file the way gofmt does, minus import sorting.
func (a *LocalGoFileAdapter) Print(fileSet *token.FileSet, file *ast.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := a.printer.Fprint(&buf, fileSet, file); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// HasPackageClause scans past comments and checks for the package keyword.
func (a *LocalGoFileAdapter) HasPackageClause(src []byte) bool {
	fileSet := token.NewFileSet()
	file := fileSet.AddFile("", fileSet.Base(), len(src))

	var s scanner.Scanner
	s.Init(file, src, nil, 0)

	_, tok, _ := s.Scan()

	return tok == token.PACKAGE
}

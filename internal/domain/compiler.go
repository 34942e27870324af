package domain

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"go2json.dev/pkg/go2json/internal/adapter"
	m "go2json.dev/pkg/go2json/internal/model"
	"golang.org/x/tools/go/ast/astutil"
)

// Compiler turns a normalized source unit into an Artifact.
type Compiler interface {
	Compile(ctx context.Context, unit m.SourceUnit) (*Artifact, error)
}

type compiler struct {
	adapter.GoFileAdapter
	adapter.InterpreterAdapter
	references m.ReferenceSet
	required   m.ImportSet
}

// NewCompiler creates a Compiler bound to an immutable reference set.
func NewCompiler(goFileAdapter adapter.GoFileAdapter, interpreterAdapter adapter.InterpreterAdapter, references m.ReferenceSet) Compiler {
	return &compiler{
		GoFileAdapter:      goFileAdapter,
		InterpreterAdapter: interpreterAdapter,
		references:         slices.Clone(references),
		required:           m.RequiredImports,
	}
}

// Compile checks the unit and emits its artifact. Any error diagnostic fails
// the whole unit with a *CompileError; no partial artifact is returned.
func (c *compiler) Compile(ctx context.Context, unit m.SourceUnit) (*Artifact, error) {
	fset := token.NewFileSet()

	file, err := c.Parse(ctx, fset, unit.Name, []byte(unit.Text))
	if err != nil {
		return nil, newParseError(unit.Name, err)
	}

	var diagnostics m.Diagnostics

	diagnostics = append(diagnostics, c.checkImports(fset, file)...)
	diagnostics = append(diagnostics, checkDeclarations(fset, file)...)

	if diagnostics.HasErrors() {
		return nil, c.fail(unit, diagnostics)
	}

	declared := classifyTypes(fset, file)
	pruned := len(diagnostics.Warnings()) > 0

	emitted, err := c.emit(fset, file, unit.Text, pruned, declared)
	if err != nil {
		return nil, fmt.Errorf("failed to emit %s: %w", unit.Name, err)
	}

	emittedUnit := m.SourceUnit{Name: unit.Name, Text: emitted}

	interpreterDiagnostics, err := c.Check(ctx, emittedUnit, c.references)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", unit.Name, err)
	}

	diagnostics = append(diagnostics, interpreterDiagnostics...)
	if diagnostics.HasErrors() {
		return nil, c.fail(unit, diagnostics)
	}

	for _, warning := range diagnostics.Warnings() {
		slog.Warn("Compiler warning", "unit", unit.Name, "position", warning.Position.String(), "message", warning.Message)
	}

	slog.Debug("Compiled unit", "unit", unit.Name, "package", file.Name.Name, "types", len(declared))

	return &Artifact{
		Unit:        emittedUnit,
		Package:     file.Name.Name,
		Types:       declared,
		References:  c.references,
		Diagnostics: diagnostics,
	}, nil
}

func (c *compiler) fail(unit m.SourceUnit, diagnostics m.Diagnostics) error {
	slog.Error("Compilation failed", "unit", unit.Name, "errors", len(diagnostics.Errors()))

	return &CompileError{Unit: unit.Name, Diagnostics: diagnostics}
}

// checkImports rejects imports outside the reference set. Unused required
// imports are removed with a warning; other unused imports are errors.
func (c *compiler) checkImports(fset *token.FileSet, file *ast.File) m.Diagnostics {
	var diagnostics m.Diagnostics

	for _, spec := range slices.Clone(file.Imports) {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		position := fset.Position(spec.Pos())

		if !c.references.Allows(importPath) {
			diagnostics = append(diagnostics, errorAt(position, "package %q is not in the reference set", importPath))
			continue
		}

		if astutil.UsesImport(file, importPath) {
			continue
		}

		if !c.required.Contains(importPath) {
			diagnostics = append(diagnostics, errorAt(position, "%q imported and not used", importPath))
			continue
		}

		name := ""
		if spec.Name != nil {
			name = spec.Name.Name
		}

		astutil.DeleteNamedImport(fset, file, name, importPath)
		diagnostics = append(diagnostics, m.Diagnostic{
			Severity: m.SeverityWarning,
			Message:  fmt.Sprintf("%q imported and not used; removed", importPath),
			Position: position,
		})
	}

	return diagnostics
}

// checkDeclarations reports package-level names declared twice and names
// using the factory prefix.
func checkDeclarations(fset *token.FileSet, file *ast.File) m.Diagnostics {
	var diagnostics m.Diagnostics

	seen := make(map[string]bool)

	declare := func(name *ast.Ident, key string) {
		if name == nil || name.Name == "_" {
			return
		}

		position := fset.Position(name.Pos())

		if strings.HasPrefix(name.Name, FactoryPrefix) {
			diagnostics = append(diagnostics, errorAt(position, "%s uses the reserved prefix %s", name.Name, FactoryPrefix))
		}

		if seen[key] {
			diagnostics = append(diagnostics, errorAt(position, "%s redeclared in this block", strings.TrimPrefix(key, ".")))
			return
		}

		seen[key] = true
	}

	for _, spec := range file.Imports {
		if spec.Name != nil && (spec.Name.Name == "_" || spec.Name.Name == ".") {
			continue
		}

		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		name := spec.Name
		if name == nil {
			name = &ast.Ident{NamePos: spec.Path.Pos(), Name: importName(importPath)}
		}

		declare(name, name.Name)
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					declare(s.Name, s.Name.Name)
				case *ast.ValueSpec:
					for _, name := range s.Names {
						declare(name, name.Name)
					}
				}
			}
		case *ast.FuncDecl:
			if d.Recv == nil {
				if d.Name.Name != "init" {
					declare(d.Name, d.Name.Name)
				}

				continue
			}

			// Methods live in their receiver's scope.
			declare(d.Name, receiverName(d.Recv)+"."+d.Name.Name)
		}
	}

	return diagnostics
}

func importName(importPath string) string {
	if i := strings.LastIndex(importPath, "/"); i >= 0 {
		return importPath[i+1:]
	}

	return importPath
}

func receiverName(recv *ast.FieldList) string {
	if recv == nil || len(recv.List) == 0 {
		return ""
	}

	expr := recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}

	switch t := expr.(type) {
	case *ast.IndexExpr:
		expr = t.X
	case *ast.IndexListExpr:
		expr = t.X
	}

	return identName(expr)
}

// emit appends one factory per default-constructible type to the unit. The
// file is printed again only when imports were pruned, so positions reported
// for the original text stay valid otherwise.
func (c *compiler) emit(fset *token.FileSet, file *ast.File, text string, pruned bool, declared []m.DeclaredType) (string, error) {
	var buf bytes.Buffer

	if pruned {
		printed, err := c.Print(fset, file)
		if err != nil {
			return "", err
		}

		buf.Write(printed)
	} else {
		buf.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			buf.WriteString("\n")
		}
	}

	for _, declaredType := range declared {
		if !declaredType.HasDefaultConstructor() {
			continue
		}

		buf.WriteString("\n")
		buf.WriteString(factorySource(declaredType))
	}

	return buf.String(), nil
}

func factorySource(declaredType m.DeclaredType) string {
	name := FactoryPrefix + declaredType.Name

	constructor, _ := declaredType.DefaultConstructor()

	switch {
	case constructor == nil:
		return fmt.Sprintf("func %s() (any, error) { return new(%s), nil }\n", name, declaredType.Name)
	case constructor.ReturnsError:
		return fmt.Sprintf("func %s() (any, error) {\n\tvalue, err := %s()\n\treturn value, err\n}\n", name, constructor.Name)
	default:
		return fmt.Sprintf("func %s() (any, error) { return %s(), nil }\n", name, constructor.Name)
	}
}

func errorAt(position token.Position, format string, args ...any) m.Diagnostic {
	return m.Diagnostic{
		Severity: m.SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Position: position,
	}
}

package domain

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	m "go2json.dev/pkg/go2json/internal/model"
)

// enumBases are the predeclared types an enumeration can be defined over.
var enumBases = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"byte": true, "rune": true, "string": true,
}

// classifyTypes lists the package-level defined types of file in declaration
// order. Aliases are not defined types and are left out.
func classifyTypes(fset *token.FileSet, file *ast.File) []m.DeclaredType {
	typedConstants := countTypedConstants(file)
	constructors := collectConstructors(file)

	var declared []m.DeclaredType

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok || typeSpec.Assign.IsValid() {
				continue
			}

			name := typeSpec.Name.Name
			kind, base := kindOf(typeSpec.Type)

			if kind == m.KindNamed && enumBases[base] && typedConstants[name] > 0 {
				kind = m.KindEnum
			}

			declared = append(declared, m.DeclaredType{
				Package:      file.Name.Name,
				Name:         name,
				Kind:         kind,
				Base:         base,
				Generic:      typeSpec.TypeParams != nil && len(typeSpec.TypeParams.List) > 0,
				Constructors: constructors[name],
				Position:     fset.Position(typeSpec.Name.Pos()),
			})
		}
	}

	return declared
}

func kindOf(expr ast.Expr) (m.TypeKind, string) {
	switch t := expr.(type) {
	case *ast.StructType:
		return m.KindStruct, "struct"
	case *ast.InterfaceType:
		return m.KindInterface, "interface"
	case *ast.FuncType:
		return m.KindFunc, "func"
	case *ast.ChanType:
		return m.KindChan, "chan"
	case *ast.ParenExpr:
		return kindOf(t.X)
	default:
		return m.KindNamed, types.ExprString(expr)
	}
}

// countTypedConstants counts the constants of each named type. A spec without
// type and values repeats the previous spec of its block, as iota blocks do.
func countTypedConstants(file *ast.File) map[string]int {
	counts := make(map[string]int)

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}

		last := ""

		for _, spec := range gen.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}

			switch {
			case valueSpec.Type != nil:
				last = identName(valueSpec.Type)
			case len(valueSpec.Values) > 0:
				last = conversionType(valueSpec.Values[0])
			}

			if last != "" {
				counts[last] += len(valueSpec.Names)
			}
		}
	}

	return counts
}

// conversionType returns T for a T(x) conversion.
func conversionType(expr ast.Expr) string {
	call, ok := expr.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return ""
	}

	return identName(call.Fun)
}

func identName(expr ast.Expr) string {
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}

	return ""
}

// collectConstructors maps type names to their NewT/newT functions.
func collectConstructors(file *ast.File) map[string][]m.Constructor {
	constructors := make(map[string][]m.Constructor)

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || fn.Type.TypeParams != nil {
			continue
		}

		embedded, ok := constructedType(fn.Name.Name)
		if !ok {
			continue
		}

		constructor, typeName, ok := describeConstructor(fn, embedded)
		if !ok {
			continue
		}

		constructors[typeName] = append(constructors[typeName], constructor)
	}

	return constructors
}

// constructedType derives the type name embedded in NewT or newT.
func constructedType(funcName string) (string, bool) {
	switch {
	case strings.HasPrefix(funcName, "New") && len(funcName) > len("New"):
		return funcName[len("New"):], true
	case strings.HasPrefix(funcName, "new") && len(funcName) > len("new"):
		return funcName[len("new"):], true
	}

	return "", false
}

// describeConstructor accepts functions returning T, *T, (T, error) or
// (*T, error) where T matches the embedded name.
func describeConstructor(fn *ast.FuncDecl, embedded string) (m.Constructor, string, bool) {
	results := fieldTypes(fn.Type.Results)
	if len(results) == 0 || len(results) > 2 {
		return m.Constructor{}, "", false
	}

	constructor := m.Constructor{Name: fn.Name.Name}

	result := results[0]
	if star, ok := result.(*ast.StarExpr); ok {
		result = star.X
		constructor.Pointer = true
	}

	typeName := identName(result)
	if typeName == "" || !sameTypeName(typeName, embedded) {
		return m.Constructor{}, "", false
	}

	if len(results) == 2 {
		if identName(results[1]) != "error" {
			return m.Constructor{}, "", false
		}

		constructor.ReturnsError = true
	}

	params := fieldTypes(fn.Type.Params)
	constructor.Params = len(params)

	if len(params) > 0 {
		_, constructor.Variadic = params[len(params)-1].(*ast.Ellipsis)
	}

	return constructor, typeName, true
}

// sameTypeName matches the declared name against the name embedded in a
// constructor, where newT may refer to an unexported t.
func sameTypeName(declared, embedded string) bool {
	if declared == embedded {
		return true
	}

	return lowerFirst(embedded) == declared
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}

// fieldTypes expands a field list so that "a, b int" yields two entries.
func fieldTypes(fields *ast.FieldList) []ast.Expr {
	if fields == nil {
		return nil
	}

	var result []ast.Expr

	for _, field := range fields.List {
		count := len(field.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			result = append(result, field.Type)
		}
	}

	return result
}

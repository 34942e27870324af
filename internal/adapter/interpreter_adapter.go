package adapter

import (
	"context"
	"errors"
	"fmt"
	"go/scanner"
	"go/token"
	"io"
	"maps"
	"path"
	"reflect"
	"regexp"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	m "go2json.dev/pkg/go2json/internal/model"
)

// InterpreterAdapter compiles and loads source units. Every call works in its
// own interpreter, so nothing declared by one unit is visible to another.
type InterpreterAdapter interface {
	// Check compiles the unit without running it and returns its error diagnostics.
	Check(ctx context.Context, unit m.SourceUnit, refs m.ReferenceSet) (m.Diagnostics, error)

	// Load compiles the unit in a fresh interpreter and runs its package initialization.
	Load(ctx context.Context, unit m.SourceUnit, refs m.ReferenceSet) (LoadedUnit, error)
}

// LoadedUnit is a unit running inside its interpreter.
type LoadedUnit interface {
	// Call invokes a package-level nullary function given as pkg.Name and
	// returns its first result; a trailing non-nil error result is returned as err.
	Call(symbol string) (any, error)

	// Close releases the interpreter.
	Close()
}

// CompileFailure is returned by Load when the unit does not compile.
type CompileFailure struct {
	Diagnostics m.Diagnostics
}

func (e *CompileFailure) Error() string {
	return "compilation failed:\n" + e.Diagnostics.String()
}

// PanicError reports a panic raised by interpreted code.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

var errUnitClosed = errors.New("unit is closed")

// YaegiInterpreterAdapter runs units with the yaegi Go interpreter, exposing
// only the packages of the reference set.
type YaegiInterpreterAdapter struct{}

// NewYaegiInterpreterAdapter constructs a YaegiInterpreterAdapter.
func NewYaegiInterpreterAdapter() *YaegiInterpreterAdapter {
	return &YaegiInterpreterAdapter{}
}

// Check implements InterpreterAdapter.
func (a *YaegiInterpreterAdapter) Check(ctx context.Context, unit m.SourceUnit, refs m.ReferenceSet) (m.Diagnostics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	interpreter, err := newInterpreter(refs)
	if err != nil {
		return nil, err
	}

	if _, err := interpreter.Compile(unit.Text); err != nil {
		return diagnosticsFromError(err, unit.Name), nil
	}

	return nil, nil
}

// Load implements InterpreterAdapter.
func (a *YaegiInterpreterAdapter) Load(ctx context.Context, unit m.SourceUnit, refs m.ReferenceSet) (LoadedUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	interpreter, err := newInterpreter(refs)
	if err != nil {
		return nil, err
	}

	program, err := interpreter.Compile(unit.Text)
	if err != nil {
		return nil, &CompileFailure{Diagnostics: diagnosticsFromError(err, unit.Name)}
	}

	if _, err := interpreter.Execute(program); err != nil {
		var p interp.Panic
		if errors.As(err, &p) {
			return nil, &PanicError{Value: p.Value, Stack: p.Stack}
		}

		return nil, err
	}

	return &yaegiUnit{interpreter: interpreter}, nil
}

type yaegiUnit struct {
	interpreter *interp.Interpreter
}

func (u *yaegiUnit) Call(symbol string) (value any, err error) {
	if u.interpreter == nil {
		return nil, errUnitClosed
	}

	fn, err := u.interpreter.Eval(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", symbol, err)
	}

	if fn.Kind() != reflect.Func || fn.Type().NumIn() != 0 {
		return nil, fmt.Errorf("%s is not a nullary function", symbol)
	}

	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	return unpackResults(fn.Call(nil))
}

// Close drops the interpreter so the garbage collector can reclaim it.
// yaegi has no explicit release.
func (u *yaegiUnit) Close() {
	u.interpreter = nil
}

func unpackResults(out []reflect.Value) (any, error) {
	if len(out) == 0 {
		return nil, nil
	}

	if len(out) > 1 {
		last := out[len(out)-1]
		if last.IsValid() && last.CanInterface() {
			if err, ok := last.Interface().(error); ok && err != nil {
				return nil, err
			}
		}
	}

	if !out[0].IsValid() {
		return nil, nil
	}

	return out[0].Interface(), nil
}

func newInterpreter(refs m.ReferenceSet) (*interp.Interpreter, error) {
	exports, err := resolveExports(refs)
	if err != nil {
		return nil, err
	}

	interpreter := interp.New(interp.Options{
		Stdin:  strings.NewReader(""),
		Stdout: io.Discard,
		Stderr: io.Discard,
	})

	if err := interpreter.Use(copyExports(exports)); err != nil {
		return nil, fmt.Errorf("failed to register reference set: %w", err)
	}

	return interpreter, nil
}

// exportsCache maps a reference set to its interpreter exports. Cached
// exports are never handed to an interpreter directly; see copyExports.
var exportsCache sync.Map

// copyExports gives an interpreter its own symbol maps, since Use keeps the
// maps it is given and may add to them.
func copyExports(exports interp.Exports) interp.Exports {
	copied := make(interp.Exports, len(exports))
	for key, symbols := range exports {
		copied[key] = maps.Clone(symbols)
	}

	return copied
}

func resolveExports(refs m.ReferenceSet) (interp.Exports, error) {
	key := strings.Join(refs, "\n")
	if cached, ok := exportsCache.Load(key); ok {
		return cached.(interp.Exports), nil
	}

	exports := interp.Exports{}
	found := make(map[string]bool, len(refs))

	// stdlib keys have the form "import/path/name".
	for key, symbols := range stdlib.Symbols {
		importPath := path.Dir(key)
		if !refs.Allows(importPath) {
			continue
		}

		exports[key] = symbols
		found[importPath] = true
	}

	for _, ref := range refs {
		if !found[ref] {
			return nil, fmt.Errorf("reference %q is not available to the interpreter", ref)
		}
	}

	actual, _ := exportsCache.LoadOrStore(key, exports)

	return actual.(interp.Exports), nil
}

// positionPattern matches "file:line:col: message" and "line:col: message".
var positionPattern = regexp.MustCompile(`^(?:(.+?):)?(\d+):(\d+): (.+)$`)

func diagnosticsFromError(err error, filename string) m.Diagnostics {
	var diagnostics m.Diagnostics

	var list scanner.ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			position := e.Pos
			position.Filename = filename
			diagnostics = append(diagnostics, m.Diagnostic{
				Severity: m.SeverityError,
				Message:  e.Msg,
				Position: position,
			})
		}

		return diagnostics
	}

	for _, line := range strings.Split(strings.TrimSpace(err.Error()), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		diagnostics = append(diagnostics, parseDiagnostic(line, filename))
	}

	return diagnostics
}

func parseDiagnostic(line, filename string) m.Diagnostic {
	diagnostic := m.Diagnostic{
		Severity: m.SeverityError,
		Message:  line,
		Position: token.Position{Filename: filename},
	}

	match := positionPattern.FindStringSubmatch(line)
	if match == nil {
		return diagnostic
	}

	lineNumber, _ := strconv.Atoi(match[2])
	column, _ := strconv.Atoi(match[3])
	diagnostic.Message = match[4]
	diagnostic.Position.Line = lineNumber
	diagnostic.Position.Column = column

	return diagnostic
}

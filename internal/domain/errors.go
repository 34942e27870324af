package domain

import (
	"errors"
	"fmt"

	m "go2json.dev/pkg/go2json/internal/model"
)

// ErrSequenceConsumed is yielded when a Sequence is ranged over a second time.
var ErrSequenceConsumed = errors.New("sequence already consumed; materialize the artifact again")

// ParseError reports source text that is not valid Go.
type ParseError struct {
	Unit        string
	Diagnostics m.Diagnostics
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s:\n%s", e.Unit, e.Diagnostics)
}

// CompileError reports a unit that parsed but did not compile. It carries
// every diagnostic, warnings included.
type CompileError struct {
	Unit        string
	Diagnostics m.Diagnostics
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s:\n%s", e.Unit, e.Diagnostics)
}

// ConstructionError reports a default constructor that exists but failed.
type ConstructionError struct {
	TypeName string
	Err      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("failed to construct %s: %v", e.TypeName, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

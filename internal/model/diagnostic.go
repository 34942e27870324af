package model

import (
	"fmt"
	"go/token"
	"strings"
)

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityError marks a diagnostic that fails compilation.
	SeverityError Severity = "error"
	// SeverityWarning marks a diagnostic that is reported but does not fail.
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single message produced while parsing or compiling a unit.
type Diagnostic struct {
	Severity Severity
	Message  string
	Position token.Position
}

func (d Diagnostic) String() string {
	if d.Position.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Position, d.Severity, d.Message)
	}

	if d.Position.Filename != "" {
		return fmt.Sprintf("%s: %s: %s", d.Position.Filename, d.Severity, d.Message)
	}

	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Diagnostics is an ordered collection of diagnostics.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic has error severity.
func (d Diagnostics) HasErrors() bool {
	return len(d.Errors()) > 0
}

// Errors returns the error-severity diagnostics.
func (d Diagnostics) Errors() Diagnostics {
	return d.filter(SeverityError)
}

// Warnings returns the warning-severity diagnostics.
func (d Diagnostics) Warnings() Diagnostics {
	return d.filter(SeverityWarning)
}

func (d Diagnostics) filter(severity Severity) Diagnostics {
	var result Diagnostics

	for _, diagnostic := range d {
		if diagnostic.Severity == severity {
			result = append(result, diagnostic)
		}
	}

	return result
}

func (d Diagnostics) String() string {
	lines := make([]string, 0, len(d))
	for _, diagnostic := range d {
		lines = append(lines, diagnostic.String())
	}

	return strings.Join(lines, "\n")
}

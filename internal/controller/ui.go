// Package controller provides output adapters for displaying go2json results.
package controller

import (
	"context"

	m "go2json.dev/pkg/go2json/internal/model"
)

// UI defines how workflow results reach the user.
// Implementations must be safe for concurrent use.
type UI interface {
	DisplayDocuments(ctx context.Context, format m.Format, documents []m.Document) error
	DisplayTypes(ctx context.Context, listings []m.TypeListing) error
	DisplaySource(ctx context.Context, unit m.SourceUnit) error
	DisplayDiagnostics(ctx context.Context, source m.Path, diagnostics m.Diagnostics)
}

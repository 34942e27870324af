// Package mocks provides testify mocks of the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	m "go2json.dev/pkg/go2json/internal/model"
)

// MockUI is a mock of controller.UI.
type MockUI struct {
	mock.Mock
}

// DisplayDocuments mocks controller.UI.DisplayDocuments.
func (u *MockUI) DisplayDocuments(ctx context.Context, format m.Format, documents []m.Document) error {
	return u.Called(ctx, format, documents).Error(0)
}

// DisplayTypes mocks controller.UI.DisplayTypes.
func (u *MockUI) DisplayTypes(ctx context.Context, listings []m.TypeListing) error {
	return u.Called(ctx, listings).Error(0)
}

// DisplaySource mocks controller.UI.DisplaySource.
func (u *MockUI) DisplaySource(ctx context.Context, unit m.SourceUnit) error {
	return u.Called(ctx, unit).Error(0)
}

// DisplayDiagnostics mocks controller.UI.DisplayDiagnostics.
func (u *MockUI) DisplayDiagnostics(ctx context.Context, source m.Path, diagnostics m.Diagnostics) {
	u.Called(ctx, source, diagnostics)
}

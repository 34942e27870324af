// Package mocks provides testify mocks of the adapter interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	m "go2json.dev/pkg/go2json/internal/model"
)

// MockSourceFSAdapter is a mock of adapter.SourceFSAdapter.
type MockSourceFSAdapter struct {
	mock.Mock
}

// Read mocks adapter.SourceFSAdapter.Read.
func (a *MockSourceFSAdapter) Read(ctx context.Context, location m.Path) (m.SourceUnit, error) {
	args := a.Called(ctx, location)

	return args.Get(0).(m.SourceUnit), args.Error(1)
}

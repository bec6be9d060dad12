package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Snapshotter is a mock implementation of storage.Snapshotter
type Snapshotter struct {
	mock.Mock
}

func (m *Snapshotter) Snapshot(ctx context.Context, filePath string) error {
	args := m.Called(ctx, filePath)
	return args.Error(0)
}

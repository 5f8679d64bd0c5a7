package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bitshepherds/jtd-validate/internal/config"
)

const testSchema = `{
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "uint8"}
	}
}`

const (
	validInstance   = `{"name": "ada", "age": 36}`
	invalidInstance = `{"name": 42, "age": 36}`
)

type MockManager struct {
	mock.Mock
	cfg *config.Config
}

func (m *MockManager) Config() *config.Config {
	if m.cfg == nil {
		return config.Default()
	}
	return m.cfg
}

func (m *MockManager) ValidateInstances(ctx context.Context, params ValidateParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockManager) WatchValidation(ctx context.Context, params ValidateParams, readyChan chan<- struct{}) error {
	args := m.Called(ctx, params, readyChan)
	return args.Error(0)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

package core

import (
	"context"
	"io/fs"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
type MockFileSystem struct {
	mu    sync.Mutex
	files map[string][]byte

	// ReadErr and WriteErr, when set, are returned by every read or write.
	ReadErr  error
	WriteErr error
}

// NewMockFileSystem returns an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{files: make(map[string][]byte)}
}

var _ FileSystem = (*MockFileSystem)(nil)

// SetFile stores content under path.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
}

// GetFile returns the content stored under path.
func (m *MockFileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	return data, ok
}

func (m *MockFileSystem) ReadFile(_ context.Context, path string) ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MockFileSystem) WriteFile(_ context.Context, path string, data []byte, _ fs.FileMode) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.SetFile(path, data)
	return nil
}

func (m *MockFileSystem) Stat(_ context.Context, path string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return mockFileInfo{name: path, size: int64(len(data))}, nil
}

type mockFileInfo struct {
	name string
	size int64
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return i.size }
func (i mockFileInfo) Mode() fs.FileMode  { return PermOwnerRW }
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return false }
func (i mockFileInfo) Sys() any           { return nil }

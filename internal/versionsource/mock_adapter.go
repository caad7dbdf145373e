package versionsource

import (
	"context"

	"github.com/indaco/regexcommit/internal/git"
)

// MockAdapter is a mock implementation of Adapter for testing. Calls holds
// the method names in call order.
type MockAdapter struct {
	AssertNonDirtyFn func(ctx context.Context) error
	AddPathFn        func(ctx context.Context, path string) error
	CommitFn         func(ctx context.Context, message string, extraArgs []string) error
	TagFn            func(ctx context.Context, tag git.TagDescriptor) error
	LatestTagInfoFn  func(ctx context.Context) (*git.DescribeInfo, error)

	Calls []string
}

// Verify MockAdapter implements Adapter.
var _ Adapter = (*MockAdapter)(nil)

// Factory returns an AdapterFactory handing out m.
func (m *MockAdapter) Factory() AdapterFactory {
	return func(context.Context) (Adapter, error) { return m, nil }
}

// AssertNonDirty implements Adapter.
func (m *MockAdapter) AssertNonDirty(ctx context.Context) error {
	m.Calls = append(m.Calls, "AssertNonDirty")
	if m.AssertNonDirtyFn != nil {
		return m.AssertNonDirtyFn(ctx)
	}
	return nil
}

// AddPath implements Adapter.
func (m *MockAdapter) AddPath(ctx context.Context, path string) error {
	m.Calls = append(m.Calls, "AddPath")
	if m.AddPathFn != nil {
		return m.AddPathFn(ctx, path)
	}
	return nil
}

// Commit implements Adapter.
func (m *MockAdapter) Commit(ctx context.Context, message string, extraArgs []string) error {
	m.Calls = append(m.Calls, "Commit")
	if m.CommitFn != nil {
		return m.CommitFn(ctx, message, extraArgs)
	}
	return nil
}

// Tag implements Adapter.
func (m *MockAdapter) Tag(ctx context.Context, tag git.TagDescriptor) error {
	m.Calls = append(m.Calls, "Tag")
	if m.TagFn != nil {
		return m.TagFn(ctx, tag)
	}
	return nil
}

// LatestTagInfo implements Adapter.
func (m *MockAdapter) LatestTagInfo(ctx context.Context) (*git.DescribeInfo, error) {
	m.Calls = append(m.Calls, "LatestTagInfo")
	if m.LatestTagInfoFn != nil {
		return m.LatestTagInfoFn(ctx)
	}
	return nil, nil
}

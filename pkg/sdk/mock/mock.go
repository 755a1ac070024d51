package mock

import (
	"github.com/livp123/houserules/pkg/sdk"
	"github.com/stretchr/testify/mock"
)

// MockPatchCapability is a mock implementation of the PatchCapability interface
type MockPatchCapability struct {
	mock.Mock
}

func (m *MockPatchCapability) Install(target string, kind sdk.InterceptKind, handler sdk.Handler) (sdk.PatchHandle, error) {
	args := m.Called(target, kind, handler)
	return args.Get(0).(sdk.PatchHandle), args.Error(1)
}

func (m *MockPatchCapability) Remove(handle sdk.PatchHandle) error {
	args := m.Called(handle)
	return args.Error(0)
}

// MockRule is a mock implementation of the Rule interface
type MockRule struct {
	mock.Mock
}

func (m *MockRule) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockRule) Description() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockRule) Capabilities() sdk.Capabilities {
	args := m.Called()
	return args.Get(0).(sdk.Capabilities)
}

func (m *MockRule) ConfigObject() any {
	args := m.Called()
	return args.Get(0)
}

func (m *MockRule) OnActivate(gctx *sdk.GameContext) error {
	args := m.Called(gctx)
	return args.Error(0)
}

func (m *MockRule) OnDeactivate(gctx *sdk.GameContext) error {
	args := m.Called(gctx)
	return args.Error(0)
}

func (m *MockRule) OnPreGameCreated(gctx *sdk.GameContext) error {
	args := m.Called(gctx)
	return args.Error(0)
}

func (m *MockRule) OnPostGameCreated(gctx *sdk.GameContext) error {
	args := m.Called(gctx)
	return args.Error(0)
}

// NewMockRule returns a MockRule with identity calls already stubbed.
// NewMockRule 返回已预设标识调用的 MockRule。
func NewMockRule(name string, caps sdk.Capabilities) *MockRule {
	m := &MockRule{}
	m.On("Name").Return(name).Maybe()
	m.On("Description").Return(name + " rule").Maybe()
	m.On("Capabilities").Return(caps).Maybe()
	m.On("ConfigObject").Return(nil).Maybe()
	return m
}

// MockLogger is a mock implementation of the Logger interface
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Infof(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Warnf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Errorf(format string, args ...interface{}) {
	m.Called(format, args)
}

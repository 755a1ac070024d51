package sdk

import (
	"context"
)

// GameContext provides the environment a rule operates in.
// It wraps the host application and its interception capability, offering a unified access point for rules.
// GameContext 为规则运行提供环境。
// 它封装了宿主应用及其拦截能力，为规则提供统一的访问点。
type GameContext struct {
	context.Context
	// Host is the running host application. Rules type-assert it to the host model they target.
	// Host 是正在运行的宿主应用，规则将其断言为目标宿主模型。
	Host any
	// Patcher installs and removes interceptions. It is nil for rules that are not Patchable.
	// Patcher 安装和移除拦截；对不可打补丁的规则为 nil。
	Patcher PatchCapability
	// Ruleset is the name of the ruleset the rule belongs to.
	// Ruleset 是规则所属规则集的名称。
	Ruleset string
	// Logger is the standard logger for rules.
	// Logger 是规则的标准日志记录器。
	Logger Logger
}

// Logger defines the logging interface for rules.
// It abstracts the underlying logging implementation to allow flexibility.
// Logger 为规则定义日志接口。
// 它抽象了底层的日志实现，以允许灵活性。
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// WithPatcher returns a shallow copy of the context carrying the given patcher.
func (c *GameContext) WithPatcher(p PatchCapability) *GameContext {
	cp := *c
	cp.Patcher = p
	return &cp
}

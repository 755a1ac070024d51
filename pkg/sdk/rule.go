package sdk

import "strings"

// SyncableTrigger flags the kinds of host data a rule modifies.
// In multiplayer sessions a non-zero union tells the host which data must be resynchronized.
// SyncableTrigger 标记规则修改的宿主数据类型。
// 在多人会话中，非零的并集告诉宿主哪些数据需要重新同步。
type SyncableTrigger uint8

const (
	SyncableNone SyncableTrigger = 0

	StatusEffectDataModified SyncableTrigger = 1 << iota
	PieceDataModified
	AbilityDataModified
	LevelPropertiesModified
)

var syncableNames = []struct {
	flag SyncableTrigger
	name string
}{
	{StatusEffectDataModified, "status_effect_data"},
	{PieceDataModified, "piece_data"},
	{AbilityDataModified, "ability_data"},
	{LevelPropertiesModified, "level_properties"},
}

func (t SyncableTrigger) String() string {
	if t == SyncableNone {
		return "none"
	}
	var parts []string
	for _, s := range syncableNames {
		if t&s.flag != 0 {
			parts = append(parts, s.name)
		}
	}
	return strings.Join(parts, "|")
}

// Capabilities declares the optional behavior of a rule.
// The engine reads it once, when the rule is placed into a ruleset.
// Capabilities 声明规则的可选行为。
// 引擎在规则被放入规则集时读取一次。
type Capabilities struct {
	// MultiplayerSafe marks rules that may run in a multiplayer session.
	// MultiplayerSafe 标记可以在多人会话中运行的规则。
	MultiplayerSafe bool

	// Patchable marks rules that intercept host behavior through a PatchCapability.
	// Only patchable rules receive a Patcher in their GameContext.
	// Patchable 标记通过 PatchCapability 拦截宿主行为的规则。
	// 只有可打补丁的规则才会在 GameContext 中获得 Patcher。
	Patchable bool

	// ModifiedSyncables lists the host data the rule changes.
	// ModifiedSyncables 列出规则修改的宿主数据。
	ModifiedSyncables SyncableTrigger
}

// Rule defines a single reversible override of host behavior.
// Rule 定义对宿主行为的单个可逆覆盖。
type Rule interface {
	// Name returns the rule kind. It identifies the rule in logs, metrics and exports.
	// Name 返回规则类型，用于日志、指标和导出中标识规则。
	Name() string

	// Description returns a short human readable summary.
	// Description 返回简短的可读摘要。
	Description() string

	// Capabilities returns the capability flags of the rule.
	// Capabilities 返回规则的能力标志。
	Capabilities() Capabilities

	// ConfigObject returns the configuration the rule was built with.
	// It must not have side effects.
	// ConfigObject 返回构建规则时使用的配置，不得有副作用。
	ConfigObject() any

	// OnActivate is called once per activation cycle, before any game hook.
	// OnActivate 在每个激活周期调用一次，早于任何游戏钩子。
	OnActivate(gctx *GameContext) error

	// OnDeactivate restores the state changed by the rule.
	// It is a no-op when the rule has nothing to undo.
	// OnDeactivate 恢复规则修改的状态；没有需要撤销的内容时不做任何事。
	OnDeactivate(gctx *GameContext) error

	// OnPreGameCreated is called when the host is about to create a game.
	// OnPreGameCreated 在宿主即将创建游戏时调用。
	OnPreGameCreated(gctx *GameContext) error

	// OnPostGameCreated is called after the host created a game.
	// OnPostGameCreated 在宿主创建游戏后调用。
	OnPostGameCreated(gctx *GameContext) error
}

// BaseRule provides no-op lifecycle hooks. Embed it and override what is needed.
// BaseRule 提供空操作的生命周期钩子。嵌入后按需覆盖。
type BaseRule struct{}

func (BaseRule) OnActivate(*GameContext) error        { return nil }
func (BaseRule) OnDeactivate(*GameContext) error      { return nil }
func (BaseRule) OnPreGameCreated(*GameContext) error  { return nil }
func (BaseRule) OnPostGameCreated(*GameContext) error { return nil }

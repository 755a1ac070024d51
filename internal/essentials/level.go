package essentials

import (
	"github.com/livp123/houserules/pkg/sdk"
)

type levelOriginal struct {
	value   int
	existed bool
}

// LevelPropertiesModified overwrites level generation properties.
// LevelPropertiesModified 覆盖关卡生成属性。
type LevelPropertiesModified struct {
	sdk.BaseRule
	properties map[string]int
	originals  map[string]levelOriginal
}

func NewLevelPropertiesModified(properties map[string]int) *LevelPropertiesModified {
	return &LevelPropertiesModified{properties: properties}
}

func (r *LevelPropertiesModified) Name() string        { return KindLevelPropertiesModified }
func (r *LevelPropertiesModified) Description() string { return "Level properties are modified" }
func (r *LevelPropertiesModified) ConfigObject() any   { return r.properties }

func (r *LevelPropertiesModified) Capabilities() sdk.Capabilities {
	return sdk.Capabilities{MultiplayerSafe: true, ModifiedSyncables: sdk.LevelPropertiesModified}
}

func (r *LevelPropertiesModified) OnPreGameCreated(gctx *sdk.GameContext) error {
	if r.originals != nil {
		return nil
	}
	g, err := gameOf(r.Name(), gctx)
	if err != nil {
		return err
	}
	r.originals = make(map[string]levelOriginal, len(r.properties))
	for name, value := range r.properties {
		old, ok := g.LevelProperty(name)
		r.originals[name] = levelOriginal{value: old, existed: ok}
		g.SetLevelProperty(name, value)
	}
	return nil
}

func (r *LevelPropertiesModified) OnDeactivate(gctx *sdk.GameContext) error {
	if r.originals == nil {
		return nil
	}
	g, err := gameOf(r.Name(), gctx)
	if err != nil {
		return err
	}
	for name, o := range r.originals {
		if o.existed {
			g.SetLevelProperty(name, o.value)
		} else {
			g.DeleteLevelProperty(name)
		}
	}
	r.originals = nil
	return nil
}

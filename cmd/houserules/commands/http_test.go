package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/livp123/houserules/internal/core"
	builtin "github.com/livp123/houserules/internal/essentials/rulesets"
	"github.com/livp123/houserules/internal/host"
	"github.com/livp123/houserules/internal/rulesets"
	"github.com/livp123/houserules/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, *core.Engine) {
	t.Helper()
	reg := core.NewRegistry()
	require.NoError(t, builtin.RegisterBuiltins(reg))
	game := host.NewGame()
	engine := core.NewEngine(reg, &sdk.GameContext{Host: game, Patcher: game.Patcher()})
	return newRouter(reg, engine), engine
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

// TestRouter_Healthz tests the health endpoint.
// TestRouter_Healthz 测试健康检查端点。
func TestRouter_Healthz(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

// TestRouter_Engine tests that the engine endpoint follows the state machine.
// TestRouter_Engine 测试引擎端点跟随状态机变化。
func TestRouter_Engine(t *testing.T) {
	h, engine := newTestRouter(t)

	var view engineView
	require.NoError(t, json.Unmarshal(get(t, h, "/v1/engine").Body.Bytes(), &view))
	assert.Equal(t, "idle", view.State)

	require.NoError(t, engine.Select(builtin.GlassCannonName))
	engine.Activate()
	require.NoError(t, json.Unmarshal(get(t, h, "/v1/engine").Body.Bytes(), &view))
	assert.Equal(t, "active", view.State)
	assert.Equal(t, builtin.GlassCannonName, view.Ruleset)
	assert.Equal(t, engine.CycleID(), view.Cycle)
	engine.Deactivate()
}

// TestRouter_Rulesets tests listing and exporting rulesets.
// TestRouter_Rulesets 测试列出和导出规则集。
func TestRouter_Rulesets(t *testing.T) {
	h, _ := newTestRouter(t)

	var list []rulesetView
	rec := get(t, h, "/v1/rulesets")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, builtin.BetterSorcererName, list[0].Name)
	assert.Equal(t, 2, list[0].Rules)

	rec = get(t, h, "/v1/rulesets/better%20sorcerer")
	require.Equal(t, http.StatusOK, rec.Code)
	rs, err := rulesets.Parse(rec.Body.Bytes(), "http")
	require.NoError(t, err)
	assert.Equal(t, builtin.BetterSorcererName, rs.Name())

	rec = get(t, h, "/v1/rulesets/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestRouter_Metrics tests that metrics are exposed.
// TestRouter_Metrics 测试指标已暴露。
func TestRouter_Metrics(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "houserules_registered_rulesets")
}

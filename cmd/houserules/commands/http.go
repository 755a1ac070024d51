package commands

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/livp123/houserules/internal/core"
	"github.com/livp123/houserules/internal/rulesets"
	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type rulesetView struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Rules           int    `json:"rules"`
	MultiplayerSafe bool   `json:"multiplayer_safe"`
	Syncables       string `json:"syncables"`
}

type engineView struct {
	State   string `json:"state"`
	Ruleset string `json:"ruleset,omitempty"`
	Cycle   string `json:"cycle,omitempty"`
}

// newRouter builds the HTTP surface of serve. Handlers only read engine state.
// newRouter 构建 serve 的 HTTP 接口，处理器只读取引擎状态。
func newRouter(reg *core.Registry, engine *core.Engine) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "houserules"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/v1/engine", func(w http.ResponseWriter, _ *http.Request) {
		view := engineView{State: engine.State().String(), Cycle: engine.CycleID()}
		if rs := engine.Selected(); rs != nil {
			view.Ruleset = rs.Name()
		}
		writeJSON(w, http.StatusOK, view)
	})

	r.Get("/v1/rulesets", func(w http.ResponseWriter, _ *http.Request) {
		list := reg.List()
		out := make([]rulesetView, 0, len(list))
		for _, rs := range list {
			out = append(out, rulesetView{
				Name:            rs.Name(),
				Description:     rs.Description(),
				Rules:           rs.Len(),
				MultiplayerSafe: rs.MultiplayerSafe(),
				Syncables:       rs.ModifiedSyncables().String(),
			})
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Get("/v1/rulesets/{name}", func(w http.ResponseWriter, req *http.Request) {
		rs, err := reg.Lookup(chi.URLParam(req, "name"))
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, errs.ErrNotFound) {
				status = http.StatusNotFound
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		data, err := rulesets.Encode(rs)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(data)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

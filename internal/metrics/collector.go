package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Lifecycle metrics
	LifecyclePassesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "houserules_lifecycle_passes_total",
			Help: "Total lifecycle passes run by the engine",
		},
		[]string{"phase"},
	)
	RuleCallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "houserules_rule_callbacks_total",
			Help: "Total rule callbacks invoked by the engine",
		},
		[]string{"phase"},
	)
	RuleFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "houserules_rule_failures_total",
			Help: "Total isolated rule callback failures",
		},
		[]string{"rule", "phase"},
	)

	// Engine state: 0 idle, 1 selected, 2 active
	EngineState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "houserules_engine_state",
			Help: "Current engine state (0 idle, 1 selected, 2 active)",
		},
	)

	// Registry metrics
	RegisteredRulesets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "houserules_registered_rulesets",
			Help: "Number of rulesets in the registry",
		},
	)
)

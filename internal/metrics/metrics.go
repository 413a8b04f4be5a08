// Package metrics exposes the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stix_provider_calls_total",
			Help: "LLM provider calls by outcome (ok, empty, error)",
		},
		[]string{"provider", "outcome"},
	)

	RecoveryOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stix_json_recovery_total",
			Help: "JSON recovery results by stage (strict, repair, salvage, failed)",
		},
		[]string{"stage"},
	)

	ExtractionJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stix_extraction_jobs_total",
			Help: "Extraction jobs by terminal status",
		},
		[]string{"status"},
	)
)

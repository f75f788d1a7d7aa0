// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Simulation metrics
	SimulationRunsTotal *prometheus.CounterVec
	SimulationDuration  *prometheus.HistogramVec
	DaysSimulated       prometheus.Counter
	TotalEmitted        *prometheus.GaugeVec
	CapUtilization      *prometheus.GaugeVec

	// Sweep metrics
	ScenariosSwept prometheus.Counter

	// Verification metrics
	VerificationRunsTotal *prometheus.CounterVec
	DivergencesFound      prometheus.Counter

	// Decision metrics
	DecisionsTotal *prometheus.CounterVec

	// Pipeline metrics
	PipelineRunsTotal *prometheus.CounterVec
	PipelineDuration  *prometheus.HistogramVec
	ReportsGenerated  prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "token_emissions_lab"
	}

	return &Metrics{
		// Simulation metrics
		SimulationRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_total",
			Help:      "Total number of trajectory simulations by status",
		}, []string{"trajectory", "status"}),
		SimulationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "duration_seconds",
			Help:      "Trajectory simulation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"trajectory"}),
		DaysSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "days_simulated_total",
			Help:      "Total number of simulated days across all runs",
		}),
		TotalEmitted: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "total_emitted_tokens",
			Help:      "Tokens emitted over the horizon in the latest run",
		}, []string{"trajectory"}),
		CapUtilization: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "cap_utilization_ratio",
			Help:      "Total emitted over final cap in the latest run",
		}, []string{"trajectory"}),

		// Sweep metrics
		ScenariosSwept: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "scenarios_total",
			Help:      "Total number of parameter scenarios swept",
		}),

		// Verification metrics
		VerificationRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verification",
			Name:      "runs_total",
			Help:      "Total number of verification passes by status",
		}, []string{"status"}),
		DivergencesFound: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verification",
			Name:      "divergences_total",
			Help:      "Total number of field divergences found",
		}),

		// Decision metrics
		DecisionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decision",
			Name:      "outcomes_total",
			Help:      "Total number of gate evaluations by outcome",
		}, []string{"outcome"}),

		// Pipeline metrics
		PipelineRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"phase", "status"}),
		PipelineDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Pipeline execution duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}, []string{"phase"}),
		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordSimulationRun records one trajectory simulation.
func RecordSimulationRun(trajectory, status string, seconds float64, days int) {
	DefaultMetrics.SimulationRunsTotal.WithLabelValues(trajectory, status).Inc()
	DefaultMetrics.SimulationDuration.WithLabelValues(trajectory).Observe(seconds)
	DefaultMetrics.DaysSimulated.Add(float64(days))
}

// RecordEmissionOutcome records the latest run's emission totals.
func RecordEmissionOutcome(trajectory string, totalEmitted, capUtilization float64) {
	DefaultMetrics.TotalEmitted.WithLabelValues(trajectory).Set(totalEmitted)
	DefaultMetrics.CapUtilization.WithLabelValues(trajectory).Set(capUtilization)
}

// RecordScenarioSwept increments the swept scenarios counter.
func RecordScenarioSwept() {
	DefaultMetrics.ScenariosSwept.Inc()
}

// RecordVerification records a verification pass.
func RecordVerification(status string, divergences int) {
	DefaultMetrics.VerificationRunsTotal.WithLabelValues(status).Inc()
	if divergences > 0 {
		DefaultMetrics.DivergencesFound.Add(float64(divergences))
	}
}

// RecordDecision records a gate evaluation outcome.
func RecordDecision(outcome string) {
	DefaultMetrics.DecisionsTotal.WithLabelValues(outcome).Inc()
}

// RecordPipelineRun records a pipeline run.
func RecordPipelineRun(phase, status string, durationSeconds float64) {
	DefaultMetrics.PipelineRunsTotal.WithLabelValues(phase, status).Inc()
	DefaultMetrics.PipelineDuration.WithLabelValues(phase).Observe(durationSeconds)
}

// RecordReportGenerated increments the reports generated counter.
func RecordReportGenerated() {
	DefaultMetrics.ReportsGenerated.Inc()
}

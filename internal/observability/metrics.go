package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Synthesis metrics
	synthRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_engine_synthesis_requests_total",
		Help: "Total number of synthesis requests",
	}, []string{"family", "status"})

	synthLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "voice_engine_synthesis_latency_seconds",
		Help:    "Synthesis latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
	}, []string{"family"})

	synthFailovers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_engine_synthesis_failovers_total",
		Help: "Synthesis calls that moved past a configured server",
	}, []string{"family"})

	// Circuit breaker metrics
	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "voice_engine_circuit_breaker_open",
		Help: "Circuit breaker state per server (0=closed, 1=open)",
	}, []string{"family", "server"})

	// Matching metrics
	matchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_engine_match_requests_total",
		Help: "Total number of voice match requests",
	}, []string{"status"})

	matchScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voice_engine_match_score",
		Help:    "Scores of successful voice matches",
		Buckets: []float64{0.5, 0.6, 0.65, 0.7, 0.75, 0.8, 0.85, 0.9, 0.95, 1.0},
	})

	// Contribution pipeline metrics
	pipelineStages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_engine_pipeline_stages_total",
		Help: "Contribution pipeline stage outcomes",
	}, []string{"stage", "status"})

	contributions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_engine_contributions_total",
		Help: "Contribution pipeline final outcomes",
	}, []string{"status"})

	// Audio metrics
	audioBytesOut = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_engine_audio_bytes_total",
		Help: "Total audio bytes produced or ingested",
	}, []string{"direction"})
)

// RecordSynthesis records one synthesis call's outcome and latency.
func RecordSynthesis(family string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	synthRequests.WithLabelValues(family, status).Inc()
	synthLatency.WithLabelValues(family).Observe(time.Since(started).Seconds())
}

// RecordFailover counts a call moving past a server to the next one.
func RecordFailover(family string) {
	synthFailovers.WithLabelValues(family).Inc()
}

// SetBreakerState publishes a server breaker's current state.
func SetBreakerState(family, server string, open bool) {
	v := 0.0
	if open {
		v = 1.0
	}
	circuitBreakerState.WithLabelValues(family, server).Set(v)
}

// RecordMatch records a matching attempt; score is observed only on success.
func RecordMatch(score float64, err error) {
	if err != nil {
		matchRequests.WithLabelValues("no_match").Inc()
		return
	}
	matchRequests.WithLabelValues("success").Inc()
	matchScores.Observe(score)
}

// RecordPipelineStage records one contribution pipeline stage outcome.
func RecordPipelineStage(stage string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	pipelineStages.WithLabelValues(stage, status).Inc()
}

// RecordContribution records a contribution's final status.
func RecordContribution(status string) {
	contributions.WithLabelValues(status).Inc()
}

// RecordAudioBytes counts audio payload volume; direction is "in" or "out".
func RecordAudioBytes(direction string, n int) {
	audioBytesOut.WithLabelValues(direction).Add(float64(n))
}

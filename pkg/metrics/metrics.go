package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"net/http"
)

// 매치 수명주기 및 제출 관련 Prometheus 메트릭
var (
	MatchesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codearena",
		Name:      "matches_created_total",
		Help:      "Total number of matches created",
	}, []string{"visibility"}) // "public" | "private"

	MatchesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "codearena",
		Name:      "matches_completed_total",
		Help:      "Total number of matches completed with a winner",
	})

	MatchesAbandoned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "codearena",
		Name:      "matches_abandoned_total",
		Help:      "Total number of matches expired by the idle timeout",
	})

	ActiveMatches = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "codearena",
		Name:      "active_matches",
		Help:      "Number of matches currently held in the in-memory store",
	})

	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codearena",
		Name:      "submissions_total",
		Help:      "Total number of answer submissions",
	}, []string{"correct"}) // "true" | "false"

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "codearena",
		Name:      "websocket_connections",
		Help:      "Number of live WebSocket connections",
	})

	IssueFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "codearena",
		Name:      "input_issue_failures_total",
		Help:      "Total number of failed puzzle input issuance attempts during match start",
	})
)

// Handler /metrics 엔드포인트 핸들러
func Handler() http.Handler {
	return promhttp.Handler()
}

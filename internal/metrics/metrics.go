package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every collector exposed on /metrics
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	requestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Tracks the number of HTTP requests.",
	}, []string{"method", "status"})

	requestDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Tracks the latencies for HTTP requests.",
		Buckets: prometheus.DefBuckets,
	})

	likeToggles = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "picgram_like_toggles_total",
		Help: "Like state transitions, by direction.",
	}, []string{"direction"})

	commentsSubmitted = factory.NewCounter(prometheus.CounterOpts{
		Name: "picgram_comments_submitted_total",
		Help: "Comments appended to posts.",
	})

	searchQueries = factory.NewCounter(prometheus.CounterOpts{
		Name: "picgram_search_queries_total",
		Help: "Non-empty search queries issued.",
	})

	staleSearchResults = factory.NewCounter(prometheus.CounterOpts{
		Name: "picgram_search_stale_results_total",
		Help: "Search results discarded because a newer query superseded them.",
	})

	collaboratorFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "picgram_collaborator_failures_total",
		Help: "Failed calls to data collaborators, by model.",
	}, []string{"model"})

	activeSessions = factory.NewGauge(prometheus.GaugeOpts{
		Name: "picgram_active_sessions",
		Help: "Viewer sessions currently held in memory.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func LikeToggled(liked bool) {
	if liked {
		likeToggles.WithLabelValues("like").Inc()
		return
	}
	likeToggles.WithLabelValues("unlike").Inc()
}

func CommentSubmitted() { commentsSubmitted.Inc() }

func SearchIssued() { searchQueries.Inc() }

func SearchDiscarded() { staleSearchResults.Inc() }

func CollaboratorFailed(model string) { collaboratorFailures.WithLabelValues(model).Inc() }

func SetActiveSessions(n int) { activeSessions.Set(float64(n)) }

// Middleware counts requests and observes their latency, skipping /metrics itself
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			} else if err != nil {
				status = 500
			}
			requestsTotal.WithLabelValues(c.Request().Method, strconv.Itoa(status)).Inc()
			requestDuration.Observe(time.Since(start).Seconds())
			return err
		}
	}
}

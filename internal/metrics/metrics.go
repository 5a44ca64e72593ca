package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Runs = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweetdig_runs_total",
		Help: "Total pipeline runs",
	})
	RunErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweetdig_run_errors_total",
		Help: "Total pipeline runs that failed",
	})
	RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tweetdig_run_duration_seconds",
		Help:    "Pipeline run duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	PostsFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweetdig_posts_fetched_total",
		Help: "Total posts returned by the provider",
	})
	PostsStored = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweetdig_posts_stored_total",
		Help: "Total posts persisted",
	})
	StoreFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweetdig_store_failures_total",
		Help: "Total per-record store failures",
	})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tweetdig_command_runs_total",
		Help: "Total CLI command invocations",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tweetdig_command_errors_total",
		Help: "Total CLI command failures",
	}, []string{"command"})
)

func init() {
	prometheus.MustRegister(Runs, RunErrors, RunDuration, PostsFetched, PostsStored, StoreFailures, CommandRuns, CommandErrors)
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090"). Empty
// addr (and empty METRICS_ADDR) disables it.
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, nil) }()
}

// ObserveRunDuration records the duration of a run started at start.
func ObserveRunDuration(start time.Time) {
	RunDuration.Observe(time.Since(start).Seconds())
}

func IncCommandRun(cmd string)   { CommandRuns.WithLabelValues(cmd).Inc() }
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }

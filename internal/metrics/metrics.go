package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		},
		[]string{"route", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	WebhookCallsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_webhook_calls_total",
			Help: "Total number of webhook calls by path and outcome.",
		},
		[]string{"path", "outcome"},
	)
	FanoutSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_notification_fanout_size",
			Help:    "Number of notifications created for a single event.",
			Buckets: []float64{1, 10, 100, 500, 1000, 5000},
		},
		[]string{"event"},
	)
	ResumeStepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "portal_resume_analysis_step_duration_seconds",
			Help:       "Duration of each step in the resume analysis pipeline.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
	ResumePageFailuresCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_resume_page_failures_total",
			Help: "Total number of resume pages replaced by an extraction error marker.",
		},
	)
	ExpiredJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_jobs_expired_total",
			Help: "Total number of jobs deactivated after their deadline passed.",
		},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(RequestsCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(WebhookCallsCounter)
		prometheus.MustRegister(FanoutSize)
		prometheus.MustRegister(ResumeStepDuration)
		prometheus.MustRegister(ResumePageFailuresCounter)
		prometheus.MustRegister(ExpiredJobsCounter)
	})
}

func StartMetricsServer(address string) {

	Register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(address, mux))
	}()
	log.Infof("metrics server listening on %s", address)
}

// Package metrics declares the Prometheus collectors shared by the HTTP
// layer, the outbox pipeline, the slot engines and the scheduler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roomslot"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route template, method and status code.",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	TxRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tx_retries_total",
		Help:      "Transactions retried after a serialization failure, deadlock or lock timeout, by SQLSTATE.",
	}, []string{"code"})

	OutboxPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_published_total",
		Help:      "Outbox messages delivered to the broker, by topic and delivery path.",
	}, []string{"topic", "path"})

	OutboxFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_publish_failures_total",
		Help:      "Failed outbox delivery attempts, by topic.",
	}, []string{"topic"})

	OutboxDeadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_failed_total",
		Help:      "Outbox messages marked FAILED after exhausting retries.",
	}, []string{"topic"})

	OutboxCallerRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_caller_runs_total",
		Help:      "Immediate publishes executed on the calling goroutine because the worker queue was full.",
	})

	OutboxQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "outbox_queue_depth",
		Help:      "Messages waiting in the immediate-publish queue.",
	})

	SlotsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slots_generated_total",
		Help:      "Slots inserted by the generation engine.",
	})

	SlotsRetiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slots_retired_total",
		Help:      "Slots deleted by rolling-window retirement.",
	})

	SlotsReclaimedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slots_reclaimed_total",
		Help:      "Expired PENDING slots returned to AVAILABLE.",
	})

	JobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_runs_total",
		Help:      "Scheduled job executions by job name and outcome (ok, error, skipped).",
	}, []string{"job", "outcome"})

	JobDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "job_duration_seconds",
		Help:      "Scheduled job execution time.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})
)

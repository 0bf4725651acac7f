// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/danielhkuo/quickly-ballot/ballot"
)

// Recorder owns the ballot's Prometheus collectors.
type Recorder struct {
	factory promauto.Factory

	rejections *prometheus.CounterVec
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		factory: factory,
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ballot_commands_rejected_total",
			Help: "Total number of rejected ballot commands, by operation and error code",
		}, []string{"op", "code"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ballot_http_requests_total",
			Help: "Total number of HTTP requests, by route and status",
		}, []string{"route", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ballot_http_request_duration_seconds",
			Help:    "HTTP request latency, by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// ObserveRejection matches the signature of ballot.WithRejectionHook.
func (r *Recorder) ObserveRejection(op string, err error) {
	r.rejections.WithLabelValues(op, ballot.ErrorCode(err)).Inc()
}

func (r *Recorder) ObserveRequest(route string, status int, d time.Duration) {
	r.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	r.latency.WithLabelValues(route).Observe(d.Seconds())
}

// Observe exposes the engine's tally state as gauges read at scrape time.
// Call it once per engine.
func (r *Recorder) Observe(e *ballot.Engine) {
	r.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "ballot_workflow_status",
		Help: "Current workflow status code (0 RegisteringVoters .. 5 VotesTallied)",
	}, func() float64 { return float64(e.WorkflowStatus()) })
	r.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "ballot_winning_proposal_id",
		Help: "Id of the proposal currently leading",
	}, func() float64 { return float64(e.WinningProposalID()) })
	r.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "ballot_max_votes",
		Help: "Vote count of the leading proposal",
	}, func() float64 { return float64(e.MaxVotes()) })
	r.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "ballot_votes_cast",
		Help: "Total number of votes cast",
	}, func() float64 { return float64(e.Snapshot().VotesCast) })
	r.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "ballot_voters_registered",
		Help: "Number of registered voters",
	}, func() float64 { return float64(e.Snapshot().VoterCount) })
	r.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "ballot_proposals",
		Help: "Number of proposals, GENESIS included",
	}, func() float64 { return float64(e.Snapshot().ProposalCount) })
}

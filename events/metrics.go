// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type busMetrics struct {
	eventsTotal    *prometheus.CounterVec
	subscribers    *prometheus.GaugeVec
	deliveryErrors *prometheus.CounterVec
}

func newBusMetrics(reg prometheus.Registerer) *busMetrics {
	factory := promauto.With(reg)
	return &busMetrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ballot_events_published_total",
			Help: "Total number of ballot events published, by type",
		}, []string{"type"}),
		subscribers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ballot_event_subscribers",
			Help: "Current number of event subscribers, by type and kind",
		}, []string{"type", "kind"}),
		deliveryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ballot_event_delivery_errors_total",
			Help: "Total number of failed event deliveries, by type and kind",
		}, []string{"type", "kind"}),
	}
}

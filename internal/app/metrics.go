package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RoomsActive       prometheus.Gauge
	ConnectionsActive prometheus.Gauge
	MessagesTotal     prometheus.Counter
	JoinsRejected     prometheus.Counter
	BroadcastDropped  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RoomsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "chat_rooms_active",
			Help: "Rooms currently open.",
		}),
		ConnectionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "chat_connections_active",
			Help: "Live real-time connections.",
		}),
		MessagesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Messages appended to room logs.",
		}),
		JoinsRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "chat_joins_rejected_total",
			Help: "Joins refused because the room does not exist.",
		}),
		BroadcastDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "chat_broadcast_dropped_total",
			Help: "Frames not delivered because a subscriber queue was full.",
		}),
	}
}

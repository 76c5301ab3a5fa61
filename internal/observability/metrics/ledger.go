package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoomsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splitroom_rooms_created_total",
			Help: "Total number of rooms created",
		},
	)

	RoomsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splitroom_rooms_closed_total",
			Help: "Total number of rooms closed",
		},
	)

	RoomCodeCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splitroom_room_code_collisions_total",
			Help: "Total number of room code collisions hit during allocation",
		},
	)

	RoomCodeExhaustions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splitroom_room_code_exhaustions_total",
			Help: "Total number of room creations that ran out of code attempts",
		},
	)

	MembershipJoins = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splitroom_membership_joins_total",
			Help: "Total number of room joins",
		},
	)

	MembershipLeaves = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splitroom_membership_leaves_total",
			Help: "Total number of room leaves",
		},
	)

	TransfersRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splitroom_transfers_recorded_total",
			Help: "Total number of transfers recorded",
		},
	)

	BalanceComputations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splitroom_balance_computations_total",
			Help: "Total number of on-demand balance computations",
		},
	)

	FeedConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "splitroom_feed_connections",
			Help: "Number of active room feed websocket connections",
		},
	)

	FeedEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitroom_feed_events_published_total",
			Help: "Total number of room feed events published",
		},
		[]string{"type"},
	)
)

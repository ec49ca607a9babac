// Package metrics defines the custom Prometheus metrics for the parcel
// workflow service. It is the single source of truth for metric names,
// labels and help strings; all collectors register themselves with the
// default registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "parcelbridge"

// ShipmentsBookedTotal counts newly booked shipments.
// Labels:
//   - direction: "BD_TO_HK" or "HK_TO_BD"
//   - channel: "customer" or "staff"
var ShipmentsBookedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_booked_total",
		Help:      "Total number of shipments booked, by corridor and booking channel.",
	},
	[]string{"direction", "channel"},
)

// StatusTransitionsTotal counts applied shipment status transitions.
// Label:
//   - status: the status the shipment moved to
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of shipment status transitions applied, by target status.",
	},
	[]string{"status"},
)

// ManifestsFinalizedTotal counts finalized manifests.
var ManifestsFinalizedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "manifests_finalized_total",
		Help:      "Total number of manifests finalized.",
	},
)

// BookingDedupTotal counts idempotency-key decisions on customer bookings.
// Label:
//   - result: "hit" (duplicate, existing shipment returned) or "miss"
var BookingDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_dedup_total",
		Help:      "Total number of booking idempotency checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

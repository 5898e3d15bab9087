package session

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/dowdarts/spectators-videochat/internal/otel"
)

var (
	sessionsActive      metric.Int64UpDownCounter
	joinsTotal          metric.Int64Counter
	joinsRejected       metric.Int64Counter
	negotiationsFailed  metric.Int64Counter
	candidatesDiscarded metric.Int64Counter
	tracksReceived      metric.Int64Counter
)

func init() {
	f := intotel.NewFactory(intotel.MeterName, intotel.PrefixSession)

	f.Int64UpDownCounter(&sessionsActive, "active",
		metric.WithDescription("Sessions currently joined to a room channel"))
	f.Int64Counter(&joinsTotal, "joins_total",
		metric.WithDescription("Join attempts"))
	f.Int64Counter(&joinsRejected, "joins_rejected_total",
		metric.WithDescription("Join attempts rejected during validation or channel setup"))
	f.Int64Counter(&negotiationsFailed, "negotiation_failed_total",
		metric.WithDescription("Offers that could not be answered"))
	f.Int64Counter(&candidatesDiscarded, "ice_discarded_total",
		metric.WithDescription("Remote ICE candidates that failed to apply"))
	f.Int64Counter(&tracksReceived, "tracks_total",
		metric.WithDescription("Inbound media tracks"))
}

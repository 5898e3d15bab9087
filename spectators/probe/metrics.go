package probe

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/dowdarts/spectators-videochat/internal/otel"
)

var (
	probesStarted  metric.Int64Counter
	probesFailed   metric.Int64Counter
	probesTimedOut metric.Int64Counter
	roomsLive      metric.Int64Counter
	probeDuration  metric.Float64Histogram
)

func init() {
	f := intotel.NewFactory(intotel.MeterName, intotel.PrefixProbe)

	f.Int64Counter(&probesStarted, "started_total",
		metric.WithDescription("Liveness probes started"))
	f.Int64Counter(&probesFailed, "failed_total",
		metric.WithDescription("Liveness probes that could not open or subscribe their channel"))
	f.Int64Counter(&probesTimedOut, "timed_out_total",
		metric.WithDescription("Liveness probes decided by timeout instead of presence sync"))
	f.Int64Counter(&roomsLive, "live_total",
		metric.WithDescription("Probed rooms judged live"))
	f.Float64Histogram(&probeDuration, "duration_seconds",
		metric.WithDescription("Time from subscribe to decision"),
		metric.WithUnit("s"))
}

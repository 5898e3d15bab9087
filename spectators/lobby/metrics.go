package lobby

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/dowdarts/spectators-videochat/internal/otel"
)

var (
	refreshTotal    metric.Int64Counter
	refreshFailed   metric.Int64Counter
	refreshDuration metric.Float64Histogram
)

func init() {
	f := intotel.NewFactory(intotel.MeterName, intotel.PrefixLobby)

	f.Int64Counter(&refreshTotal, "refresh_total",
		metric.WithDescription("Lobby refresh cycles started"))
	f.Int64Counter(&refreshFailed, "refresh_failed_total",
		metric.WithDescription("Lobby refresh cycles that ended degraded"))
	f.Float64Histogram(&refreshDuration, "refresh_duration_seconds",
		metric.WithDescription("Time to list and probe rooms"),
		metric.WithUnit("s"))
}

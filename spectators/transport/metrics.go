package transport

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/dowdarts/spectators-videochat/internal/otel"
)

var (
	requestsTotal     metric.Int64Counter
	watchRateLimited  metric.Int64Counter
	credentialsIssued metric.Int64Counter
	wsConnections     metric.Int64UpDownCounter
)

func init() {
	f := intotel.NewFactory(intotel.MeterName, intotel.PrefixHTTP)

	f.Int64Counter(&requestsTotal, "requests_total",
		metric.WithDescription("HTTP requests by route and status"))
	f.Int64Counter(&watchRateLimited, "watch_rate_limited_total",
		metric.WithDescription("Watch requests refused by the per client rate limit"))
	f.Int64Counter(&credentialsIssued, "credentials_issued_total",
		metric.WithDescription("Spectator links issued"))
	f.Int64UpDownCounter(&wsConnections, "ws_connections",
		metric.WithDescription("Open session websockets"))
}

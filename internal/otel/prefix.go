package otel

// Metric prefixes, one per component.
const (
	PrefixLobby    = "lobby"
	PrefixProbe    = "probe"
	PrefixSession  = "spectator_session"
	PrefixRealtime = "realtime"
	PrefixHTTP     = "http"
)

// MeterName is the instrumentation scope for every meter in this service.
const MeterName = "github.com/dowdarts/spectators-videochat"

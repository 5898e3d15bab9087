package transport

import (
	"time"

	"github.com/spf13/viper"
)

// MissingParams decides what /viewer does without a room code or token.
type MissingParams string

const (
	// send the viewer back to the lobby
	MissingParamsRedirect MissingParams = "redirect"
	// answer 400 and let the client show its join form
	MissingParamsPrompt MissingParams = "prompt"
)

type Config struct {
	ServiceName    string        `mapstructure:"service_name"`
	ViewerURL      string        `mapstructure:"viewer_url"`
	LobbyURL       string        `mapstructure:"lobby_url"`
	MissingParams  MissingParams `mapstructure:"missing_params"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	WatchRate      RateConfig    `mapstructure:"watch_rate"`
	StatsInterval  time.Duration `mapstructure:"stats_interval"`
}

type RateConfig struct {
	PerSecond float64 `mapstructure:"per_second"`
	Burst     int     `mapstructure:"burst"`
	// distinct client IPs tracked at once
	Clients int `mapstructure:"clients"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("service_name"), "spectators")
	v.SetDefault(p("viewer_url"), "/viewer")
	v.SetDefault(p("lobby_url"), "/api/lobby")
	v.SetDefault(p("missing_params"), string(MissingParamsRedirect))
	v.SetDefault(p("allowed_origins"), []string{"*"})
	v.SetDefault(p("watch_rate.per_second"), 1.0)
	v.SetDefault(p("watch_rate.burst"), 5)
	v.SetDefault(p("watch_rate.clients"), 4096)
	v.SetDefault(p("stats_interval"), "2s")
}

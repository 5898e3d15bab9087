package realtime

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Config struct {
	Driver            string        `mapstructure:"driver"`
	Prefix            string        `mapstructure:"prefix"`
	PresenceTTL       time.Duration `mapstructure:"presence_ttl"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	SubscribeTimeout  time.Duration `mapstructure:"subscribe_timeout"`
	EventBuffer       int           `mapstructure:"event_buffer"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("driver"), DriverRedis)
	v.SetDefault(p("prefix"), "realtime")
	v.SetDefault(p("presence_ttl"), "30s")
	v.SetDefault(p("heartbeat_interval"), "10s")
	v.SetDefault(p("subscribe_timeout"), "5s")
	v.SetDefault(p("event_buffer"), 64)
}

package config

import (
	"time"

	"github.com/spf13/viper"
)

type App struct {
	Name            string        `mapstructure:"name"`
	LogConfigFile   string        `mapstructure:"log_config_file"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("name"), "spectators")
	v.SetDefault(p("log_config_file"), "") // empty: console logger
	v.SetDefault(p("shutdown_timeout"), "10s")
}

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	App   App `mapstructure:"app"`
	Lobby struct {
		ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	} `mapstructure:"lobby"`
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(&testConfig{}, func(v *viper.Viper) {
		Setup(v, "app")
		v.SetDefault("lobby.probe_timeout", "1200ms")
	})
	require.NoError(t, err)

	assert.Equal(t, "spectators", cfg.App.Name)
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, 1200*time.Millisecond, cfg.Lobby.ProbeTimeout)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LOBBY_PROBE_TIMEOUT", "2s")

	cfg, err := Load(&testConfig{}, func(v *viper.Viper) {
		v.SetDefault("lobby.probe_timeout", "1200ms")
	})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Lobby.ProbeTimeout)
}

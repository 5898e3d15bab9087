package rtc

import "github.com/spf13/viper"

type Config struct {
	STUNURLs []string `mapstructure:"stun_urls"`
}

// DefaultSTUNURLs are public Google STUN servers. No TURN relay is configured.
var DefaultSTUNURLs = []string{
	"stun:stun.l.google.com:19302",
	"stun:stun1.l.google.com:19302",
	"stun:stun2.l.google.com:19302",
	"stun:stun3.l.google.com:19302",
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("stun_urls"), DefaultSTUNURLs)
}

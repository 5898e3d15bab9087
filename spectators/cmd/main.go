package main

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"

	"github.com/dowdarts/spectators-videochat/internal/config"
	"github.com/dowdarts/spectators-videochat/internal/httputil"
	"github.com/dowdarts/spectators-videochat/internal/jwt"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/otel"
	"github.com/dowdarts/spectators-videochat/internal/realtime"
	"github.com/dowdarts/spectators-videochat/internal/realtime/memory"
	realtimeredis "github.com/dowdarts/spectators-videochat/internal/realtime/redis"
	"github.com/dowdarts/spectators-videochat/internal/redis"
	"github.com/dowdarts/spectators-videochat/internal/rtc"
	"github.com/dowdarts/spectators-videochat/internal/workflow"
	"github.com/dowdarts/spectators-videochat/spectators/credential"
	"github.com/dowdarts/spectators-videochat/spectators/directory"
	"github.com/dowdarts/spectators-videochat/spectators/lobby"
	"github.com/dowdarts/spectators-videochat/spectators/probe"
	"github.com/dowdarts/spectators-videochat/spectators/roomcode"
	"github.com/dowdarts/spectators-videochat/spectators/session"
	"github.com/dowdarts/spectators-videochat/spectators/store"
	"github.com/dowdarts/spectators-videochat/spectators/transport"
)

type LobbyConfig struct {
	StaleAfter   time.Duration `mapstructure:"stale_after"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	AutoRefresh  time.Duration `mapstructure:"auto_refresh"`
}

type RoomCodeConfig struct {
	Format roomcode.Format `mapstructure:"format"`
}

type Config struct {
	App            config.App        `mapstructure:"app"`
	Http           httputil.Config   `mapstructure:"http"`
	Redis          redis.Config      `mapstructure:"redis"`
	Otel           otel.Config       `mapstructure:"otel"`
	Realtime       realtime.Config   `mapstructure:"realtime"`
	RTC            rtc.Config        `mapstructure:"rtc"`
	Transport      transport.Config  `mapstructure:"transport"`
	Lobby          LobbyConfig       `mapstructure:"lobby"`
	Credential     credential.Config `mapstructure:"credential"`
	RoomCode       RoomCodeConfig    `mapstructure:"room_code"`
	StorePrefix    string            `mapstructure:"store_prefix"`
	JWTSecret      string            `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration     `mapstructure:"access_token_ttl"`
}

func loadConfig() (*Config, error) {
	return config.Load(&Config{}, func(v *viper.Viper) {
		v.SetDefault("store_prefix", "spec")
		v.SetDefault("jwt_secret", "MY-secret-key-change-in-production")
		v.SetDefault("access_token_ttl", "12h")
		v.SetDefault("lobby.stale_after", directory.DefaultStaleAfter)
		v.SetDefault("lobby.probe_timeout", probe.DefaultTimeout)
		v.SetDefault("lobby.auto_refresh", "0s")
		v.SetDefault("credential.ttl", credential.DefaultTTL)
		v.SetDefault("credential.policy", string(credential.PolicyShared))
		v.SetDefault("room_code.format", string(roomcode.FormatAlnum6))

		config.Setup(v, "app")
		redis.Setup(v, "redis")
		otel.Setup(v, "otel")
		httputil.Setup(v, "http")
		realtime.Setup(v, "realtime")
		rtc.Setup(v, "rtc")
		transport.Setup(v, "transport")

		// override default addrs to ease testing
		v.SetDefault("http.addr", "0.0.0.0:8090")
	})
}

func main() {
	config, err := loadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", err)
	}

	logger, err := log.NewLogger(config.App.LogConfigFile)
	if err != nil {
		log.Fatal("Failed to create logger", err)
	}
	defer logger.Sync()

	// global background context
	ctx := context.Background()

	otelShutdown, err := otel.Init(ctx, &config.Otel, logger)
	if err != nil {
		logger.Fatal("Failed to initialize OTEL provider", log.Error(err))
	}

	logger.Info("Starting Spectator Service...")

	roomCodes, err := roomcode.NewPolicy(config.RoomCode.Format)
	if err != nil {
		logger.Fatal("Invalid room code format", log.Error(err))
	}

	redisClient := redis.NewClient(&config.Redis)
	if err := redis.Ping(ctx, redisClient); err != nil {
		logger.Fatal("Failed to connect to Redis", log.Error(err))
	}

	clock := clockwork.NewRealClock()

	var rt realtime.Client
	switch config.Realtime.Driver {
	case realtime.DriverMemory:
		rt = memory.NewHub(config.Realtime.EventBuffer)
	case realtime.DriverRedis:
		rt = realtimeredis.NewClient(redisClient, &config.Realtime, clock, logger.Module("Realtime"))
	default:
		logger.Fatal("Unknown realtime driver", log.String("driver", config.Realtime.Driver))
	}

	peers, err := rtc.NewFactory(&config.RTC, logger.Module("RTC"))
	if err != nil {
		logger.Fatal("Failed to create peer connection factory", log.Error(err))
	}

	roomStore := store.NewRoomStore(redisClient, config.StorePrefix, logger.Module("RoomStore"))
	credStore := store.NewCredentialStore(redisClient, config.StorePrefix, logger.Module("CredentialStore"))

	credentials := credential.New(credStore, clock, config.Credential, logger.Module("Credential"))
	rooms := directory.New(roomStore, clock, config.Lobby.StaleAfter, logger.Module("Directory"))
	prober := probe.New(rt, clock, config.Lobby.ProbeTimeout, logger.Module("Prober"))
	spectatorLobby := lobby.New(
		rooms,
		prober,
		clock,
		lobby.Config{AutoRefresh: config.Lobby.AutoRefresh},
		logger.Module("Lobby"),
	)

	sessions := session.NewManager(session.Deps{
		Credentials: credentials,
		Rooms:       roomStore,
		Realtime:    rt,
		Peers:       peers,
		RoomCodes:   roomCodes,
	}, logger.Module("Session"))

	auth := jwt.NewAuth(config.JWTSecret, jwt.Options{
		Issuer: config.App.Name,
		TTL:    config.AccessTokenTTL,
	})

	router, err := transport.NewRouter(
		spectatorLobby,
		credentials,
		sessions,
		auth,
		roomCodes,
		config.Transport,
		logger.Module("Router"),
	)
	if err != nil {
		logger.Fatal("Failed to create router", log.Error(err))
	}
	server := httputil.NewServer(&config.Http, router.Handler())

	if err := spectatorLobby.Start(ctx); err != nil {
		logger.Fatal("Failed to start Lobby", log.Error(err))
	}

	go func() {
		logger.Info("Starting REST API server", log.String("addr", config.Http.Addr))
		if err := server.Listen(); err != nil {
			logger.Fatal("Failed to start REST API server", log.Error(err))
		}
	}()

	cleanup := func(ctx context.Context) {
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error shutting down REST API server", log.Error(err))
		}
		if err := sessions.Shutdown(ctx); err != nil {
			logger.Error("Error leaving sessions", log.Error(err))
		}
		spectatorLobby.Stop()

		if err := redisClient.Close(); err != nil {
			logger.Error("Error closing Redis client", log.Error(err))
		}
		if err := otelShutdown(ctx); err != nil {
			logger.Error("Failed to shutdown OTEL", log.Error(err))
		}
	}
	workflow.WaitGracefulShutdown(ctx, logger.Module("CleanUp"), cleanup, config.App.ShutdownTimeout)
}

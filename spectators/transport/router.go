package transport

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dowdarts/spectators-videochat/internal/jwt"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/validation"
	"github.com/dowdarts/spectators-videochat/spectators"
	"github.com/dowdarts/spectators-videochat/spectators/roomcode"
)

type Router struct {
	lobby       spectators.Lobby
	credentials spectators.Credentials
	sessions    spectators.SessionManager
	auth        jwt.Auth
	cfg         Config
	limiter     *ipLimiter
	engine      *gin.Engine
	mux         *http.ServeMux
	logger      *log.Logger
}

func NewRouter(
	lobby spectators.Lobby,
	credentials spectators.Credentials,
	sessions spectators.SessionManager,
	auth jwt.Auth,
	roomCodes *roomcode.Policy,
	cfg Config,
	logger *log.Logger,
) (*Router, error) {
	limiter, err := newIPLimiter(cfg.WatchRate)
	if err != nil {
		return nil, err
	}
	if cfg.MissingParams == "" {
		cfg.MissingParams = MissingParamsRedirect
	}
	if cfg.StatsInterval <= 0 {
		cfg.StatsInterval = 2 * time.Second
	}

	validation.MustRegisterRoomCode(roomCodes.Valid)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware(cfg.ServiceName))

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Location"},
	}
	if len(cfg.AllowedOrigins) == 0 || cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	engine.Use(cors.New(corsCfg))
	engine.Use(requestLogger(logger))

	r := &Router{
		lobby:       lobby,
		credentials: credentials,
		sessions:    sessions,
		auth:        auth,
		cfg:         cfg,
		limiter:     limiter,
		engine:      engine,
		mux:         http.NewServeMux(),
		logger:      logger,
	}

	r.setupRoutes()
	return r, nil
}

// Handler serves the websocket stream from a plain mux, since upgrades need
// the raw ResponseWriter, and everything else through gin.
func (r *Router) Handler() http.Handler {
	return r.mux
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", r.healthCheck)

	lobby := r.engine.Group("/api/lobby")
	lobby.GET("", r.latestLobby)
	lobby.POST("/refresh", r.refreshLobby)
	lobby.GET("/rooms", r.refreshLobby)
	lobby.POST("/rooms/:roomCode/watch", r.rateLimit, r.watchRoom)

	r.engine.GET("/viewer", r.viewer)
	r.engine.POST("/api/sessions", r.joinForm)

	session := r.engine.Group("/api/sessions/:sessionId", r.requireSession)
	session.GET("", r.getSession)
	session.DELETE("", r.leaveSession)
	session.DELETE("/notice", r.dismissNotice)

	r.mux.HandleFunc("GET /ws/sessions/{sessionId}", r.watchSession)
	r.mux.Handle("/", r.engine)
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		requestsTotal.Add(c.Request.Context(), 1, metric.WithAttributes(
			attribute.String("route", route),
			attribute.Int("status", status),
		))
		logger.Debug("request",
			log.String("method", c.Request.Method),
			log.String("route", route),
			log.Int("status", status),
			log.Duration("latency", time.Since(start)),
			log.String("client", c.ClientIP()))
	}
}

func (r *Router) rateLimit(c *gin.Context) {
	if !r.limiter.Allow(c.ClientIP()) {
		watchRateLimited.Add(c.Request.Context(), 1)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error":   "too many requests",
		})
		return
	}
	c.Next()
}

func (r *Router) latestLobby(c *gin.Context) {
	snap := r.lobby.Latest()
	if snap == nil {
		// nothing completed yet, run the first cycle inline
		r.refreshLobby(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"lobby":   snap,
	})
}

func (r *Router) refreshLobby(c *gin.Context) {
	// a dropped client must not abandon a cycle other readers will see;
	// the lobby still bounds it by its own lifetime
	snap, err := r.lobby.Refresh(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		r.logger.Warn("lobby refresh failed", log.Error(err))
		if snap == nil {
			snap = r.lobby.Latest()
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success":  false,
			"degraded": true,
			"error":    "Error loading rooms",
			"lobby":    snap,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"lobby":   snap,
	})
}

// watchRoom issues a spectator link and points the client at the viewer.
func (r *Router) watchRoom(c *gin.Context) {
	var uri WatchURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": validation.FormatValidationError(err),
		})
		return
	}

	cred, err := r.credentials.Issue(c.Request.Context(), uri.RoomCode)
	if err != nil {
		r.logger.Error("failed to issue spectator link", log.RoomCode(uri.RoomCode), log.Error(err))
		abortWithError(c, err)
		return
	}
	credentialsIssued.Add(c.Request.Context(), 1)

	viewerURL, err := r.viewerURL(cred.RoomCode, cred.Token)
	if err != nil {
		r.logger.Error("invalid viewer url", log.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "invalid viewer url",
		})
		return
	}

	c.Header("Location", viewerURL)
	c.JSON(http.StatusSeeOther, gin.H{
		"success":   true,
		"roomCode":  cred.RoomCode,
		"token":     cred.Token,
		"expiresAt": cred.ExpiresAt,
		"viewerUrl": viewerURL,
	})
}

func (r *Router) viewerURL(roomCode, token string) (string, error) {
	u, err := url.Parse(r.cfg.ViewerURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("roomCode", roomCode)
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// viewer opens a session from a spectator link.
func (r *Router) viewer(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": validation.FormatValidationError(err),
		})
		return
	}

	if req.RoomCode == "" || req.Token == "" {
		switch r.cfg.MissingParams {
		case MissingParamsPrompt:
			c.JSON(http.StatusBadRequest, gin.H{
				"success":  false,
				"prompt":   true,
				"roomCode": req.RoomCode,
				"error":    "roomCode and token are required",
			})
		default:
			c.Redirect(http.StatusFound, r.cfg.LobbyURL)
		}
		return
	}

	r.openSession(c, req)
}

// joinForm is the inline join prompt.
func (r *Router) joinForm(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": validation.FormatValidationError(err),
		})
		return
	}
	r.openSession(c, req)
}

func (r *Router) openSession(c *gin.Context, req JoinRequest) {
	snap, err := r.sessions.Open(c.Request.Context(), req.RoomCode, req.Token)
	if err != nil {
		r.logger.Info("join refused", log.String("roomCode", req.RoomCode), log.Error(err))
		abortWithError(c, err)
		return
	}

	accessToken, err := r.auth.Sign(snap.ID, snap.RoomCode)
	if err != nil {
		r.logger.Error("failed to sign access token", log.SessionID(snap.ID), log.Error(err))
		if lerr := r.sessions.Leave(c.Request.Context(), snap.ID); lerr != nil {
			r.logger.Warn("leave after sign failure", log.Error(lerr))
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to issue access token",
		})
		return
	}

	r.logger.Info("session opened", log.SessionID(snap.ID), log.RoomCode(snap.RoomCode))
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"session":     snap,
		"accessToken": accessToken,
	})
}

func (r *Router) getSession(c *gin.Context) {
	snap, err := r.sessions.Snapshot(sessionPayload(c).SessionID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": snap,
	})
}

func (r *Router) leaveSession(c *gin.Context) {
	id := sessionPayload(c).SessionID
	if err := r.sessions.Leave(c.Request.Context(), id); err != nil {
		r.logger.Error("failed to leave session", log.SessionID(id), log.Error(err))
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *Router) dismissNotice(c *gin.Context) {
	if err := r.sessions.DismissNotice(sessionPayload(c).SessionID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

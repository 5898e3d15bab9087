package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/google/uuid"

	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/spectators"
)

const (
	pingInterval = 10 * time.Second
	pingTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
)

// watchSession streams session snapshots over a websocket. Clients may send
// {"action":"dismiss"} or {"action":"leave"}. It is mounted outside gin so
// the upgrade can hijack the connection.
func (r *Router) watchSession(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("sessionId")
	if err := uuid.Validate(id); err != nil {
		writeJSON(w, http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
		})
		return
	}
	if payload, status, message := r.verifySession(id, bearerToken(req)); payload == nil {
		writeJSON(w, status, gin.H{
			"success": false,
			"error":   message,
		})
		return
	}

	updates, stop, err := r.sessions.Watch(id)
	if err != nil {
		status, message := statusOf(err)
		writeJSON(w, status, gin.H{
			"success": false,
			"error":   message,
		})
		return
	}
	defer stop()

	opts := &websocket.AcceptOptions{}
	if len(r.cfg.AllowedOrigins) == 0 || r.cfg.AllowedOrigins[0] == "*" {
		opts.InsecureSkipVerify = true
	} else {
		opts.OriginPatterns = r.cfg.AllowedOrigins
	}
	conn, err := websocket.Accept(w, req, opts)
	if err != nil {
		r.logger.Warn("websocket accept failed", log.SessionID(id), log.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	wsConnections.Add(ctx, 1)
	defer wsConnections.Add(context.WithoutCancel(ctx), -1)

	logger := r.logger.With(log.SessionID(id))
	logger.Debug("session websocket opened", log.String("client", req.RemoteAddr))
	go r.readClient(ctx, cancel, conn, id, logger)

	code, reason := r.writeUpdates(ctx, conn, id, updates, logger)
	conn.Close(code, reason)
}

// writeJSON answers requests served outside gin.
func writeJSON(w http.ResponseWriter, status int, body any) {
	out := render.JSON{Data: body}
	out.WriteContentType(w)
	w.WriteHeader(status)
	_ = out.Render(w)
}

func (r *Router) writeUpdates(
	ctx context.Context,
	conn *websocket.Conn,
	id string,
	updates <-chan spectators.SessionSnapshot,
	logger *log.Logger,
) (websocket.StatusCode, string) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	// media counters change without a state change
	stats := time.NewTicker(r.cfg.StatsInterval)
	defer stats.Stop()

	write := func(v any) error {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		defer cancel()
		return wsjson.Write(wctx, conn, v)
	}

	for {
		select {
		case <-ctx.Done():
			return websocket.StatusNormalClosure, "bye"
		case snap, ok := <-updates:
			if !ok {
				return websocket.StatusNormalClosure, "session ended"
			}
			if err := write(snap); err != nil {
				logger.Debug("websocket write failed", log.Error(err))
				return websocket.StatusInternalError, "write failed"
			}
		case <-stats.C:
			snap, err := r.sessions.Snapshot(id)
			if err != nil {
				return websocket.StatusNormalClosure, "session ended"
			}
			if err := write(snap); err != nil {
				logger.Debug("websocket write failed", log.Error(err))
				return websocket.StatusInternalError, "write failed"
			}
		case <-ping.C:
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := conn.Ping(pctx)
			cancel()
			if err != nil {
				logger.Debug("websocket ping failed", log.Error(err))
				return websocket.StatusGoingAway, "ping timeout"
			}
		}
	}
}

// readClient handles client actions until the connection fails.
func (r *Router) readClient(
	ctx context.Context,
	cancel context.CancelFunc,
	conn *websocket.Conn,
	id string,
	logger *log.Logger,
) {
	defer cancel()

	for {
		var msg clientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 {
				logger.Debug("websocket read ended", log.Error(err))
			}
			return
		}

		switch msg.Action {
		case actionDismiss:
			if err := r.sessions.DismissNotice(id); err != nil {
				return
			}
		case actionLeave:
			// the writer closes the connection once the session drops its watchers
			if err := r.sessions.Leave(context.WithoutCancel(ctx), id); err != nil {
				logger.Warn("leave from websocket failed", log.Error(err))
				return
			}
		default:
			logger.Debug("ignore client message", log.String("action", msg.Action))
		}
	}
}

package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"marketsim/internal/domain/models"
	drepo "marketsim/internal/domain/repository"
	mid "marketsim/internal/middleware"
	"marketsim/internal/service/ratelimit"
	xlogger "marketsim/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	defaultWriteTimeout = 5 * time.Second

	// token bucket guarding subscribe churn per connection
	defaultSubscribeBurst  = 10
	defaultSubscribeRefill = 1
)

// controlMessage is what the dashboard sends over the socket.
type controlMessage struct {
	Action string `json:"action"` // subscribe or unsubscribe
	Symbol string `json:"symbol"`
}

type tickEvent struct {
	Type string      `json:"type"`
	Tick models.Tick `json:"tick"`
}

type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// StreamHandler upgrades dashboard connections and bridges them to the tick
// engine: one subscription per requested symbol, ticks pushed through a
// per-connection pipeline so slow readers cannot stall the engine.
type StreamHandler struct {
	logger   *xlogger.Logger
	engine   drepo.TickStream
	metrics  drepo.Metrics
	limiter  *ratelimit.Limiter
	upgrader websocket.Upgrader

	subscribeBurst  float64
	subscribeRefill float64
	writeTimeout    time.Duration
	pipeOpts        []mid.PipelineOption
}

type StreamOption func(*StreamHandler)

// WithSubscribeLimit tunes the per-connection subscribe token bucket.
func WithSubscribeLimit(burst, refillPerSec float64) StreamOption {
	return func(h *StreamHandler) {
		if burst > 0 {
			h.subscribeBurst = burst
		}
		if refillPerSec > 0 {
			h.subscribeRefill = refillPerSec
		}
	}
}

// WithWriteTimeout bounds each websocket write.
func WithWriteTimeout(d time.Duration) StreamOption {
	return func(h *StreamHandler) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// WithPipelineOptions forwards options to each per-connection pipeline.
func WithPipelineOptions(opts ...mid.PipelineOption) StreamOption {
	return func(h *StreamHandler) { h.pipeOpts = opts }
}

func NewStreamHandler(logger *xlogger.Logger, engine drepo.TickStream, metrics drepo.Metrics, opts ...StreamOption) *StreamHandler {
	h := &StreamHandler{
		logger:  logger,
		engine:  engine,
		metrics: metrics,
		limiter: ratelimit.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// the dashboard is served from arbitrary dev origins
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subscribeBurst:  defaultSubscribeBurst,
		subscribeRefill: defaultSubscribeRefill,
		writeTimeout:    defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.Stream)
}

// Stream handles one websocket session until the client disconnects.
func (h *StreamHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.metrics.RecordError("ws_upgrade")
		return err
	}

	sess := newSession(conn, h.writeTimeout)
	pipe := mid.NewStreamPipeline(sess, h.metrics, h.pipeOpts...)
	ctx := c.Request().Context()
	pipe.Start(ctx)

	remote := conn.RemoteAddr().String()
	subs := make(map[string]func())

	defer func() {
		for _, unsub := range subs {
			unsub()
		}
		pipe.Stop()
		h.limiter.Forget(remote)
		_ = conn.Close()
		h.logger.Debug("ws session closed", xlogger.String("remote", remote))
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return nil
		}
		var msg controlMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sess.sendError("malformed message")
			continue
		}

		switch msg.Action {
		case "subscribe":
			if msg.Symbol == "" {
				sess.sendError("symbol required")
				continue
			}
			if _, ok := subs[msg.Symbol]; ok {
				continue
			}
			if !h.limiter.Allow(remote, h.subscribeBurst, h.subscribeRefill) {
				h.metrics.RecordError("ws_subscribe_throttle")
				sess.sendError("too many subscribe requests")
				continue
			}
			subs[msg.Symbol] = h.engine.Subscribe(msg.Symbol, func(t models.Tick) {
				_ = pipe.Push(t)
			})
			h.logger.Debug("ws subscribed",
				xlogger.String("remote", remote),
				xlogger.String("symbol", msg.Symbol),
			)
		case "unsubscribe":
			if unsub, ok := subs[msg.Symbol]; ok {
				unsub()
				delete(subs, msg.Symbol)
			}
		default:
			sess.sendError("unknown action")
		}
	}
}

// session serializes writes to one websocket connection.
type session struct {
	mu           sync.Mutex
	conn         *websocket.Conn
	writeTimeout time.Duration
}

func newSession(conn *websocket.Conn, writeTimeout time.Duration) *session {
	return &session{conn: conn, writeTimeout: writeTimeout}
}

// Send implements middleware.TickSink.
func (s *session) Send(t models.Tick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	return s.conn.WriteJSON(tickEvent{Type: "tick", Tick: t})
}

func (s *session) sendError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	_ = s.conn.WriteJSON(errorEvent{Type: "error", Message: msg})
}

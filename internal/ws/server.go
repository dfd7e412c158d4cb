// Package ws pushes live reports to subscribed dashboards. A client
// connects with a reporting request, gets the current aggregate right
// away, and gets a fresh one whenever its branch's orders change. The
// report engine itself knows nothing about any of this; the hub just
// feeds it snapshots.
package ws

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"adisyon-report-service/internal/auth"
	"adisyon-report-service/internal/config"
	"adisyon-report-service/internal/http/handlers"
	"adisyon-report-service/internal/report"
	"adisyon-report-service/internal/store"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Server struct {
	DB     *pgxpool.Pool
	Logger *zap.Logger
	Config config.Config

	orders *store.Orders

	mu   sync.RWMutex
	subs map[int64]map[*client]struct{}
}

func New(db *pgxpool.Pool, logger *zap.Logger, cfg config.Config) *Server {
	return &Server{
		DB:     db,
		Logger: logger,
		Config: cfg,
		orders: &store.Orders{DB: db},
		subs:   make(map[int64]map[*client]struct{}),
	}
}

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	branchID       int64
	request        report.ReportingRequest
	courierMetrics bool
}

func (c *client) writeJSON(value any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(value)
}

// ReportsWS serves GET /ws/reports. Auth rides in the token query param
// because browsers cannot set headers on websocket dials; the reporting
// request rides in the same query params the REST endpoints use, plus an
// optional couriers=true.
func (s *Server) ReportsWS(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.VerifyAccessToken(r.URL.Query().Get("token"), s.Config.JWTSecret)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	branchID, ok := s.resolveBranch(r, claims)
	if !ok {
		http.Error(w, "branch required", http.StatusBadRequest)
		return
	}

	request, err := handlers.ParseReportingRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn:           conn,
		branchID:       branchID,
		request:        request,
		courierMetrics: r.URL.Query().Get("couriers") == "true",
	}

	s.register(c)
	defer s.unregister(c)

	s.push(r.Context(), c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	heartbeat := time.NewTicker(s.Config.WSHeartbeatInterval)
	defer heartbeat.Stop()
	// Poll fallback covers order writes that never reach the event
	// exchange (direct DB edits, broker downtime).
	poll := time.NewTicker(s.Config.WSReportPollInterval)
	defer poll.Stop()

	for {
		select {
		case <-done:
			return
		case <-heartbeat.C:
			c.writeMu.Lock()
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		case <-poll.C:
			s.push(context.Background(), c)
		}
	}
}

func (s *Server) resolveBranch(r *http.Request, claims *auth.Claims) (int64, bool) {
	if claims.Role == auth.RoleAdmin {
		branchID, err := strconv.ParseInt(r.URL.Query().Get("branchId"), 10, 64)
		return branchID, err == nil
	}
	if claims.BranchID == nil {
		return 0, false
	}
	branchID, err := strconv.ParseInt(*claims.BranchID, 10, 64)
	return branchID, err == nil
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	if s.subs[c.branchID] == nil {
		s.subs[c.branchID] = make(map[*client]struct{})
	}
	s.subs[c.branchID][c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	if clients := s.subs[c.branchID]; clients != nil {
		delete(clients, c)
		if len(clients) == 0 {
			delete(s.subs, c.branchID)
		}
	}
	s.mu.Unlock()
	_ = c.conn.Close()
}

// NotifyBranch recomputes and pushes the report for every client watching
// the branch. Called by the queue consumer on each order-change event.
func (s *Server) NotifyBranch(branchID int64) {
	s.mu.RLock()
	clientsMap := s.subs[branchID]
	clients := make([]*client, 0, len(clientsMap))
	for c := range clientsMap {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, c := range clients {
		s.push(ctx, c)
	}
}

func (s *Server) push(ctx context.Context, c *client) {
	opts := handlers.EngineOptions(s.Config, c.courierMetrics)
	interval := report.BuildRange(c.request, opts.Location)

	records, err := s.orders.ListOrders(ctx, c.branchID, interval)
	if err != nil {
		s.Logger.Warn("live report query failed",
			zap.Int64("branchId", c.branchID),
			zap.Error(err),
		)
		return
	}

	summary := report.ClassifyAndAggregate(records, c.request, opts)
	if err := c.writeJSON(map[string]any{
		"type":       "report",
		"data":       summary,
		"computedAt": time.Now().Format(time.RFC3339),
	}); err != nil {
		_ = c.conn.Close()
	}
}

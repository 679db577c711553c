// Package server exposes the dashboard over HTTP: public read endpoints, the
// projection endpoint, token-gated admin mutations, a websocket for live
// prediction pushes and the Prometheus scrape path.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pool-portal/internal/config"
	"github.com/yourusername/pool-portal/internal/metrics"
	"github.com/yourusername/pool-portal/internal/service"
)

// Server is the dashboard HTTP server.
type Server struct {
	config     *config.Config
	portal     *service.PortalService
	admin      *service.AdminService
	importer   *service.ImportService
	hub        *Hub
	logger     *logrus.Logger
	httpServer *http.Server
	upgrader   websocket.Upgrader
}

// NewServer creates the dashboard server. The hub may be nil when live push
// is disabled.
func NewServer(cfg *config.Config, portal *service.PortalService, admin *service.AdminService, hub *Hub, logger *logrus.Logger) *Server {
	allowed := cfg.Server.AllowedOrigins
	return &Server{
		config: cfg,
		portal: portal,
		admin:  admin,
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, o := range allowed {
					if o == "*" || o == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// SetImporter enables the manual feed import endpoint. Called at startup
// when a results feed is configured.
func (s *Server) SetImporter(importer *service.ImportService) {
	s.importer = importer
}

// Router builds the route table. Split out from Start so tests can drive the
// handler directly.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/summary", s.instrument("summary", s.handleSummary)).Methods("GET")
	api.HandleFunc("/prediction", s.instrument("prediction", s.handlePrediction)).Methods("GET")
	api.HandleFunc("/projection", s.instrument("projection", s.handleProjection)).Methods("POST")
	api.HandleFunc("/history", s.instrument("history", s.handleHistory)).Methods("GET")
	api.HandleFunc("/trends", s.instrument("trends", s.handleTrends)).Methods("GET")
	api.HandleFunc("/updates", s.instrument("updates", s.handleUpdates)).Methods("GET")
	api.HandleFunc("/comment", s.instrument("comment", s.handleComment)).Methods("GET")

	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(s.adminAuth)
	adminRouter.HandleFunc("/outcomes", s.handleAppendOutcome).Methods("POST")
	adminRouter.HandleFunc("/outcomes", s.handleReplaceOutcomes).Methods("PUT")
	adminRouter.HandleFunc("/updates", s.handleAppendUpdate).Methods("POST")
	adminRouter.HandleFunc("/updates", s.handleReplaceUpdates).Methods("PUT")
	adminRouter.HandleFunc("/comment", s.handleSaveComment).Methods("PUT")
	if s.importer != nil {
		adminRouter.HandleFunc("/import", s.handleImport).Methods("POST")
	}

	if s.hub != nil {
		router.HandleFunc("/ws", s.handleWebSocket)
	}

	if s.config.Metrics.Enabled {
		router.Handle(s.config.Metrics.Path, metrics.Handler()).Methods("GET")
	}

	allowedOrigins := s.config.Server.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(router)
}

// Start runs the server until it fails or Stop is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + strconv.Itoa(s.config.Server.Port),
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.WithField("port", s.config.Server.Port).Info("Dashboard server starting")
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	if s.httpServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.WithError(err).Error("Dashboard server shutdown error")
	}
}

// instrument wraps a handler with the per-endpoint request duration
// histogram.
func (s *Server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

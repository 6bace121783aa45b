package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"bookstore-storefront/internal/kvstore"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Server owns the storefront HTTP listener.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server serving the catalogue, cart and wishlist routes.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, deps Deps) (*Server, error) {
	router, err := buildRouter(logger, db, deps)
	if err != nil {
		return nil, err
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
			ErrorLog:          logger,
		},
		logger: logger,
	}, nil
}

func (s *Server) ListenAndServe() error {
	s.logger.Printf("http: listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Printf("http: draining connections")
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyHandler reports 200 only when the catalogue database and the shopper
// state store both answer.
func readyHandler(db *pgxpool.Pool, kv kvstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		checks := gin.H{}
		ready := true

		switch {
		case db == nil:
			checks["catalog"] = "db not configured"
			ready = false
		case db.Ping(ctx) != nil:
			checks["catalog"] = "db not reachable"
			ready = false
		default:
			checks["catalog"] = "ok"
		}

		switch {
		case kv == nil:
			checks["shopperState"] = "kv store not configured"
			ready = false
		case kvstore.Ping(ctx, kv) != nil:
			checks["shopperState"] = "kv store not reachable"
			ready = false
		default:
			checks["shopperState"] = "ok"
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
	}
}

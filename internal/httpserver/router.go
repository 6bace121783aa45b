package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"bookstore-storefront/internal/domain"
	"bookstore-storefront/internal/kvstore"
	bookrepo "bookstore-storefront/internal/repository/book"
	cartsvc "bookstore-storefront/internal/service/cart"
	sessionsvc "bookstore-storefront/internal/service/session"
	wishlistsvc "bookstore-storefront/internal/service/wishlist"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogService interface {
	List(ctx context.Context, q bookrepo.Query) []domain.Book
	Get(ctx context.Context, id string) (*domain.Book, error)
	Related(ctx context.Context, id string, limit int) []domain.Book
	Genres(ctx context.Context) []domain.GenreCount
	Moods() []domain.Mood
	BooksByMood(ctx context.Context, slug string, q bookrepo.Query) (domain.Mood, []domain.Book, error)
	Settings(ctx context.Context) domain.SiteSettings
	Profile(ctx context.Context, id string) domain.Profile
}

type cartService interface {
	Get(ctx context.Context, shopperID string) (cartsvc.View, error)
	Add(ctx context.Context, shopperID, bookID string, format domain.Format, quantity int) (cartsvc.View, error)
	Update(ctx context.Context, shopperID, bookID string, format domain.Format, quantity int) (cartsvc.View, error)
	Remove(ctx context.Context, shopperID, bookID string, format domain.Format) (cartsvc.View, error)
	Clear(ctx context.Context, shopperID string) (cartsvc.View, error)
}

type wishlistService interface {
	List(ctx context.Context, shopperID string) (wishlistsvc.View, error)
	Contains(ctx context.Context, shopperID, bookID string) (bool, error)
	Add(ctx context.Context, shopperID, bookID string) error
	Remove(ctx context.Context, shopperID, bookID string) error
	Toggle(ctx context.Context, shopperID, bookID string) (bool, error)
}

type sessionService interface {
	Issue(ctx context.Context) (sessionsvc.Session, error)
	LookupByToken(ctx context.Context, token string) (string, error)
}

// Deps groups the services the router dispatches to.
type Deps struct {
	CatalogSvc  catalogService
	CartSvc     cartService
	WishlistSvc wishlistService
	SessionSvc  sessionService
	// KV is checked by /readyz.
	KV          kvstore.Store
	FileURLHost string
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.CatalogSvc == nil || deps.CartSvc == nil || deps.WishlistSvc == nil || deps.SessionSvc == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}
	if err := registerValidators(); err != nil {
		return nil, err
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), cors.New(corsConfig(deps.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, deps.KV))

	h := &handlers{deps: deps, logger: logger}

	router.GET("/settings", h.settings)
	router.GET("/profiles/:id", h.profile)
	router.GET("/books", h.listBooks)
	router.GET("/books/:id", h.getBook)
	router.GET("/books/:id/related", h.relatedBooks)
	router.GET("/genres", h.genres)
	router.GET("/moods", h.moods)
	router.GET("/moods/:mood/books", h.moodBooks)

	router.POST("/sessions", h.createSession)

	me := router.Group("/me", authMiddleware(deps.SessionSvc, logger))
	me.GET("/cart", h.getCart)
	me.POST("/cart/items", h.addCartItem)
	me.PATCH("/cart/items/:bookId/:format", h.updateCartItem)
	me.DELETE("/cart/items/:bookId/:format", h.removeCartItem)
	me.DELETE("/cart", h.clearCart)

	me.GET("/wishlist", h.listWishlist)
	me.GET("/wishlist/:bookId", h.wishlistContains)
	me.PUT("/wishlist/:bookId", h.addWishlist)
	me.DELETE("/wishlist/:bookId", h.removeWishlist)
	me.POST("/wishlist/:bookId/toggle", h.toggleWishlist)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}

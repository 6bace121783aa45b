package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"bookstore-storefront/internal/domain"
	sessionsvc "bookstore-storefront/internal/service/session"
	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnknownFormat),
		errors.Is(err, domain.ErrFormatUnavailable),
		errors.Is(err, domain.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, sessionsvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.Printf("http: %s %s error=%v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// coverURL prefixes locally served covers with the file host.
func coverURL(host, cover string) string {
	if host == "" || !strings.HasPrefix(cover, "/") {
		return cover
	}
	return strings.TrimRight(host, "/") + cover
}

func presentBook(host string, b domain.Book) domain.Book {
	b.CoverURL = coverURL(host, b.CoverURL)
	return b
}

func presentBooks(host string, books []domain.Book) []domain.Book {
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		out = append(out, presentBook(host, b))
	}
	return out
}

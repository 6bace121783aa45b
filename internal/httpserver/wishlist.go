package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listWishlist(c *gin.Context) {
	v, err := h.deps.WishlistSvc.List(c.Request.Context(), shopperFrom(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	v.Books = presentBooks(h.deps.FileURLHost, v.Books)
	c.JSON(http.StatusOK, v)
}

func (h *handlers) wishlistContains(c *gin.Context) {
	in, err := h.deps.WishlistSvc.Contains(c.Request.Context(), shopperFrom(c), c.Param("bookId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inWishlist": in})
}

func (h *handlers) addWishlist(c *gin.Context) {
	if err := h.deps.WishlistSvc.Add(c.Request.Context(), shopperFrom(c), c.Param("bookId")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inWishlist": true})
}

func (h *handlers) removeWishlist(c *gin.Context) {
	if err := h.deps.WishlistSvc.Remove(c.Request.Context(), shopperFrom(c), c.Param("bookId")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inWishlist": false})
}

func (h *handlers) toggleWishlist(c *gin.Context) {
	in, err := h.deps.WishlistSvc.Toggle(c.Request.Context(), shopperFrom(c), c.Param("bookId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inWishlist": in})
}

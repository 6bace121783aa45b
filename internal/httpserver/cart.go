package httpserver

import (
	"net/http"

	"bookstore-storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	BookID   string `json:"bookId" binding:"required"`
	Format   string `json:"format" binding:"required,bookformat"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (h *handlers) getCart(c *gin.Context) {
	v, err := h.deps.CartSvc.Get(c.Request.Context(), shopperFrom(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, validationMessage(err))
		return
	}
	f, _ := domain.ParseFormat(req.Format)
	v, err := h.deps.CartSvc.Add(c.Request.Context(), shopperFrom(c), req.BookID, f, req.Quantity)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *handlers) updateCartItem(c *gin.Context) {
	f, ok := domain.ParseFormat(c.Param("format"))
	if !ok {
		badRequest(c, "format must be one of: hardcover, paperback, ebook, audiobook")
		return
	}
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, validationMessage(err))
		return
	}
	v, err := h.deps.CartSvc.Update(c.Request.Context(), shopperFrom(c), c.Param("bookId"), f, req.Quantity)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	f, ok := domain.ParseFormat(c.Param("format"))
	if !ok {
		badRequest(c, "format must be one of: hardcover, paperback, ebook, audiobook")
		return
	}
	v, err := h.deps.CartSvc.Remove(c.Request.Context(), shopperFrom(c), c.Param("bookId"), f)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *handlers) clearCart(c *gin.Context) {
	v, err := h.deps.CartSvc.Clear(c.Request.Context(), shopperFrom(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

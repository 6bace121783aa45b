package httpserver

import (
	"net/http"
	"strconv"

	"bookstore-storefront/internal/domain"
	bookrepo "bookstore-storefront/internal/repository/book"
	"github.com/gin-gonic/gin"
)

type listBooksQuery struct {
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset     int    `form:"offset" binding:"omitempty,min=0"`
	Order      string `form:"order" binding:"omitempty,oneof=title rating publish_date review_count created_at"`
	Desc       bool   `form:"desc"`
	Genre      string `form:"genre"`
	Mood       string `form:"mood"`
	Format     string `form:"format" binding:"omitempty,bookformat"`
	Bestseller *bool  `form:"bestseller"`
	New        *bool  `form:"new"`
	Q          string `form:"q" binding:"max=200"`
}

func (q listBooksQuery) toQuery() bookrepo.Query {
	f, _ := domain.ParseFormat(q.Format)
	return bookrepo.Query{
		Limit:      q.Limit,
		Offset:     q.Offset,
		OrderBy:    q.Order,
		Desc:       q.Desc,
		Genre:      q.Genre,
		Mood:       q.Mood,
		Format:     f,
		Bestseller: q.Bestseller,
		New:        q.New,
		Search:     q.Q,
	}
}

func (h *handlers) settings(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.CatalogSvc.Settings(c.Request.Context()))
}

func (h *handlers) profile(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.CatalogSvc.Profile(c.Request.Context(), c.Param("id")))
}

func (h *handlers) listBooks(c *gin.Context) {
	var q listBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, validationMessage(err))
		return
	}
	books := h.deps.CatalogSvc.List(c.Request.Context(), q.toQuery())
	c.JSON(http.StatusOK, gin.H{"results": presentBooks(h.deps.FileURLHost, books), "count": len(books)})
}

func (h *handlers) getBook(c *gin.Context) {
	b, err := h.deps.CatalogSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, presentBook(h.deps.FileURLHost, *b))
}

func (h *handlers) relatedBooks(c *gin.Context) {
	limit := 4
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > bookrepo.MaxLimit {
			badRequest(c, "limit must be between 1 and 100")
			return
		}
		limit = n
	}
	books := h.deps.CatalogSvc.Related(c.Request.Context(), c.Param("id"), limit)
	c.JSON(http.StatusOK, gin.H{"results": presentBooks(h.deps.FileURLHost, books)})
}

func (h *handlers) genres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": h.deps.CatalogSvc.Genres(c.Request.Context())})
}

func (h *handlers) moods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": h.deps.CatalogSvc.Moods()})
}

func (h *handlers) moodBooks(c *gin.Context) {
	var q listBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, validationMessage(err))
		return
	}
	mood, books, err := h.deps.CatalogSvc.BooksByMood(c.Request.Context(), c.Param("mood"), q.toQuery())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mood": mood, "results": presentBooks(h.deps.FileURLHost, books)})
}

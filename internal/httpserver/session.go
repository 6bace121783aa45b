package httpserver

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type ctxKey string

const shopperCtxKey ctxKey = "shopper"

func (h *handlers) createSession(c *gin.Context) {
	sess, err := h.deps.SessionSvc.Issue(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// authMiddleware resolves the bearer token to a shopper id.
func authMiddleware(sessions sessionService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		shopperID, err := sessions.LookupByToken(c.Request.Context(), token)
		if err != nil {
			writeError(c, logger, err)
			c.Abort()
			return
		}
		ctx := context.WithValue(c.Request.Context(), shopperCtxKey, shopperID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func shopperFrom(c *gin.Context) string {
	id, _ := c.Request.Context().Value(shopperCtxKey).(string)
	return id
}

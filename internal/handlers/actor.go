package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/middleware"
)

// actorFromRequest extracts the authenticated actor from the request context.
// It writes the 401 response itself when no actor is present.
func actorFromRequest(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return actor, ok
}

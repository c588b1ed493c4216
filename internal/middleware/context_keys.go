package middleware

import (
	"context"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const actorCtxKey = contextKey("actor")

// GetActorFromContext retrieves the authenticated actor from a standard context.
// It returns the actor and a boolean indicating if one was found.
func GetActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey).(domain.Actor)
	return actor, ok
}

// MustGetActor retrieves the authenticated actor from the Gin request context.
// Handlers behind AuthMiddleware can rely on it being present; a zero Actor
// is returned otherwise.
func MustGetActor(c *gin.Context) domain.Actor {
	actor, _ := GetActorFromContext(c.Request.Context())
	return actor
}

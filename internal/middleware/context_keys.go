package middleware

import (
	"context"

	"github.com/bankops/backoffice/internal/core/domain"
)

// actorKey is the key used to store the authenticated actor in the request context.
const actorKey = contextKey("actor")

// GetActorFromCtx retrieves the authenticated actor from the context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

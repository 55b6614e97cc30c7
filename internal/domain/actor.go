package domain

import "context"

type actorKey struct{}

// WithActor adjunta al contexto el id del usuario que ejecuta la operación (auditoría).
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom devuelve el id del usuario del contexto, o "" si no hay.
func ActorFrom(ctx context.Context) string {
	s, _ := ctx.Value(actorKey{}).(string)
	return s
}

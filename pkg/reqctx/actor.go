package reqctx

import "context"

// Actor is the caller identified by the session headers.
type Actor struct {
	Role string // "doctor" or "patient"
	ID   string
}

func (a Actor) IsDoctor() bool  { return a.Role == "doctor" }
func (a Actor) IsPatient() bool { return a.Role == "patient" }

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, keyActor, a)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(keyActor).(Actor)
	return a, ok
}

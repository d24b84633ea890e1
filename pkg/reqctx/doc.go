// Package reqctx carries request-scoped data through context.Context.
//
// Keys are unexported so only this package can set or read them. HTTP
// middleware stores RequestMeta on every request and an Actor once the
// session headers have been validated:
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{RequestID: id})
//	ctx = reqctx.WithActor(ctx, reqctx.Actor{Role: "doctor", ID: "d-1"})
//
// Services read them back with RequestIDFromContext and ActorFromContext.
package reqctx

package reqctx

import (
	"context"
	"testing"
)

func TestRequestMeta(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("empty context: RequestID = %q", got)
	}

	ctx = WithRequestMeta(ctx, &RequestMeta{RequestID: "req-1"})
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestID = %q, want req-1", got)
	}

	if _, ok := RequestMetaFromContext(WithRequestMeta(context.Background(), nil)); ok {
		t.Error("nil meta reported as present")
	}
}

func TestActor(t *testing.T) {
	if _, ok := ActorFromContext(context.Background()); ok {
		t.Fatal("actor present in empty context")
	}

	ctx := WithActor(context.Background(), Actor{Role: "patient", ID: "p-1"})
	a, ok := ActorFromContext(ctx)
	if !ok || a.ID != "p-1" || !a.IsPatient() || a.IsDoctor() {
		t.Errorf("ActorFromContext() = %+v, %v", a, ok)
	}
}

package httpapi

import (
	"context"
)

// serverBaseCtx is canceled on process shutdown so long-running handler work
// (catalog refreshes) stops even when the client is still connected.
var serverBaseCtx = context.Background()

// SetBaseContext installs the process-level base context. A nil ctx restores
// the Background default.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts derives a context from b that is additionally canceled when a
// is done, so request-scoped values survive while either side can abort. The
// returned cancel must always be called.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(b)
	stop := context.AfterFunc(a, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

package requestid

import (
	"context"
	"crypto/rand"
	"math/big"
)

type ctxKey struct{}

// Mint returns a random six-digit request identifier. The id is a short
// correlation handle echoed in logs and response envelopes; it is not
// globally unique and is never persisted.
func Mint() int {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing is a process-level problem; fall back to a
		// fixed marker rather than aborting the request.
		return 100000
	}
	return int(n.Int64()) + 100000
}

// With binds the request id to the context for downstream handlers.
func With(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From returns the request id bound to the context, or zero when absent.
func From(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	if id, ok := ctx.Value(ctxKey{}).(int); ok {
		return id
	}
	return 0
}

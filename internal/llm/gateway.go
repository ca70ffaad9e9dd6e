package llm

import (
	"context"
	"errors"
)

// ErrTimeout reports that a completion call ran past its deadline. The
// underlying provider connection is closed before this is returned.
var ErrTimeout = errors.New("completion deadline exceeded")

// Request holds the parameters for a single completion call.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int64
	Temperature float64
}

// Gateway is the engine's only outbound capability: text completion against
// an LLM provider, streamed or whole. Implementations must be safe for
// concurrent use (the technical phase issues several calls at once) and
// must respect ctx deadlines by closing any in-flight connection. The
// gateway performs no retries; retry policy belongs to callers.
type Gateway interface {
	// Complete returns the full completion text.
	Complete(ctx context.Context, req Request) (string, error)

	// StreamComplete invokes onDelta for each text delta as it arrives and
	// returns the accumulated full text. onDelta is called from the calling
	// goroutine, in arrival order.
	StreamComplete(ctx context.Context, req Request, onDelta func(text string)) (string, error)
}

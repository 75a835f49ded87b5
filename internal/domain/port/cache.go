package port

import (
	"context"
	"time"
)

// QuoteCache memoizes computed quotes by content hash of the request for a
// bounded time window. Get returns nil on a miss; cache failures are
// non-fatal and the caller computes the quote anyway.
type QuoteCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

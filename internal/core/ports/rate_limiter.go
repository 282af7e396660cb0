package ports

import "context"

// RateLimiter gates repeated attempts at sensitive operations.
type RateLimiter interface {
	// Allow reports whether one more attempt for action/key is permitted
	// inside the current window. Errors mean the limiter itself failed;
	// callers decide whether to fail open.
	Allow(ctx context.Context, action, key string) (bool, error)
}

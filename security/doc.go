// Package security provides security-related functionality for the
// compliance dashboard, including rate limiting, client IP extraction,
// request IDs, access-token verification, and audit logging.
//
// # Rate Limiting
//
// The RateLimiter provides per-identifier rate limiting using a token bucket
// algorithm with automatic memory management through LRU (Least Recently
// Used) eviction. To prevent unbounded memory growth under distributed
// abuse, the limiter enforces a configurable maximum entries limit; when the
// limit is reached, the least recently used entries are evicted.
//
// Default configuration:
//   - MaxEntries: 10,000 unique identifiers
//   - CleanupInterval: 5 minutes
//   - IdleTimeout: 30 minutes
//
// Example:
//
//	limiter := security.NewRateLimiter(10, 20, logger)
//	defer limiter.Stop()
//
//	if !limiter.Allow(clientIP) {
//		// Rate limit exceeded
//		return http.StatusTooManyRequests
//	}
//
// # Access Tokens
//
// The dashboard can be guarded with a bearer token. Only a bcrypt hash of the
// token is held in memory; see NewAccessTokenGuard.
//
// # Audit Logging
//
// The Auditor logs dashboard access and evaluation outcomes with hashed
// client identifiers, suitable for security review without exposing PII.
package security

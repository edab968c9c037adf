// Package api provides HTTP client functionality for communicating with the
// SendPost API. It handles credential-scoped authentication, request/response
// serialization, and automatic retry logic with exponential backoff for
// transient failures.
//
// # Client Creation
//
// The package provides two ways to create a client:
//
//   - [NewClient]: Struct-based configuration for explicit, type-safe setup.
//   - [New]: Functional options pattern for flexible configuration.
//
// Both methods require an account API key and a base URL.
//
// # Credential Scopes
//
// SendPost authenticates requests with one of two keys. The scope of every
// request is an explicit [KeyScope] value:
//
//   - [ScopeAccount]: the account key, sent via the X-Account-ApiKey header.
//     Covers sub-accounts, webhooks, message lookup, account statistics, IPs,
//     and IP pools.
//   - [ScopeSubAccount]: a sub-account key, sent via the X-SubAccount-ApiKey
//     header. Covers sending domains, email submission, and sub-account
//     statistics.
//
// Account-scoped requests go through [Client.Do]; sub-account-scoped requests
// go through [Client.DoSubAccount] with the key of the sub-account being
// addressed.
//
// # Retry Behavior
//
// The client automatically retries failed requests with exponential backoff.
// By default, requests are retried up to 3 times for these HTTP status codes:
//
//   - 408 Request Timeout
//   - 429 Too Many Requests
//   - 500 Internal Server Error
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//
// The retry delay doubles with each attempt (1s, 2s, 4s, ...). Configure retry
// behavior using [Config.MaxRetries], [Config.RetryDelay], and [Config.RetryOn].
//
// # Error Handling
//
// The package defines sentinel errors for common API error conditions:
//
//   - [ErrUnauthorized]: Invalid or expired API key (401).
//   - [ErrSubAccountNotFound]: Sub-account does not exist (404).
//   - [ErrDomainNotFound]: Sending domain does not exist (404).
//   - [ErrMessageNotFound]: Message does not exist (404).
//   - [ErrRateLimited]: Rate limit exceeded (429).
//
// Use errors.Is to check for specific error types:
//
//	if errors.Is(err, api.ErrMessageNotFound) {
//	    // Handle missing message
//	}
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api

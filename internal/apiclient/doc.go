// Package apiclient is the REST client for the log server.
//
// Every request carries basic auth, an X-Requested-By header and a fresh
// X-Request-Id so server logs can be correlated with the console's debug
// log. Retryable failures (network errors, 5xx, 429) are retried with
// exponential backoff; 401/403/404 fail immediately.
//
// Errors are *APIError values classified by ErrorType. Use IsNotFound,
// IsAuthError, IsNetworkError and IsRetryable rather than comparing
// status codes.
//
// Search results and field type listings are decoded with fastjson; other
// resources are small and use encoding/json.
package apiclient

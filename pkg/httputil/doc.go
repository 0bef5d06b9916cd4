// Package httputil provides HTTP utilities for outbound service clients.
//
// # Retry
//
// [Retry] wraps a request function with automatic retry for transient
// failures. Only errors wrapped in [RetryableError] are retried, so callers
// decide what counts as transient:
//
//   - Network errors
//   - 5xx server errors
//
// Delays double after every failed attempt:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// The analysis client retries 3 times starting at 1 second; see
// analysis.WithRetry.
//
// Response caching lives in package cache, keyed by request.
package httputil

// Package httputil provides HTTP helpers for the spreadsheet client.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff when it fails
// with a [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Any other error is returned immediately:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    return httputil.CheckStatus(resp)
//	})
//
// # Status classification
//
// [CheckStatus] maps HTTP responses onto the structured errors of
// pkg/errors, marking the transient ones as retryable.
//
// Default settings:
//
//   - Max attempts: 3
//   - Base backoff: 1 second, doubling
package httputil

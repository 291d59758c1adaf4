package httputil

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/sheetprint/pkg/errors"
)

// maxErrorBody bounds how much of an error response is quoted.
const maxErrorBody = 512

// CheckStatus returns nil for 2xx responses and a coded error otherwise.
// 429 and 5xx responses are wrapped in [RetryableError].
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	detail := errorBody(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s not found", resp.Request.URL.Path)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "access denied (%d): %s", resp.StatusCode, detail)
	case resp.StatusCode == http.StatusBadRequest:
		return errors.New(errors.ErrCodeInvalidRange, "bad request: %s", detail)
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &RetryableError{Err: &errors.RateLimitedError{RetryAfter: retryAfter, Message: detail}}
	case resp.StatusCode >= 500:
		return &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "server error %d: %s", resp.StatusCode, detail)}
	default:
		return errors.New(errors.ErrCodeNetwork, "unexpected status %d: %s", resp.StatusCode, detail)
	}
}

func errorBody(resp *http.Response) string {
	if resp.Body == nil {
		return http.StatusText(resp.StatusCode)
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if s := strings.TrimSpace(string(b)); s != "" {
		return s
	}
	return fmt.Sprint(http.StatusText(resp.StatusCode))
}

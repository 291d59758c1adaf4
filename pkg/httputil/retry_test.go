package httputil

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/sheetprint/pkg/errors"
)

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return &RetryableError{Err: stderrors.New("boom")}
	})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryExhausted(t *testing.T) {
	calls := 0
	last := &RetryableError{Err: stderrors.New("still failing")}
	err := Retry(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return last
	})
	if err != last || calls != 2 {
		t.Errorf("err = %v calls = %d", err, calls)
	}
}

func response(t *testing.T, code int, body string, header http.Header) *http.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	for k, v := range header {
		rec.Header()[k] = v
	}
	rec.WriteHeader(code)
	_, _ = io.WriteString(rec, body)
	resp := rec.Result()
	resp.Request = httptest.NewRequest(http.MethodGet, "/v4/spreadsheets/abc", nil)
	return resp
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		body      string
		header    http.Header
		wantCode  errors.Code
		retryable bool
	}{
		{name: "ok", code: 200},
		{name: "not found", code: 404, wantCode: errors.ErrCodeNotFound},
		{name: "forbidden", code: 403, body: "no access", wantCode: errors.ErrCodeUnauthorized},
		{name: "bad range", code: 400, body: "Unable to parse range", wantCode: errors.ErrCodeInvalidRange},
		{name: "server error", code: 503, wantCode: errors.ErrCodeNetwork, retryable: true},
		{name: "teapot", code: 418, wantCode: errors.ErrCodeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckStatus(response(t, tt.code, tt.body, tt.header))
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("CheckStatus() = %v", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err=%v)", got, tt.wantCode, err)
			}
			if got := isRetryable(err); got != tt.retryable {
				t.Errorf("retryable = %v, want %v", got, tt.retryable)
			}
			if tt.body != "" && !strings.Contains(err.Error(), tt.body) {
				t.Errorf("error %q should quote body %q", err, tt.body)
			}
		})
	}
}

func TestCheckStatusRateLimited(t *testing.T) {
	err := CheckStatus(response(t, 429, "", http.Header{"Retry-After": {"30"}}))
	if !isRetryable(err) {
		t.Fatal("429 should be retryable")
	}
	var rl *errors.RateLimitedError
	if !stderrors.As(err, &rl) || rl.RetryAfter != 30 {
		t.Errorf("err = %v, want RateLimitedError{RetryAfter: 30}", err)
	}
}

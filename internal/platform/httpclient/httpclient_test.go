package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"webenum/internal/platform/errors"
	"webenum/internal/platform/logx"
	"webenum/internal/testutil"
)

func fastConfig(retries int) Config {
	return Config{
		Timeout:         5 * time.Second,
		MaxRetries:      retries,
		RetryBackoff:    time.Millisecond,
		MaxRetryBackoff: 5 * time.Millisecond,
	}
}

func TestNew(t *testing.T) {
	t.Run("applies defaults for zero values", func(t *testing.T) {
		client := New(Config{}, nil)

		testutil.AssertEqual(t, client.config.Timeout, 60*time.Second, "should use default timeout")
		testutil.AssertEqual(t, client.config.RetryBackoff, 1*time.Second, "should use default backoff")
		testutil.AssertEqual(t, client.config.UserAgent, "webenum/1.0", "should use default user agent")
		testutil.AssertEqual(t, client.config.MaxRetries, 0, "no retries by default")
	})

	t.Run("negative retries clamp to zero", func(t *testing.T) {
		client := New(Config{MaxRetries: -3}, logx.NewSilent())
		testutil.AssertEqual(t, client.config.MaxRetries, 0, "clamped")
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	testutil.AssertEqual(t, config.Timeout, 60*time.Second, "timeout")
	testutil.AssertEqual(t, config.MaxRetries, 2, "max retries")
	testutil.AssertEqual(t, config.UserAgent, "webenum/1.0", "user agent")
}

func TestClient_PostJSON(t *testing.T) {
	var gotBody, gotAuth, gotType, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := New(fastConfig(0), nil)
	resp, err := client.PostJSON(context.Background(), server.URL, []byte(`{"a":1}`), map[string]string{"Authorization": "Bearer k"})
	testutil.AssertNoError(t, err, "post")
	testutil.AssertNoError(t, CheckStatus(resp), "status")

	body, err := ReadBody(resp)
	testutil.AssertNoError(t, err, "read body")
	testutil.AssertEqual(t, string(body), `{"ok":true}`, "body")
	testutil.AssertEqual(t, gotBody, `{"a":1}`, "request body")
	testutil.AssertEqual(t, gotAuth, "Bearer k", "extra header")
	testutil.AssertEqual(t, gotType, "application/json", "content type")
	testutil.AssertEqual(t, gotUA, "webenum/1.0", "user agent")
}

func TestClient_Retry(t *testing.T) {
	t.Run("retries retryable status and resends body", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			if string(b) != "payload" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := New(fastConfig(3), nil)
		resp, err := client.Request(context.Background(), http.MethodPost, server.URL, []byte("payload"), nil)
		testutil.AssertNoError(t, err, "eventually succeeds")
		defer resp.Body.Close()

		testutil.AssertEqual(t, resp.StatusCode, http.StatusOK, "final status")
		testutil.AssertEqual(t, atomic.LoadInt32(&calls), int32(3), "attempts")
	})

	t.Run("returns last response when retries are exhausted", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := New(fastConfig(1), nil)
		resp, err := client.Request(context.Background(), http.MethodGet, server.URL, nil, nil)
		testutil.AssertNoError(t, err, "response returned")
		defer resp.Body.Close()

		testutil.AssertTrue(t, errors.Is(CheckStatus(resp), errors.ErrRateLimit), "rate limit sentinel")
		testutil.AssertEqual(t, atomic.LoadInt32(&calls), int32(2), "one retry")
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := New(fastConfig(3), nil)
		resp, err := client.Request(context.Background(), http.MethodGet, server.URL, nil, nil)
		testutil.AssertNoError(t, err, "response returned")
		resp.Body.Close()

		testutil.AssertEqual(t, atomic.LoadInt32(&calls), int32(1), "single attempt")
	})

	t.Run("network error after retries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client := New(fastConfig(1), nil)
		_, err := client.Request(context.Background(), http.MethodGet, url, nil, nil)
		testutil.AssertError(t, err, "connection refused")
	})
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := New(fastConfig(5), nil)
	start := time.Now()
	_, err := client.Request(ctx, http.MethodGet, server.URL, nil, nil)

	testutil.AssertError(t, err, "cancelled")
	testutil.AssertTrue(t, errors.Is(err, context.DeadlineExceeded), "deadline exceeded")
	testutil.AssertTrue(t, time.Since(start) < 2*time.Second, "no retries after cancellation")
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, errors.ErrRateLimit},
		{http.StatusNotFound, errors.ErrNotFound},
		{http.StatusUnauthorized, errors.ErrUnauthorized},
		{http.StatusForbidden, errors.ErrUnauthorized},
		{http.StatusBadGateway, errors.ErrServiceUnavailable},
		{http.StatusServiceUnavailable, errors.ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := CheckStatus(&http.Response{StatusCode: tt.status})
			testutil.AssertTrue(t, errors.Is(err, tt.want), "sentinel")
		})
	}

	testutil.AssertNoError(t, CheckStatus(&http.Response{StatusCode: http.StatusCreated}), "2xx")
	testutil.AssertError(t, CheckStatus(&http.Response{StatusCode: http.StatusTeapot, Status: "418 I'm a teapot"}), "other status")
	testutil.AssertError(t, CheckStatus(nil), "nil response")
}

func TestReadBody(t *testing.T) {
	_, err := ReadBody(nil)
	testutil.AssertError(t, err, "nil response")
}

func TestClient_String(t *testing.T) {
	client := New(fastConfig(2), nil)
	testutil.AssertEqual(t, client.String(), "HTTPClient{timeout=5s, max_retries=2}", "string form")
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
		{http.StatusRequestTimeout, true},
		{http.StatusOK, false},
		{http.StatusUnauthorized, false},
		{http.StatusNotFound, false},
		{http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			got := isRetryableStatus(&http.Response{StatusCode: tt.status})
			testutil.AssertEqual(t, got, tt.want, "retry decision")
		})
	}

	testutil.AssertFalse(t, isRetryableStatus(nil), "nil response")
}

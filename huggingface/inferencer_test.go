package huggingface_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/skim"
	"github.com/fwojciec/skim/huggingface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestInferencer_Infer(t *testing.T) {
	t.Parallel()

	t.Run("posts inputs with bearer token", func(t *testing.T) {
		t.Parallel()

		var (
			auth, contentType string
			payload           map[string]string
		)
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			contentType = r.Header.Get("Content-Type")
			_ = json.NewDecoder(r.Body).Decode(&payload)
			_, _ = w.Write([]byte(`[{"summary_text":"A short summary."}]`))
		})

		inf := huggingface.NewInferencer("hf_secret", huggingface.WithModelURL(server.URL))
		results, err := inf.Infer(context.Background(), "Some long article text.")

		require.NoError(t, err)
		assert.Equal(t, []skim.Inference{{SummaryText: "A short summary."}}, results)
		assert.Equal(t, "Bearer hf_secret", auth)
		assert.Equal(t, "application/json", contentType)
		assert.Equal(t, map[string]string{"inputs": "Some long article text."}, payload)
	})

	t.Run("classifies non-2xx responses", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("upstream overloaded"))
		})

		inf := huggingface.NewInferencer("key", huggingface.WithModelURL(server.URL))
		_, err := inf.Infer(context.Background(), "text")

		require.Error(t, err)
		assert.Equal(t, skim.EINFERENCEFAILED, skim.ErrorCode(err))
		assert.Equal(t, http.StatusServiceUnavailable, skim.ErrorStatus(err))
		assert.Contains(t, err.Error(), "upstream overloaded")
	})

	t.Run("classifies structured error payloads", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"Model is currently loading","estimated_time":20}`))
		})

		inf := huggingface.NewInferencer("key", huggingface.WithModelURL(server.URL))
		_, err := inf.Infer(context.Background(), "text")

		require.Error(t, err)
		assert.Equal(t, skim.EINFERENCEREJECTED, skim.ErrorCode(err))
		assert.Equal(t, "Summarization service error: Model is currently loading", skim.ErrorMessage(err))
	})

	t.Run("classifies non-string error payloads", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":["bad input"]}`))
		})

		inf := huggingface.NewInferencer("key", huggingface.WithModelURL(server.URL))
		_, err := inf.Infer(context.Background(), "text")

		assert.Equal(t, skim.EINFERENCEREJECTED, skim.ErrorCode(err))
		assert.Contains(t, skim.ErrorMessage(err), "bad input")
	})

	t.Run("returns empty results for empty list", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})

		inf := huggingface.NewInferencer("key", huggingface.WithModelURL(server.URL))
		results, err := inf.Infer(context.Background(), "text")

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("leaves transport failures unclassified", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		inf := huggingface.NewInferencer("key", huggingface.WithModelURL(url))
		_, err := inf.Infer(context.Background(), "text")

		require.Error(t, err)
		var e *skim.Error
		assert.NotErrorAs(t, err, &e)
	})

	t.Run("leaves timeouts unclassified", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		inf := huggingface.NewInferencer("key", huggingface.WithModelURL(server.URL))
		_, err := inf.Infer(ctx, "text")

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("reports missing key without calling the service", func(t *testing.T) {
		t.Parallel()

		var called bool
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		inf := huggingface.NewInferencer("", huggingface.WithModelURL(server.URL))
		_, err := inf.Infer(context.Background(), "text")

		assert.Equal(t, skim.ENOTCONFIGURED, skim.ErrorCode(err))
		assert.False(t, called)
	})

	t.Run("waits for the limiter", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"summary_text":"ok"}]`))
		})

		limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
		inf := huggingface.NewInferencer("key",
			huggingface.WithModelURL(server.URL),
			huggingface.WithLimiter(limiter),
		)

		_, err := inf.Infer(context.Background(), "first")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err = inf.Infer(ctx, "second")

		require.Error(t, err)
		var e *skim.Error
		assert.NotErrorAs(t, err, &e)
	})
}

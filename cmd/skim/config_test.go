package main_test

import (
	"log/slog"
	"testing"
	"time"

	main "github.com/fwojciec/skim/cmd/skim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.ParseConfig(map[string]string{})

		require.NoError(t, err)
		assert.Empty(t, cfg.HFAPIKey)
		assert.Equal(t, "https://router.huggingface.co/hf-inference/models/sshleifer/distilbart-cnn-12-6", cfg.HFModelURL)
		assert.Equal(t, main.BackendHuggingFace, cfg.Backend)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
		assert.Zero(t, cfg.InferenceRPS)
		assert.Empty(t, cfg.ChromeBin)
		assert.Equal(t, 75, cfg.MaxPages)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.ParseConfig(map[string]string{
			"HF_API_KEY":         "hf_abc",
			"GEMINI_API_KEY":     "gm_abc",
			"SKIM_BACKEND":       "gemini",
			"SKIM_ADDR":          "127.0.0.1:9000",
			"SKIM_INFERENCE_RPS": "0.5",
			"SKIM_FETCH_TIMEOUT": "3s",
			"LOG_LEVEL":          "debug",
			"SKIM_CHROME_BIN":    "/usr/bin/chromium",
			"SKIM_MAX_PAGES":     "20",
		})

		require.NoError(t, err)
		assert.Equal(t, "hf_abc", cfg.HFAPIKey)
		assert.Equal(t, "gm_abc", cfg.GeminiAPIKey)
		assert.Equal(t, main.BackendGemini, cfg.Backend)
		assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
		assert.InDelta(t, 0.5, cfg.InferenceRPS, 0.0001)
		assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
		assert.Equal(t, "/usr/bin/chromium", cfg.ChromeBin)
		assert.Equal(t, 20, cfg.MaxPages)

		level, err := cfg.Level(slog.LevelWarn)
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, level)
	})

	t.Run("falls back when log level unset", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.ParseConfig(map[string]string{})
		require.NoError(t, err)

		level, err := cfg.Level(slog.LevelWarn)

		require.NoError(t, err)
		assert.Equal(t, slog.LevelWarn, level)
	})

	t.Run("rejects unknown backend", func(t *testing.T) {
		t.Parallel()

		_, err := main.ParseConfig(map[string]string{"SKIM_BACKEND": "openai"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKIM_BACKEND")
	})

	t.Run("rejects non-positive page limit", func(t *testing.T) {
		t.Parallel()

		_, err := main.ParseConfig(map[string]string{"SKIM_MAX_PAGES": "0"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKIM_MAX_PAGES")
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		t.Parallel()

		_, err := main.ParseConfig(map[string]string{"SKIM_INFERENCE_RPS": "-1"})

		assert.Error(t, err)
	})

	t.Run("rejects malformed duration", func(t *testing.T) {
		t.Parallel()

		_, err := main.ParseConfig(map[string]string{"SKIM_FETCH_TIMEOUT": "soon"})

		assert.Error(t, err)
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		t.Parallel()

		_, err := main.ParseConfig(map[string]string{"LOG_LEVEL": "loud"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "LOG_LEVEL")
	})
}

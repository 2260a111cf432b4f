package sportsense_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sportsense/sportsense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty path loads defaults", func(t *testing.T) {
		cfg, err := sportsense.LoadConfig("")
		require.NoError(t, err)

		assert.Equal(t, "openai", cfg.LLM.Provider)
		assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
		assert.Equal(t, "nomic-embed-text", cfg.LLM.EmbeddingModel)
		assert.Equal(t, 5, cfg.Chat.TopK)
		assert.Equal(t, 8, cfg.Chat.Window)
		assert.Equal(t, 4, cfg.Collect.Concurrency)
	})

	t.Run("yaml values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
language: Polish
dbPath: /tmp/sportsense-test.db
llm:
  provider: openai
  model: gpt-4o
chat:
  topK: 3
sources:
  - name: sportsday
    kind: feed
    url: https://example.com/feed
    sport: football
`)

		cfg, err := sportsense.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "Polish", cfg.Language)
		assert.Equal(t, "gpt-4o", cfg.LLM.Model)
		assert.Equal(t, 3, cfg.Chat.TopK)
		assert.Equal(t, 8, cfg.Chat.Window, "unset keys keep their defaults")
		require.Len(t, cfg.Sources, 1)
		assert.Equal(t, "sportsday", cfg.Sources[0].Name)
	})

	t.Run("gemini provider gets gemini model defaults", func(t *testing.T) {
		path := writeConfig(t, "llm:\n  provider: gemini\n")

		cfg, err := sportsense.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
		assert.Equal(t, "gemini-embedding-001", cfg.LLM.EmbeddingModel)
	})

	t.Run("environment overrides file values", func(t *testing.T) {
		t.Setenv(sportsense.EnvDBPath, "/tmp/override.db")
		t.Setenv(sportsense.EnvLanguage, "Spanish")

		cfg, err := sportsense.LoadConfig("")
		require.NoError(t, err)

		assert.Equal(t, "/tmp/override.db", cfg.DBPath)
		assert.Equal(t, "Spanish", cfg.Language)
	})

	t.Run("api key comes from the provider's env variable", func(t *testing.T) {
		t.Setenv(sportsense.EnvGeminiAPIKey, "gm-key")
		path := writeConfig(t, "llm:\n  provider: gemini\n")

		cfg, err := sportsense.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "gm-key", cfg.LLM.APIKey)
	})

	t.Run("missing file fails with ECONFIG", func(t *testing.T) {
		_, err := sportsense.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Equal(t, sportsense.ECONFIG, sportsense.ErrorCode(err))
	})

	t.Run("malformed yaml fails with ECONFIG", func(t *testing.T) {
		path := writeConfig(t, "language: [unclosed")
		_, err := sportsense.LoadConfig(path)
		assert.Equal(t, sportsense.ECONFIG, sportsense.ErrorCode(err))
	})

	t.Run("unsupported provider fails with ECONFIG", func(t *testing.T) {
		path := writeConfig(t, "llm:\n  provider: anthropic\n")
		_, err := sportsense.LoadConfig(path)
		assert.Equal(t, sportsense.ECONFIG, sportsense.ErrorCode(err))
	})

	t.Run("invalid source fails with ECONFIG", func(t *testing.T) {
		path := writeConfig(t, `
sources:
  - name: sportsday
    kind: teletext
    url: https://example.com
`)
		_, err := sportsense.LoadConfig(path)
		err = assertConfigErr(t, err)
		assert.Contains(t, sportsense.ErrorMessage(err), "kind")
	})

	t.Run("duplicate source names fail with ECONFIG", func(t *testing.T) {
		path := writeConfig(t, `
sources:
  - name: sportsday
    kind: feed
    url: https://example.com/a
  - name: sportsday
    kind: feed
    url: https://example.com/b
`)
		_, err := sportsense.LoadConfig(path)
		err = assertConfigErr(t, err)
		assert.Contains(t, sportsense.ErrorMessage(err), "duplicate")
	})
}

func assertConfigErr(t *testing.T, err error) error {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, sportsense.ECONFIG, sportsense.ErrorCode(err))
	return err
}

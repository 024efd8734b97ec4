package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
)

// mockConfigStore holds config values in a map.
type mockConfigStore struct {
	values map[string]any
	setErr error
}

var _ driven.ConfigStore = (*mockConfigStore)(nil)

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if v, ok := m.values[key].(int); ok {
		return v
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	switch v := m.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	if v, ok := m.values[key].([]string); ok {
		return v
	}
	return nil
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return "/tmp/pactdiff-test/config.toml"
}

func TestSettingsService_GetDefaults(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore())

	settings, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, ":8000", settings.API.Addr)
	assert.Equal(t, "en-US", settings.Grammar.Language)
	assert.InDelta(t, 0.75, settings.Compare.SemanticThreshold, 0.001)
	assert.InDelta(t, 0.6, settings.Compare.HighThreshold, 0.001)
	assert.InDelta(t, 0.85, settings.Compare.MediumThreshold, 0.001)
	assert.InDelta(t, 0.9, settings.Compare.VisualThreshold, 0.001)
	assert.False(t, settings.Embedding.IsConfigured())
	assert.False(t, settings.LLM.IsConfigured())
	assert.False(t, settings.Inbox.Enabled)
}

func TestSettingsService_GetReadsStoredValues(t *testing.T) {
	store := newMockConfigStore()
	store.values["embedding.provider"] = "ollama"
	store.values["embedding.model"] = "nomic-embed-text"
	store.values["embedding.base_url"] = "http://localhost:11434"
	store.values["compare.semantic_threshold"] = 0.5
	store.values["inbox.enabled"] = true
	store.values["inbox.dir"] = "/data/inbox"

	svc := NewSettingsService(store)
	settings, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
	assert.True(t, settings.Embedding.IsConfigured())
	assert.InDelta(t, 0.5, settings.Compare.SemanticThreshold, 0.001)
	assert.True(t, settings.Inbox.Enabled)
	assert.Equal(t, "/data/inbox", settings.Inbox.Dir)
}

func TestSettingsService_GetIgnoresInvalidProvider(t *testing.T) {
	store := newMockConfigStore()
	store.values["llm.provider"] = "skynet"

	svc := NewSettingsService(store)
	settings, err := svc.Get()
	require.NoError(t, err)

	assert.False(t, settings.LLM.Provider.IsValid())
	assert.False(t, settings.LLM.IsConfigured())
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := newMockConfigStore()
	svc := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.API.Addr = ":9000"
	settings.Grammar.Endpoint = "http://localhost:8010"
	settings.Inbox.Enabled = true
	settings.Inbox.Dir = "/data/inbox"

	require.NoError(t, svc.Save(&settings))

	loaded, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, ":9000", loaded.API.Addr)
	assert.Equal(t, "http://localhost:8010", loaded.Grammar.Endpoint)
	assert.True(t, loaded.Inbox.Enabled)
	assert.Equal(t, "/data/inbox", loaded.Inbox.Dir)
}

func TestSettingsService_SaveKeepsExistingAPIKey(t *testing.T) {
	store := newMockConfigStore()
	store.values["llm.api_key"] = "sk-existing"

	svc := NewSettingsService(store)
	settings := domain.DefaultAppSettings()
	// Empty key in the saved settings must not wipe the stored one
	require.NoError(t, svc.Save(&settings))

	assert.Equal(t, "sk-existing", store.GetString("llm.api_key"))
}

func TestSettingsService_SetEmbeddingProvider(t *testing.T) {
	t.Run("ollama fills local defaults", func(t *testing.T) {
		svc := NewSettingsService(newMockConfigStore())

		require.NoError(t, svc.SetEmbeddingProvider(domain.AIProviderOllama, "", ""))

		settings, err := svc.Get()
		require.NoError(t, err)
		assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
		assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
		assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)
	})

	t.Run("openai requires api key", func(t *testing.T) {
		svc := NewSettingsService(newMockConfigStore())

		err := svc.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "")
		assert.ErrorContains(t, err, "API key required")
	})

	t.Run("anthropic has no embeddings", func(t *testing.T) {
		svc := NewSettingsService(newMockConfigStore())

		err := svc.SetEmbeddingProvider(domain.AIProviderAnthropic, "", "sk-test")
		assert.ErrorContains(t, err, "does not support embeddings")
	})

	t.Run("invalid provider rejected", func(t *testing.T) {
		svc := NewSettingsService(newMockConfigStore())

		err := svc.SetEmbeddingProvider("skynet", "", "")
		assert.ErrorContains(t, err, "invalid embedding provider")
	})
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	t.Run("anthropic with key", func(t *testing.T) {
		svc := NewSettingsService(newMockConfigStore())

		require.NoError(t, svc.SetLLMProvider(domain.AIProviderAnthropic, "", "sk-test"))

		settings, err := svc.Get()
		require.NoError(t, err)
		assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
		assert.Equal(t, "claude-3-5-sonnet-latest", settings.LLM.Model)
		assert.Empty(t, settings.LLM.BaseURL)
		assert.True(t, settings.LLM.IsConfigured())
	})

	t.Run("explicit model wins over default", func(t *testing.T) {
		svc := NewSettingsService(newMockConfigStore())

		require.NoError(t, svc.SetLLMProvider(domain.AIProviderOllama, "mistral", ""))

		settings, err := svc.Get()
		require.NoError(t, err)
		assert.Equal(t, "mistral", settings.LLM.Model)
	})

	t.Run("missing key rejected", func(t *testing.T) {
		svc := NewSettingsService(newMockConfigStore())

		err := svc.SetLLMProvider(domain.AIProviderOpenAI, "", "")
		assert.ErrorContains(t, err, "API key required")
	})
}

func TestSettingsService_GetPrefersEnvAPIKey(t *testing.T) {
	store := newMockConfigStore()
	store.values["llm.provider"] = "anthropic"
	store.values["llm.api_key"] = "sk-from-config"
	t.Setenv("ANTHROPIC_API_KEY", "sk-from-env")

	svc := NewSettingsService(store)
	settings, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", settings.LLM.APIKey)
}

func TestSettingsService_GetDefaultsMethod(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore())

	defaults := svc.GetDefaults()
	assert.Equal(t, domain.DefaultAppSettings(), defaults)
}

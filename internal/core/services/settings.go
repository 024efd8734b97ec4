package services

import (
	"fmt"
	"os"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
	"github.com/clauseworks/pactdiff/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider   = "embedding.provider"
	keyEmbedModel      = "embedding.model"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedAPIKey     = "embedding.api_key"
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
	keyGrammarEndpoint = "grammar.endpoint"
	keyGrammarLanguage = "grammar.language"
	keySemanticThresh  = "compare.semantic_threshold"
	keyHighThresh      = "compare.high_threshold"
	keyMediumThresh    = "compare.medium_threshold"
	keyVisualThresh    = "compare.visual_threshold"
	keyAPIAddr         = "api.addr"
	keyInboxEnabled    = "inbox.enabled"
	keyInboxDir        = "inbox.dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Grammar: domain.GrammarSettings{
			Endpoint: s.configStore.GetString(keyGrammarEndpoint),
			Language: s.getString(keyGrammarLanguage, defaults.Grammar.Language),
		},
		Compare: domain.CompareSettings{
			SemanticThreshold: s.getFloat(keySemanticThresh, defaults.Compare.SemanticThreshold),
			HighThreshold:     s.getFloat(keyHighThresh, defaults.Compare.HighThreshold),
			MediumThreshold:   s.getFloat(keyMediumThresh, defaults.Compare.MediumThreshold),
			VisualThreshold:   s.getFloat(keyVisualThresh, defaults.Compare.VisualThreshold),
		},
		API: domain.APISettings{
			Addr: s.getString(keyAPIAddr, defaults.API.Addr),
		},
		Inbox: domain.InboxSettings{
			Enabled: s.getBool(keyInboxEnabled, defaults.Inbox.Enabled),
			Dir:     s.configStore.GetString(keyInboxDir),
		},
	}

	// Environment keys win over the config file so secrets can stay out
	// of it entirely.
	if key := apiKeyFromEnv(settings.Embedding.Provider); key != "" {
		settings.Embedding.APIKey = key
	}
	if key := apiKeyFromEnv(settings.LLM.Provider); key != "" {
		settings.LLM.APIKey = key
	}

	return settings, nil
}

// apiKeyFromEnv returns the conventional environment key for a cloud
// provider, empty for local providers.
func apiKeyFromEnv(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case domain.AIProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	type entry struct {
		key string
		val any
	}
	entries := []entry{
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyGrammarEndpoint, settings.Grammar.Endpoint},
		{keyGrammarLanguage, settings.Grammar.Language},
		{keySemanticThresh, settings.Compare.SemanticThreshold},
		{keyHighThresh, settings.Compare.HighThreshold},
		{keyMediumThresh, settings.Compare.MediumThreshold},
		{keyVisualThresh, settings.Compare.VisualThreshold},
		{keyAPIAddr, settings.API.Addr},
		{keyInboxEnabled, settings.Inbox.Enabled},
		{keyInboxDir, settings.Inbox.Dir},
	}
	for _, e := range entries {
		if err := s.configStore.Set(e.key, e.val); err != nil {
			return fmt.Errorf("save %s: %w", e.key, err)
		}
	}

	// API keys are only written when set, so clearing a provider does
	// not wipe a key the user may want to keep.
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	supported := false
	for _, p := range domain.AllEmbeddingProviders() {
		if p == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}

	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	if model != "" {
		settings.Embedding.Model = model
	} else if defaultModel, ok := domain.DefaultEmbeddingModels()[provider]; ok {
		settings.Embedding.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.Embedding.BaseURL = ""
	}
	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.LLM.BaseURL = ""
	}
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

package llm

import (
	"testing"
)

func TestNewLLMUnsupportedProvider(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")

	_, err := NewLLM("mystery", "some-model")
	if err == nil {
		t.Fatal("Expected error for unsupported provider")
	}
}

func TestGetAPIKeyProviderSpecific(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("LLM_API_KEY", "generic-key")

	key, err := getAPIKey(ProviderGemini)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if key != "gemini-key" {
		t.Errorf("Expected provider-specific key to win, got %s", key)
	}
}

func TestGetAPIKeyFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LLM_API_KEY", "generic-key")

	key, err := getAPIKey(ProviderOpenAI)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if key != "generic-key" {
		t.Errorf("Expected fallback key, got %s", key)
	}
}

func TestGetAPIKeyMissing(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("LLM_API_KEY", "")

	if _, err := getAPIKey(ProviderAnthropic); err == nil {
		t.Error("Expected error when no API key is set")
	}
}

func TestNewGeminiAppliesOptions(t *testing.T) {
	model, err := NewGemini("test-key",
		WithModel("gemini-2.5-pro"),
		WithMaxTokens(1000),
		WithTemperature(0.7),
		WithAPITimeout(10),
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if model.modelName != "gemini-2.5-pro" {
		t.Errorf("Expected model gemini-2.5-pro, got %s", model.modelName)
	}
	if model.maxTokens != 1000 {
		t.Errorf("Expected max tokens 1000, got %d", model.maxTokens)
	}
	if model.temperature != 0.7 {
		t.Errorf("Expected temperature 0.7, got %g", model.temperature)
	}
	if model.apiTimeout != 10 {
		t.Errorf("Expected timeout 10, got %d", model.apiTimeout)
	}
}

func TestNewOpenAIRejectsEmptyKey(t *testing.T) {
	if _, err := NewOpenAI(""); err == nil {
		t.Error("Expected error for empty API key")
	}
}

func TestNewGeminiRejectsEmptyKey(t *testing.T) {
	if _, err := NewGemini(""); err == nil {
		t.Error("Expected error for empty API key")
	}
}

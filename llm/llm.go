package llm

import (
	"fmt"
	"os"
)

// Supported providers
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// OptionType defines the type of option
type OptionType string

// Available option types
const (
	ModelNameOption   OptionType = "model"
	MaxTokensOption   OptionType = "max_tokens"
	TemperatureOption OptionType = "temperature"
	APITimeoutOption  OptionType = "api_timeout"
)

// Option represents a generic configuration option for any LLM provider
type Option struct {
	Type  OptionType
	Value any
}

// WithModel creates an option to set the model name
func WithModel(model string) Option {
	return Option{
		Type:  ModelNameOption,
		Value: model,
	}
}

// WithMaxTokens creates an option to set the max output tokens
func WithMaxTokens(maxTokens int) Option {
	return Option{
		Type:  MaxTokensOption,
		Value: maxTokens,
	}
}

// WithTemperature creates an option to set the sampling temperature
func WithTemperature(temperature float64) Option {
	return Option{
		Type:  TemperatureOption,
		Value: temperature,
	}
}

// WithAPITimeout creates an option to set the API timeout in seconds
func WithAPITimeout(timeout int) Option {
	return Option{
		Type:  APITimeoutOption,
		Value: timeout,
	}
}

// Request represents the data needed to generate a prompt for the LLM
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Diff         string
}

// Response represents the response from the LLM
type Response struct {
	Content string
	Error   error
}

// LLM defines the interface for language model prompting
type LLM interface {
	// Prompt sends a request to the language model and returns its response
	Prompt(req Request) Response
}

// apiKeyEnvs maps each provider to its API key environment variable
var apiKeyEnvs = map[string]string{
	ProviderGemini:    "GEMINI_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
}

func getAPIKey(providerName string) (string, error) {
	envName, ok := apiKeyEnvs[providerName]
	if !ok {
		return "", fmt.Errorf("unsupported provider: %s", providerName)
	}

	if apiKey := os.Getenv(envName); apiKey != "" {
		return apiKey, nil
	}
	// Generic fallback when a single key is configured for whatever provider is active
	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		return apiKey, nil
	}
	return "", fmt.Errorf("%s (or LLM_API_KEY) environment variable is not set", envName)
}

// NewLLM creates a client for the named provider with the given options
func NewLLM(providerName, modelName string, opts ...Option) (LLM, error) {
	var llmClient LLM
	var err error

	apiKey, err := getAPIKey(providerName)
	if err != nil {
		return nil, err
	}

	options := []Option{
		WithModel(modelName),
	}
	options = append(options, opts...)

	switch providerName {
	case ProviderGemini:
		llmClient, err = NewGemini(apiKey, options...)
	case ProviderOpenAI:
		llmClient, err = NewOpenAI(apiKey, options...)
	case ProviderAnthropic:
		llmClient, err = NewAnthropic(apiKey, options...)
	default:
		err = fmt.Errorf("unsupported provider: %s", providerName)
	}

	return llmClient, err
}

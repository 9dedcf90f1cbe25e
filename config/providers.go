package config

import (
	"fmt"
	"strings"
)

const (
	GroqBaseURL  = "https://api.groq.com/openai/v1"
	GroqModel    = "llama-3.3-70b-versatile"
	GroqKeyEnv   = "GROQ_API_KEY"
	ClaudeModel  = "claude-sonnet-4-20250514"
	ClaudeKeyEnv = "ANTHROPIC_API_KEY"

	DefaultProvider = "groq"
)

// Default returns the built-in provider presets. The groq and anthropic
// presets keep their historical output policies: filtered text and raw events.
func Default() Config {
	return Config{
		Provider: DefaultProvider,
		Providers: map[string]ProviderConfig{
			"groq": {
				Type:         TypeOpenAICompatible,
				APIKeyEnv:    GroqKeyEnv,
				BaseURL:      GroqBaseURL,
				Model:        GroqModel,
				DefaultInput: "sample_prd.txt",
				Output:       "text",
			},
			"anthropic": {
				Type:         TypeAnthropic,
				APIKeyEnv:    ClaudeKeyEnv,
				Model:        ClaudeModel,
				DefaultInput: "prd.txt",
				Output:       "raw",
			},
			"mock": {
				Type:         TypeMock,
				Model:        "mock-design",
				DefaultInput: "sample_prd.txt",
				Output:       "text",
			},
		},
	}
}

// Provider is a provider entry with its credential looked up.
type Provider struct {
	Name string
	ProviderConfig
	APIKey string
}

// Resolve selects the named provider (the configured one when name is empty)
// and reads its API key through getenv. This is the only place credentials
// are read from the environment.
func (c Config) Resolve(name string, getenv func(string) string) (Provider, error) {
	if name == "" {
		name = c.Provider
	}
	pc, ok := c.Providers[name]
	if !ok {
		return Provider{}, &UnknownProviderError{Name: name, Known: c.providerNames()}
	}
	p := Provider{Name: name, ProviderConfig: pc}
	if pc.Type == TypeMock {
		return p, nil
	}
	p.APIKey = strings.TrimSpace(getenv(pc.APIKeyEnv))
	if p.APIKey == "" {
		return Provider{}, &MissingEnvError{Name: pc.APIKeyEnv}
	}
	return p, nil
}

// MissingEnvError reports a required environment variable that is unset or empty.
type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("Environment variable %s is not set", e.Name)
}

// UnknownProviderError reports a provider name with no config entry.
type UnknownProviderError struct {
	Name  string
	Known []string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("provider %q not supported (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"product_design_agent/generator"
)

const (
	TypeOpenAICompatible = "openai_compatible"
	TypeAnthropic        = "anthropic"
	TypeMock             = "mock"
)

// ValidProviderTypes are the provider types a config entry may use.
var ValidProviderTypes = []string{TypeOpenAICompatible, TypeAnthropic, TypeMock}

// DefaultConfigCandidates are looked up in the working directory, in order of precedence.
var DefaultConfigCandidates = []string{"prd-design.yaml", "prd-design.yml", "prd-design.toml", "prd-design.json"}

// ProviderConfig describes one model provider.
type ProviderConfig struct {
	Type         string `koanf:"type"`
	APIKeyEnv    string `koanf:"api_key_env"`
	BaseURL      string `koanf:"base_url"`
	Model        string `koanf:"model"`
	MaxTokens    int64  `koanf:"max_tokens"`
	DefaultInput string `koanf:"default_input"`
	Output       string `koanf:"output"`
}

// Validate ensures the ProviderConfig is usable.
func (p ProviderConfig) Validate() error {
	if !slices.Contains(ValidProviderTypes, p.Type) {
		return fmt.Errorf("invalid type: %q", p.Type)
	}
	if p.Model == "" {
		return errors.New("model is required")
	}
	if p.Type != TypeMock && p.APIKeyEnv == "" {
		return errors.New("api_key_env is required")
	}
	if p.MaxTokens < 0 {
		return errors.New("max_tokens must not be negative")
	}
	if p.Output != "" {
		if _, err := generator.ParseOutputPolicy(p.Output); err != nil {
			return err
		}
	}
	return nil
}

// overlay copies the non-zero fields of o onto p.
func (p ProviderConfig) overlay(o ProviderConfig) ProviderConfig {
	if o.Type != "" {
		p.Type = o.Type
	}
	if o.APIKeyEnv != "" {
		p.APIKeyEnv = o.APIKeyEnv
	}
	if o.BaseURL != "" {
		p.BaseURL = o.BaseURL
	}
	if o.Model != "" {
		p.Model = o.Model
	}
	if o.MaxTokens != 0 {
		p.MaxTokens = o.MaxTokens
	}
	if o.DefaultInput != "" {
		p.DefaultInput = o.DefaultInput
	}
	if o.Output != "" {
		p.Output = o.Output
	}
	return p
}

// Config is the full tool configuration: the selected provider plus every known provider.
type Config struct {
	Provider  string                    `koanf:"provider"`
	Providers map[string]ProviderConfig `koanf:"providers"`
}

// Validate checks every provider entry and the selected provider name.
func (c Config) Validate() error {
	for _, name := range c.providerNames() {
		if err := c.Providers[name].Validate(); err != nil {
			return fmt.Errorf("provider %s: %w", name, err)
		}
	}
	if _, ok := c.Providers[c.Provider]; !ok {
		return &UnknownProviderError{Name: c.Provider, Known: c.providerNames()}
	}
	return nil
}

func (c Config) providerNames() []string {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns the built-in presets overlaid with the config file at path.
// An empty path yields the presets. A missing file is an error only when required.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("error loading config: %w", err)
	}

	parser := parserForExtension(path)
	if parser == nil {
		return Config{}, fmt.Errorf("error loading config: unsupported extension %q", filepath.Ext(path))
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return Config{}, fmt.Errorf("error loading config: %w", err)
	}

	var fileCfg Config
	if err := k.Unmarshal("", &fileCfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if fileCfg.Provider != "" {
		cfg.Provider = fileCfg.Provider
	}
	for name, pc := range fileCfg.Providers {
		cfg.Providers[name] = cfg.Providers[name].overlay(pc)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover returns the first existing default config file in dir, or "".
func Discover(dir string) string {
	for _, candidate := range DefaultConfigCandidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func parserForExtension(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser()
	case ".toml":
		return toml.Parser()
	case ".json":
		return json.Parser()
	default:
		return nil
	}
}

// LoadDotenv loads KEY=VALUE pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

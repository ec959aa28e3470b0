package config

// Config holds imli configuration.
// Stored at: ~/.imli/config.yaml
type Config struct {
	LLM     LLMCfg     `mapstructure:"llm" yaml:"llm"`
	Fetch   FetchCfg   `mapstructure:"fetch" yaml:"fetch"`
	Extract ExtractCfg `mapstructure:"extract" yaml:"extract"`
	Server  ServerCfg  `mapstructure:"server" yaml:"server"`
}

// LLMCfg configures the language-model backend.
type LLMCfg struct {
	Provider       string  `mapstructure:"provider" yaml:"provider"`               // "openai"
	Model          string  `mapstructure:"model" yaml:"model"`                     // Model name
	APIKey         string  `mapstructure:"api_key" yaml:"api_key"`                 // API key (supports ${ENV_VAR} syntax)
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // HTTP timeout
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature"`
}

// FetchCfg configures document fetching.
type FetchCfg struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent" yaml:"user_agent"`
}

// ExtractCfg configures structured extraction.
type ExtractCfg struct {
	MaxChars int `mapstructure:"max_chars" yaml:"max_chars"` // Leading text window sent to the model
}

// ServerCfg configures the web front end.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMCfg{
			Provider:       "openai",
			Model:          "gpt-4.1-mini",
			APIKey:         "${OPENAI_API_KEY}",
			TimeoutSeconds: 120,
		},
		Fetch: FetchCfg{
			TimeoutSeconds: 30,
			UserAgent:      "imli/1.0",
		},
		Extract: ExtractCfg{
			MaxChars: 12000,
		},
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
	}
}

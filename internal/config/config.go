package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port         string   `toml:"port" validate:"required,numeric"`
	AllowOrigins []string `toml:"allow_origins"`
}

type LogConfig struct {
	Mode  string `toml:"mode" validate:"omitempty,oneof=dev prod production"`
	Level string `toml:"level"`
}

type LLMConfig struct {
	Provider    string  `toml:"provider" validate:"required,oneof=openai gemini claude ollama"`
	Model       string  `toml:"model" validate:"required"`
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

type StoreConfig struct {
	Backend     string `toml:"backend" validate:"required,oneof=memory badger neo4j memgraph"`
	URI         string `toml:"uri" validate:"required_if=Backend neo4j,required_if=Backend memgraph"`
	User        string `toml:"user"`
	Password    string `toml:"password"`
	Database    string `toml:"database"`
	Path        string `toml:"path"`
	MaxPoolSize int    `toml:"max_pool_size"`
	TimeoutSecs int    `toml:"timeout_seconds"`
}

type RegistryConfig struct {
	Backend   string `toml:"backend" validate:"required,oneof=file redis"`
	Path      string `toml:"path" validate:"required_if=Backend file"`
	RedisAddr string `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisKey  string `toml:"redis_key"`
}

type SourcesConfig struct {
	WikipediaURL       string  `toml:"wikipedia_url" validate:"required,url"`
	MapsURL            string  `toml:"maps_url" validate:"required,url"`
	MapsAPIKey         string  `toml:"maps_api_key"`
	SearchPrefix       string  `toml:"search_prefix"`
	RadiusMeters       int     `toml:"radius_meters" validate:"gte=0"`
	PlacesPerCity      int     `toml:"places_per_city" validate:"gte=1"`
	RequestsPerSecond  float64 `toml:"requests_per_second" validate:"gte=0"`
	TimeoutSecs        int     `toml:"timeout_seconds" validate:"gte=0"`
	BreakerMaxFailures uint32  `toml:"breaker_max_failures"`
}

type RetrievalConfig struct {
	MaxHops int `toml:"max_hops" validate:"gte=1,lte=6"`
}

// PromptsConfig holds fmt templates; see the Default*Prompt constants for
// the arguments each one receives.
type PromptsConfig struct {
	Extraction string `toml:"extraction" validate:"required"`
	Ranking    string `toml:"ranking" validate:"required"`
	Itinerary  string `toml:"itinerary" validate:"required"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Log       LogConfig       `toml:"log"`
	LLM       LLMConfig       `toml:"llm"`
	Store     StoreConfig     `toml:"store"`
	Registry  RegistryConfig  `toml:"registry"`
	Sources   SourcesConfig   `toml:"sources"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Prompts   PromptsConfig   `toml:"prompts"`
}

// Default returns a configuration that runs fully locally apart from the
// language model and the two public APIs.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "5000", AllowOrigins: []string{"*"}},
		Log:    LogConfig{Mode: "dev", Level: "info"},
		LLM: LLMConfig{
			Provider:    "gemini",
			Model:       "gemini-1.5-pro",
			Temperature: 0.2,
			MaxTokens:   8192,
		},
		Store:    StoreConfig{Backend: "badger", Path: "data/graph", TimeoutSecs: 10},
		Registry: RegistryConfig{Backend: "file", Path: "existing_places.json", RedisKey: "travelmate:destinations"},
		Sources: SourcesConfig{
			WikipediaURL:       "https://en.wikipedia.org/w/api.php",
			MapsURL:            "https://maps.googleapis.com/maps/api/place/textsearch/json",
			SearchPrefix:       "Most Popular places in ",
			RadiusMeters:       20000,
			PlacesPerCity:      2,
			RequestsPerSecond:  5,
			TimeoutSecs:        20,
			BreakerMaxFailures: 5,
		},
		Retrieval: RetrievalConfig{MaxHops: 3},
		Prompts: PromptsConfig{
			Extraction: DefaultExtractionPrompt,
			Ranking:    DefaultRankingPrompt,
			Itinerary:  DefaultItineraryPrompt,
		},
	}
}

// Load reads a TOML file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides secrets and endpoints from the environment.
func (c *Config) ApplyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Log.Mode, "LOG_MODE")
	setString(&c.Log.Level, "LOG_LEVEL")

	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	if c.LLM.APIKey == "" && c.LLM.Provider == "gemini" {
		setString(&c.LLM.APIKey, "GEMINI_API_KEY")
	}

	setString(&c.Store.Backend, "GRAPH_BACKEND")
	setString(&c.Store.URI, "GRAPH_URI")
	setString(&c.Store.User, "GRAPH_USER")
	setString(&c.Store.Password, "GRAPH_PASSWORD")
	setString(&c.Store.Database, "GRAPH_DATABASE")
	setString(&c.Store.Path, "GRAPH_PATH")

	setString(&c.Registry.Backend, "REGISTRY_BACKEND")
	setString(&c.Registry.Path, "PLACES_FILE")
	setString(&c.Registry.RedisAddr, "REDIS_ADDR")

	setString(&c.Sources.MapsAPIKey, "MAPS_API_KEY")
	if c.Sources.MapsAPIKey == "" {
		setString(&c.Sources.MapsAPIKey, "GEMINI_API_KEY")
	}

	if v := os.Getenv("MAX_HOPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retrieval.MaxHops = n
		}
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c StoreConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

func (c SourcesConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

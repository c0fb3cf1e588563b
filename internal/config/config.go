// Package config provides configuration loading and validation for the scorer CLI,
// HTTP server and queue worker.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults
const (
	DefaultPort           = 8080
	DefaultQueue          = "resume.score"
	DefaultWorkers        = 4
	DefaultMaxInputBytes  = 256 << 10
	DefaultMaxNamedSkills = 5
	MaxFuzzyDistance      = 3
)

// Config represents settings that can be loaded from a JSON file and overridden by
// environment variables. All fields are optional.
type Config struct {
	// Scoring
	TaxonomyPath   string `json:"taxonomy_path,omitempty"`    // JSON or YAML taxonomy; empty uses the embedded one
	MaxInputBytes  int    `json:"max_input_bytes,omitempty"`  // Per-text size ceiling
	MaxNamedSkills int    `json:"max_named_skills,omitempty"` // Skills named per suggestion
	FuzzyDistance  int    `json:"fuzzy_distance,omitempty"`   // 0 keeps skill matching exact

	// Serving
	Port    int `json:"port,omitempty"`
	Workers int `json:"workers,omitempty"` // Batch and queue concurrency

	// Queue worker
	AMQPURL string `json:"amqp_url,omitempty"`
	Queue   string `json:"queue,omitempty"`

	// Résumé text stored in S3
	S3Region   string `json:"s3_region,omitempty"`
	S3Endpoint string `json:"s3_endpoint,omitempty"` // Custom endpoint for S3-compatible stores

	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		MaxInputBytes:  DefaultMaxInputBytes,
		MaxNamedSkills: DefaultMaxNamedSkills,
		Port:           DefaultPort,
		Workers:        DefaultWorkers,
		Queue:          DefaultQueue,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load reads the optional config file at path, applies environment overrides and fills
// the remaining zero values from Defaults.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// ApplyEnv overrides fields from environment variables that are set.
func (c *Config) ApplyEnv() error {
	strings := map[string]*string{
		"TAXONOMY_PATH": &c.TaxonomyPath,
		"AMQP_URL":      &c.AMQPURL,
		"SCORE_QUEUE":   &c.Queue,
		"AWS_REGION":    &c.S3Region,
		"S3_ENDPOINT":   &c.S3Endpoint,
	}
	for name, field := range strings {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*field = v
		}
	}

	ints := map[string]*int{
		"MAX_INPUT_BYTES":  &c.MaxInputBytes,
		"MAX_NAMED_SKILLS": &c.MaxNamedSkills,
		"FUZZY_DISTANCE":   &c.FuzzyDistance,
		"PORT":             &c.Port,
		"WORKERS":          &c.Workers,
	}
	for name, field := range ints {
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", name, err)
		}
		*field = n
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.MaxInputBytes < 0 {
		return fmt.Errorf("config error: 'max_input_bytes' must be non-negative")
	}
	if c.MaxNamedSkills < 0 {
		return fmt.Errorf("config error: 'max_named_skills' must be non-negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.FuzzyDistance < 0 || c.FuzzyDistance > MaxFuzzyDistance {
		return fmt.Errorf("config error: 'fuzzy_distance' must be between 0 and %d", MaxFuzzyDistance)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.TaxonomyPath != "" {
		if _, err := os.Stat(c.TaxonomyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.TaxonomyPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.TaxonomyPath == "" {
		result.TaxonomyPath = defaults.TaxonomyPath
	}
	if result.AMQPURL == "" {
		result.AMQPURL = defaults.AMQPURL
	}
	if result.Queue == "" {
		result.Queue = defaults.Queue
	}
	if result.S3Region == "" {
		result.S3Region = defaults.S3Region
	}
	if result.S3Endpoint == "" {
		result.S3Endpoint = defaults.S3Endpoint
	}

	if result.MaxInputBytes == 0 {
		result.MaxInputBytes = defaults.MaxInputBytes
	}
	if result.MaxNamedSkills == 0 {
		result.MaxNamedSkills = defaults.MaxNamedSkills
	}
	if result.FuzzyDistance == 0 {
		result.FuzzyDistance = defaults.FuzzyDistance
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

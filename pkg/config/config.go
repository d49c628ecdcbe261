package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Redis      RedisConfig      `mapstructure:"redis"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Model      ModelConfig      `mapstructure:"model"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Batch      BatchConfig      `mapstructure:"batch"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	MetricsPort  int    `mapstructure:"metrics_port"`
	MaxURLLength int    `mapstructure:"max_url_length"`
	BodyLimit    int    `mapstructure:"body_limit"`
}

type MetricsConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	EnableLatency    bool `mapstructure:"enable_latency"`
	EnableEnrichment bool `mapstructure:"enable_enrichment"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TLS      bool          `mapstructure:"tls"`
	LocalTTL time.Duration `mapstructure:"local_ttl"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
	AllowMethods []string `mapstructure:"allow_methods"`
}

// RateLimitConfig holds requests per minute per client IP. Zero disables the limit.
type RateLimitConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Predict  int  `mapstructure:"predict"`
	Batch    int  `mapstructure:"batch"`
	Features int  `mapstructure:"features"`
}

type ModelConfig struct {
	// Path to the artifact; empty means rule-based scoring only.
	Path string `mapstructure:"path"`
}

type ScoringConfig struct {
	TopN             int                `mapstructure:"top_n"`
	TopFeatures      int                `mapstructure:"top_features_cap"`
	MaxExplanations  int                `mapstructure:"max_explanations"`
	NoiseThreshold   float64            `mapstructure:"noise_threshold"`
	HighWeightCutoff float64            `mapstructure:"high_weight_cutoff"`
	RuleWeights      map[string]float64 `mapstructure:"rule_weights"`
}

type BatchConfig struct {
	MaxCount       int           `mapstructure:"max_count"`
	MaxUploadCount int           `mapstructure:"max_upload_count"`
	Concurrency    int           `mapstructure:"concurrency"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type EnrichmentConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	Timeout            time.Duration `mapstructure:"timeout"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
	BreakerMaxFailures uint32        `mapstructure:"breaker_max_failures"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout"`
	TLSPort            string        `mapstructure:"tls_port"`
}

var globalConfig Config

func Load(configPath string) error {
	setDefaultValues()
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	return globalConfig.Validate()
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
		// defaults plus environment variables are a complete configuration
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	for key, value := range Defaults() {
		viper.SetDefault(key, value)
	}
}

// Defaults lists every key with its default so env overrides work without a file.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.host":                     "0.0.0.0",
		"server.port":                     8000,
		"server.metrics_port":             9090,
		"server.max_url_length":           2000,
		"server.body_limit":               1 << 20,
		"metrics.enabled":                 true,
		"metrics.enable_latency":          true,
		"metrics.enable_enrichment":       true,
		"redis.enabled":                   false,
		"redis.host":                      "localhost",
		"redis.port":                      6379,
		"redis.password":                  "",
		"redis.db":                        0,
		"redis.tls":                       false,
		"redis.local_ttl":                 "5m",
		"cors.allow_origins":              []string{"*"},
		"cors.allow_methods":              []string{"GET", "POST", "OPTIONS"},
		"rate_limit.enabled":              true,
		"rate_limit.predict":              30,
		"rate_limit.batch":                10,
		"rate_limit.features":             20,
		"model.path":                      "",
		"scoring.top_n":                   5,
		"scoring.top_features_cap":        5,
		"scoring.max_explanations":        6,
		"scoring.noise_threshold":         0.01,
		"scoring.high_weight_cutoff":      25.0,
		"batch.max_count":                 50,
		"batch.max_upload_count":          500,
		"batch.concurrency":               8,
		"batch.timeout":                   "30s",
		"enrichment.enabled":              false,
		"enrichment.timeout":              "5s",
		"enrichment.cache_ttl":            "24h",
		"enrichment.breaker_max_failures": 5,
		"enrichment.breaker_timeout":      "30s",
		"enrichment.tls_port":             "443",
	}
}

// Validate rejects configurations the pipeline cannot honour.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, errors.New("server.port must be positive"))
	}
	if c.Server.MaxURLLength <= 0 {
		errs = append(errs, errors.New("server.max_url_length must be positive"))
	}
	if c.Batch.MaxCount <= 0 || c.Batch.MaxUploadCount < c.Batch.MaxCount {
		errs = append(errs, errors.New("batch.max_count must be positive and not above batch.max_upload_count"))
	}
	if c.Batch.Concurrency <= 0 {
		errs = append(errs, errors.New("batch.concurrency must be positive"))
	}
	if c.Enrichment.Timeout <= 0 || c.Batch.Timeout <= c.Enrichment.Timeout {
		errs = append(errs, fmt.Errorf("batch.timeout (%s) must be longer than enrichment.timeout (%s)",
			c.Batch.Timeout, c.Enrichment.Timeout))
	}
	if c.Scoring.NoiseThreshold < 0 {
		errs = append(errs, errors.New("scoring.noise_threshold must not be negative"))
	}
	return errors.Join(errs...)
}

func GetConfig() *Config {
	return &globalConfig
}

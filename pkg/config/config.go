package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/questdb"
)

// Config represents the application configuration.
type Config struct {
	App      AppConfig      `envPrefix:"APP_"`
	Data     DataConfig     `envPrefix:"DATA_"`
	Pipeline PipelineConfig `envPrefix:"PIPELINE_"`
	QuestDB  questdb.Config `envPrefix:"QUESTDB_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name     string `env:"NAME" envDefault:"marketdata-pipeline"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// DataConfig locates the dated directory tree the batch stages operate on.
//
// Layout: <root>/<date>/<venue>/books/<VENUE>.book_tops.<SYMBOL>.bin with
// merged output under <root>/<date>/mergedbooks and derived artifacts under
// per-venue bars/ and impactbase/ folders.
type DataConfig struct {
	Root string `env:"ROOT" envDefault:"/srv/marketdata"`
}

// PipelineConfig tunes the batch stages.
type PipelineConfig struct {
	// Workers bounds the number of per-symbol units of work running
	// concurrently. Units touch disjoint files, so they are safe to run
	// in parallel.
	Workers int `env:"WORKERS" envDefault:"4"`

	// CacheMaxEntries caps the decoded bar-series cache shared by the
	// correlation workers. Past the ceiling new entries are served but
	// not retained; nothing is evicted.
	CacheMaxEntries int `env:"CACHE_MAX_ENTRIES" envDefault:"256"`
}

// KafkaConfig represents the Kafka configuration for the merged-stream
// publisher.
type KafkaConfig struct {
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"merged-ticks"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Package config provides configuration loading and management for cubepipe.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete cubepipe configuration
type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Sources  SourcesConfig  `yaml:"sources"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Author   AuthorConfig   `yaml:"author"`
}

// PathsConfig configures the working directories and output files
type PathsConfig struct {
	// DatasetsDir holds the raw downloaded datasets
	DatasetsDir string `yaml:"datasets_dir"`
	// TablesDir holds the star-schema table CSVs
	TablesDir string `yaml:"tables_dir"`
	// CubeFile is the Turtle output of the cube stage
	CubeFile string `yaml:"cube_file"`
	// ProvenanceFile is the Turtle output of the provenance stage
	ProvenanceFile string `yaml:"provenance_file"`
	// CatalogFile is the Turtle output of the catalog stage
	CatalogFile string `yaml:"catalog_file"`
}

// SourcesConfig holds the URLs of the public source datasets
type SourcesConfig struct {
	CovidCasesCSV          string `yaml:"covid_cases_csv"`
	VaccinationStationsCSV string `yaml:"vaccination_stations_csv"`
	VaccineUsageCSV        string `yaml:"vaccine_usage_csv"`
	PopulationXLSX         string `yaml:"population_xlsx"`
	RegionsPage            string `yaml:"regions_page"`
	DistrictsPage          string `yaml:"districts_page"`
	VaccinesPage           string `yaml:"vaccines_page"`
	// WikiBase prefixes the relative district links scraped from the
	// districts page
	WikiBase string `yaml:"wiki_base"`
}

// HTTPConfig configures the download client
type HTTPConfig struct {
	// Timeout is the per-request timeout
	Timeout time.Duration `yaml:"timeout"`
	// UserAgent is sent with every request
	UserAgent string `yaml:"user_agent"`
}

// DatabaseConfig configures the Postgres connection for the load stage
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the connection string for the pgx stdlib driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode)
}

// NATSConfig configures the optional pipeline event stream
type NATSConfig struct {
	// URL is the NATS server URL (empty = events disabled)
	URL string `yaml:"url"`
	// Subject is the subject pipeline events are published on
	Subject string `yaml:"subject"`
}

// MetricsConfig configures the optional Prometheus listener
type MetricsConfig struct {
	// Enabled starts the /metrics HTTP listener during pipeline runs
	Enabled bool `yaml:"enabled"`
	// Addr is the listen address
	Addr string `yaml:"addr"`
}

// PipelineConfig configures pipeline execution
type PipelineConfig struct {
	// MaxAttempts is the per-task attempt limit
	MaxAttempts int `yaml:"max_attempts"`
	// BackoffBase is the delay before the first retry
	BackoffBase time.Duration `yaml:"backoff_base"`
	// BackoffMultiplier scales the delay after each failed attempt
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	// WatchDebounce coalesces bursts of file events in watch mode
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// AuthorConfig identifies the pipeline operator in the provenance and
// catalog documents
type AuthorConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			DatasetsDir:    "datasets",
			TablesDir:      "tables",
			CubeFile:       "data_cube.ttl",
			ProvenanceFile: "provenance_document.ttl",
			CatalogFile:    "data_catalog.ttl",
		},
		Sources: SourcesConfig{
			CovidCasesCSV:          "https://onemocneni-aktualne.mzcr.cz/api/v2/covid-19/kraj-okres-nakazeni-vyleceni-umrti.csv",
			VaccinationStationsCSV: "https://onemocneni-aktualne.mzcr.cz/api/v2/covid-19/prehled-ockovacich-mist.csv",
			VaccineUsageCSV:        "https://onemocneni-aktualne.mzcr.cz/api/v2/covid-19/ockovani-spotreba.csv",
			PopulationXLSX:         "https://www.czso.cz/documents/10180/165591265/13006222q414.xlsx/a5e1f2e7-7d66-4487-8c88-82766c04b185?version=1.1",
			RegionsPage:            "https://cs.wikipedia.org/wiki/CZ-NUTS",
			DistrictsPage:          "https://cs.wikipedia.org/wiki/Seznam_okres%C5%AF_v_%C4%8Cesku",
			VaccinesPage:           "https://cs.wikipedia.org/wiki/Vakc%C3%ADna_proti_covidu-19",
			WikiBase:               "https://cs.wikipedia.org",
		},
		HTTP: HTTPConfig{
			Timeout:   2 * time.Minute,
			UserAgent: "cubepipe/0.1",
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			Name:    "cubepipe",
			User:    "cubepipe",
			SSLMode: "disable",
		},
		NATS: NATSConfig{
			URL:     "",
			Subject: "cubepipe.pipeline.events",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9102",
		},
		Pipeline: PipelineConfig{
			MaxAttempts:       3,
			BackoffBase:       5 * time.Second,
			BackoffMultiplier: 2.0,
			WatchDebounce:     2 * time.Second,
		},
		Author: AuthorConfig{
			Name:  "cubepipe operator",
			Email: "operator@example.org",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Paths.DatasetsDir == "" {
		return fmt.Errorf("paths.datasets_dir is required")
	}
	if c.Paths.TablesDir == "" {
		return fmt.Errorf("paths.tables_dir is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port must be between 1 and 65535")
	}
	if c.Pipeline.MaxAttempts < 1 {
		return fmt.Errorf("pipeline.max_attempts must be at least 1")
	}
	if c.Pipeline.BackoffMultiplier < 1 {
		return fmt.Errorf("pipeline.backoff_multiplier must be at least 1")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file. The environment
// variable CUBEPIPE_DB_PASSWORD overrides the file's database password so
// credentials can stay out of checked-in configs.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if pw := os.Getenv("CUBEPIPE_DB_PASSWORD"); pw != "" {
		config.Database.Password = pw
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

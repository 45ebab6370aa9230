package common

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"dev.hon.one/sodola/util"
)

// PrometheusNamespace - Prometheus metrics namespace.
const PrometheusNamespace = "sodola"

// Defaults for settings absent from the config file and flags.
const (
	DefaultListenHost       = "0.0.0.0"
	DefaultListenPort       = 9118
	DefaultUsername         = "admin"
	DefaultPassword         = "admin"
	DefaultDiscoveryTimeout = 5 * time.Second
	DefaultPageTimeout      = 10 * time.Second
	DefaultInfluxDBBucket   = "sodola"
)

// Environment variables overriding secrets from the config file.
const (
	EnvUsername      = "SODOLA_USERNAME"
	EnvPassword      = "SODOLA_PASSWORD"
	EnvInfluxDBToken = "SODOLA_INFLUXDB_TOKEN"
)

// Config - The config.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Defaults Credential     `yaml:"defaults"`
	Scrape   ScrapeConfig   `yaml:"scrape"`
	Targets  []Target       `yaml:"targets"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
}

// HTTPConfig - Listener of the exporter service.
type HTTPConfig struct {
	ListenHost string `yaml:"listen_host"`
	ListenPort int    `yaml:"listen_port"`
}

// Endpoint - Listen address in host:port form.
func (c HTTPConfig) Endpoint() string {
	return fmt.Sprintf("%v:%v", c.ListenHost, c.ListenPort)
}

// ScrapeConfig - Scrape pipeline settings.
type ScrapeConfig struct {
	DiscoveryTimeout time.Duration `yaml:"discovery_timeout"`
	PageTimeout      time.Duration `yaml:"page_timeout"`
	// Run the heuristic extractor on pages without a dedicated extractor.
	GenericExtraction bool `yaml:"generic_extraction"`
	// Polling interval for continuous mode. Zero scrapes once (CLI) or disables the poller (service).
	Interval time.Duration `yaml:"interval"`
}

// InfluxDBConfig - Optional InfluxDB sink for continuous mode. Disabled when URL is empty.
type InfluxDBConfig struct {
	URL    string `yaml:"url"`
	Token  string `yaml:"token"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
}

// DefaultConfig - Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			ListenHost: DefaultListenHost,
			ListenPort: DefaultListenPort,
		},
		Defaults: Credential{
			Username: DefaultUsername,
			Password: DefaultPassword,
		},
		Scrape: ScrapeConfig{
			DiscoveryTimeout: DefaultDiscoveryTimeout,
			PageTimeout:      DefaultPageTimeout,
		},
		InfluxDB: InfluxDBConfig{
			Bucket: DefaultInfluxDBBucket,
		},
	}
}

// ReadConfig - Read a config file on top of the defaults, apply environment overrides and validate it.
// An empty path yields the defaults (plus environment overrides).
func ReadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path != "" {
		if err := util.ParseConfigFile(&config, path); err != nil {
			return Config{}, err
		}
	}
	config.applyEnvironment()
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return config, nil
}

// LoadConfig - Load configuration file into the global config and target table.
func LoadConfig(path string) error {
	log.WithFields(log.Fields{
		"config_path": path,
	}).Info("Loading config")

	config, err := ReadConfig(path)
	if err != nil {
		return err
	}
	GlobalConfig = config
	SetTargets(config.Targets)

	log.WithFields(log.Fields{
		"target_count": len(config.Targets),
	}).Info("Loaded config")
	return nil
}

func (c *Config) applyEnvironment() {
	if value := os.Getenv(EnvUsername); value != "" {
		c.Defaults.Username = value
	}
	if value := os.Getenv(EnvPassword); value != "" {
		c.Defaults.Password = value
	}
	if value := os.Getenv(EnvInfluxDBToken); value != "" {
		c.InfluxDB.Token = value
	}
}

// Validate - Check constraints and fill per-target defaults.
func (c *Config) Validate() error {
	if c.HTTP.ListenPort <= 0 || c.HTTP.ListenPort > 65535 {
		return fmt.Errorf("http.listen_port out of range: %v", c.HTTP.ListenPort)
	}
	if c.Scrape.DiscoveryTimeout <= 0 {
		return fmt.Errorf("scrape.discovery_timeout must be positive")
	}
	if c.Scrape.PageTimeout <= 0 {
		return fmt.Errorf("scrape.page_timeout must be positive")
	}
	if c.Scrape.Interval < 0 {
		return fmt.Errorf("scrape.interval must not be negative")
	}

	names := make(map[string]bool)
	for i := range c.Targets {
		target := &c.Targets[i]
		if target.Address == "" {
			return fmt.Errorf("targets[%d]: address is required", i)
		}
		if target.Name == "" {
			target.Name = target.Address
		}
		// Check for duplicate name
		if names[target.Name] {
			return fmt.Errorf("targets[%d]: duplicate name %q", i, target.Name)
		}
		names[target.Name] = true
		if target.Username == "" {
			target.Username = c.Defaults.Username
		}
		if target.Password == "" {
			target.Password = c.Defaults.Password
		}
	}
	return nil
}

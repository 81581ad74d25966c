package ledger

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Canonical keys for the required source columns. Config header overrides
// are keyed by these.
const (
	headerCustomerID   = "customer_id"
	headerCustomerName = "customer_name"
	headerAssetID      = "original_asset_id"
	headerMeterCode    = "original_meter_code"
)

var requiredHeaders = []string{headerCustomerID, headerCustomerName, headerAssetID, headerMeterCode}

var defaultHeaderTitles = map[string]string{
	headerCustomerID:   "Customer ID",
	headerCustomerName: "Customer Name",
	headerAssetID:      "Original Asset ID",
	headerMeterCode:    "Original Meter Code",
}

// SourceConfig locates the input asset ledger. Headers optionally remaps the
// required column titles, since ledgers from different issuing offices label
// them differently.
type SourceConfig struct {
	Path    string            `yaml:"path"`
	Headers map[string]string `yaml:"headers"`
}

// headerTitles returns the effective title for each required column.
func (s SourceConfig) headerTitles() map[string]string {
	titles := make(map[string]string, len(requiredHeaders))
	for _, key := range requiredHeaders {
		if t, ok := s.Headers[key]; ok && t != "" {
			titles[key] = t
		} else {
			titles[key] = defaultHeaderTitles[key]
		}
	}
	return titles
}

// OutputConfig locates the daily output ledger. Dir is the platform-resolved
// writable directory; the daily file name is FilePrefix + date + ".xlsx".
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	FilePrefix string `yaml:"file_prefix"`
}

type AuditConfig struct {
	// DB is the SQLite path for the mutation audit trail. Blank disables it.
	DB string `yaml:"db"`
}

type Config struct {
	Source     SourceConfig `yaml:"source"`
	Output     OutputConfig `yaml:"output"`
	Installers string       `yaml:"installers"`
	Audit      AuditConfig  `yaml:"audit"`
	Debug      bool         `yaml:"debug"`
}

// LoadConfig reads the YAML config at path, then applies .env and
// environment overrides. An empty path yields a config built from the
// environment and defaults alone.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env in the working directory is optional.
	_ = godotenv.Load()

	if v := os.Getenv("METER_LEDGER_SOURCE"); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv("METER_LEDGER_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("METER_LEDGER_AUDIT_DB"); v != "" {
		cfg.Audit.DB = v
	}
	if v := os.Getenv("METER_LEDGER_INSTALLERS"); v != "" {
		cfg.Installers = v
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Output.FilePrefix == "" {
		c.Output.FilePrefix = "replacements-"
	}
}

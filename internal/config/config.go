package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"climametrics/internal/comfort"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Comfort ComfortConfig `yaml:"comfort" envconfig:"COMFORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputDir   string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// ComfortConfig contains the indicator calculation defaults. Values here
// seed the engine parameters; CLI flags override them per invocation.
type ComfortConfig struct {
	ComfortTemp    float64  `yaml:"comfort_temp" envconfig:"COMFORT_TEMP" validate:"gt=0,lt=50"`
	BaseTemp       float64  `yaml:"base_temp" envconfig:"BASE_TEMP" validate:"gt=-20,lt=40"`
	Year           int      `yaml:"year" envconfig:"YEAR" validate:"gte=1900,lte=2200"`
	WattsPerPerson float64  `yaml:"watts_per_person" envconfig:"WATTS_PER_PERSON" validate:"gt=0"`
	Indicators     []string `yaml:"indicators" envconfig:"INDICATORS"`
	DateStart      string   `yaml:"date_start" envconfig:"DATE_START"`
	DateEnd        string   `yaml:"date_end" envconfig:"DATE_END"`
}

var validate = validator.New()

// Load loads configuration from environment variables and an optional
// YAML config file. Environment variables take precedence.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := findConfigFile(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("CLIMA", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML file values onto the config
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration values, including the indicator
// selection and date range which carry comfort-engine semantics.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	for _, name := range c.Comfort.Indicators {
		if _, err := comfort.ParseIndicator(name); err != nil {
			return err
		}
	}
	if c.Comfort.DateStart != "" || c.Comfort.DateEnd != "" {
		if _, err := comfort.ParseDateRange(c.Comfort.DateStart, c.Comfort.DateEnd); err != nil {
			return err
		}
	}
	return nil
}

// Parameters builds the engine parameters from the comfort section
func (c *Config) Parameters() (comfort.Parameters, error) {
	params := comfort.DefaultParameters()
	params.ComfortTemp = c.Comfort.ComfortTemp
	params.BaseTemp = c.Comfort.BaseTemp
	params.Year = c.Comfort.Year
	params.WattsPerPerson = c.Comfort.WattsPerPerson

	if len(c.Comfort.Indicators) > 0 {
		indicators := make([]comfort.Indicator, 0, len(c.Comfort.Indicators))
		for _, name := range c.Comfort.Indicators {
			ind, err := comfort.ParseIndicator(name)
			if err != nil {
				return comfort.Parameters{}, err
			}
			indicators = append(indicators, ind)
		}
		params.Indicators = indicators
	}

	if c.Comfort.DateStart != "" || c.Comfort.DateEnd != "" {
		dr, err := comfort.ParseDateRange(c.Comfort.DateStart, c.Comfort.DateEnd)
		if err != nil {
			return comfort.Parameters{}, err
		}
		params.Range = dr
	}

	return params, nil
}

// findConfigFile returns the first config file found in common locations
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/indicators.log",
		},
		Paths: PathsConfig{
			InputDir:   "data",
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
		Comfort: ComfortConfig{
			ComfortTemp:    comfort.DefaultComfortTemp,
			BaseTemp:       comfort.DefaultBaseTemp,
			Year:           comfort.DefaultYear,
			WattsPerPerson: comfort.DefaultWattsPerPerson,
		},
	}
}

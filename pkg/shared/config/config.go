package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Logger     Logger     `yaml:"logger"`
	HttpClient HttpClient `yaml:"http_client"`
	Search     Search     `yaml:"search"`
}

type Logger struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type HttpClient struct {
	Debug            bool            `yaml:"debug"`
	RetryAttempts    int             `yaml:"retry_attempts"`
	RetryWaitTime    Duration        `yaml:"retry_wait_time"`
	RetryMaxWaitTime Duration        `yaml:"retry_max_wait_time"`
	Timeout          Duration        `yaml:"timeout"`
	TlsClientConfig  TlsClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TlsClientConfig struct {
	Verify bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Search struct {
	BaseURL string `yaml:"base_url"`
	Branch  string `yaml:"branch"`
	Jobs    int    `yaml:"jobs"`
}

// Duration accepts Go duration strings ("4s", "1m30s") in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var value string
	if err := unmarshal(&value); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value, err)
	}
	*d = Duration(parsed)
	return nil
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the YAML config at path on top of the defaults.
// A missing file is not an error: the defaults are used as-is.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadYAML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", path, err)
	}

	return config, nil
}

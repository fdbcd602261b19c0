package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/identifying-codes/mics/pkg/api/mics"
	"github.com/identifying-codes/mics/pkg/graph"
	"sigs.k8s.io/yaml"
)

// RelPath is the config file location relative to the XDG config directories.
const RelPath = "mics/config.yaml"

var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Defaults returns the configuration used when no config file exists.
func Defaults() *mics.Config {
	return &mics.Config{
		FileType: string(graph.FileTypeEdgeList),
		Workers:  1,
		Output:   "text",
	}
}

// Find returns the first config file found in the XDG config directories.
func Find() (string, bool) {
	path, err := xdg.SearchConfigFile(RelPath)
	if err != nil {
		return "", false
	}
	return path, true
}

// DefaultPath returns where Init writes the config file by default.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, RelPath)
}

// LoadConfigFile reads a YAML config file on top of the defaults. Unknown keys
// are rejected.
func LoadConfigFile(file string) (*mics.Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	cfg := Defaults()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %v", file, err)
	}
	return cfg, nil
}

// Validate checks a fully merged configuration.
func Validate(cfg *mics.Config) error {
	if _, err := graph.ParseFileType(cfg.FileType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Timeout.Duration < 0 {
		return fmt.Errorf("%w: timeout must not be negative, got %v", ErrInvalidConfig, cfg.Timeout)
	}
	return nil
}

type ConfigInit struct {
	File   string
	Config *mics.Config
}

func NewConfigInit(file string) *ConfigInit {
	if file == "" {
		file = DefaultPath()
	}
	return &ConfigInit{
		File:   file,
		Config: Defaults(),
	}
}

// Init writes the config file, it never overwrites an existing one.
func (c *ConfigInit) Init() error {
	_, err := os.Stat(c.File)
	if !os.IsNotExist(err) {
		return fmt.Errorf("config file %s already exists", c.File)
	}
	data, err := yaml.Marshal(c.Config)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.File), 0770); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}
	return os.WriteFile(c.File, data, 0660)
}

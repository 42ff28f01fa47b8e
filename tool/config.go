package tool

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/moyoez/imgup/types"
)

var ConfigPath = "imgup.yaml" // be aware that it can be changed, default to ./imgup.yaml

func DefaultConfig() types.AppConfig {
	return types.AppConfig{
		Server:      "http://localhost:3000", // where the image server listens by default
		Mode:        types.ModeSingle,
		SizeLimitMB: 10, // server side limit, 413 above it
		Acknowledge: false,
		Listen:      ":3000",
	}
}

// LoadConfig reads path, creating it with defaults when it does not exist yet.
func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := DefaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := writeDefaultConfig(path, cfg); writeErr != nil {
				// not fatal, the defaults are still usable
				DefaultLogger.Warnf("Config file not found and default config could not be written: %v", writeErr)
			} else {
				DefaultLogger.Infof("Created new config file %s", path)
			}
			if err := ValidateConfig(&cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ApplyOverrides merges non-empty CLI flags into cfg and validates the result.
func ApplyOverrides(cfg *types.AppConfig, flags types.Config) error {
	if flags.Server != "" {
		cfg.Server = flags.Server
	}
	if flags.Mode != "" {
		mode, err := types.ParseMode(flags.Mode)
		if err != nil {
			return err
		}
		if mode != cfg.Mode {
			// a field name from the file belongs to the old mode
			cfg.FieldName = ""
		}
		cfg.Mode = mode
	}
	if flags.Timeout != "" {
		cfg.Timeout = flags.Timeout
	}
	if flags.NotifySocket != "" {
		cfg.NotifySocket = flags.NotifySocket
	}
	if flags.Listen != "" {
		cfg.Listen = flags.Listen
	}
	return ValidateConfig(cfg)
}

// ValidateConfig normalizes mode and field name and checks the timeout parses.
func ValidateConfig(cfg *types.AppConfig) error {
	mode, err := types.ParseMode(string(cfg.Mode))
	if err != nil {
		return err
	}
	cfg.Mode = mode
	if strings.TrimSpace(cfg.FieldName) == "" {
		cfg.FieldName = mode.FieldName()
	}
	if cfg.Server == "" {
		return fmt.Errorf("server must not be empty")
	}
	if cfg.SizeLimitMB <= 0 {
		cfg.SizeLimitMB = 10
	}
	if _, err := ParseTimeout(cfg.Timeout); err != nil {
		return err
	}
	return nil
}

// ParseTimeout returns 0 for an empty string, which the HTTP client treats as no timeout.
func ParseTimeout(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %v", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", s)
	}
	return d, nil
}

func writeDefaultConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

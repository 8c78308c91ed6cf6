package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateImport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStorage() error {
	if len(c.Storage.Roots) == 0 {
		return errors.New("storage.roots must contain at least one root")
	}
	seen := make(map[string]struct{}, len(c.Storage.Roots))
	for i, root := range c.Storage.Roots {
		if root.Name == "" {
			return fmt.Errorf("storage.roots[%d].name must be set", i)
		}
		if _, ok := seen[root.Name]; ok {
			return fmt.Errorf("storage.roots: duplicate root name %q", root.Name)
		}
		seen[root.Name] = struct{}{}
	}
	if _, ok := seen[c.Storage.ImportRoot]; !ok {
		return fmt.Errorf("storage.import_root %q does not name a configured root", c.Storage.ImportRoot)
	}
	return nil
}

func (c *Config) validateImport() error {
	if c.Import.TimeoutSeconds <= 0 {
		return errors.New("import.timeout_seconds must be positive")
	}
	if c.Import.MinConfidence < 0 || c.Import.MinConfidence > 1 {
		return errors.New("import.min_confidence must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

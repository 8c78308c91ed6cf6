package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeImport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("INSTINCT_HOME"); ok && strings.TrimSpace(value) != "" {
		c.Paths.HomeDir = value
	}
	c.Paths.HomeDir = strings.TrimSpace(c.Paths.HomeDir)
	if c.Paths.HomeDir == "" {
		c.Paths.HomeDir = defaultHomeDir
	}
	var err error
	if c.Paths.HomeDir, err = expandPath(c.Paths.HomeDir); err != nil {
		return fmt.Errorf("paths.home_dir: %w", err)
	}
	if c.Paths.LogDir, err = resolveUnder(c.Paths.HomeDir, strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ObservationsFile) == "" {
		c.Paths.ObservationsFile = defaultObservationsFile
	}
	if c.Paths.ObservationsFile, err = resolveUnder(c.Paths.HomeDir, strings.TrimSpace(c.Paths.ObservationsFile)); err != nil {
		return fmt.Errorf("paths.observations_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeStorage() error {
	if len(c.Storage.Roots) == 0 {
		c.Storage.Roots = defaultRoots()
	}
	for i := range c.Storage.Roots {
		root := &c.Storage.Roots[i]
		root.Name = strings.TrimSpace(root.Name)
		dir := strings.TrimSpace(root.Dir)
		if dir == "" {
			return fmt.Errorf("storage.roots[%d] (%s): dir must be set", i, root.Name)
		}
		var err error
		if root.Dir, err = resolveUnder(c.Paths.HomeDir, dir); err != nil {
			return fmt.Errorf("storage.roots[%d].dir: %w", i, err)
		}
		// Empty patterns are left for the loader's defaults.
		var patterns []string
		for _, p := range root.Patterns {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
		root.Patterns = patterns
	}
	c.Storage.ImportRoot = strings.TrimSpace(c.Storage.ImportRoot)
	if c.Storage.ImportRoot == "" {
		c.Storage.ImportRoot = defaultImportRoot
	}
	return nil
}

func (c *Config) normalizeImport() {
	c.Import.UserAgent = strings.TrimSpace(c.Import.UserAgent)
	if c.Import.UserAgent == "" {
		c.Import.UserAgent = defaultImportUserAgent
	}
	if c.Import.TimeoutSeconds == 0 {
		c.Import.TimeoutSeconds = defaultImportTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

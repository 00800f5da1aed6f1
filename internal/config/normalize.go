package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.Paths.RootDir, err = expandPath(c.Paths.RootDir); err != nil {
		return fmt.Errorf("paths.root_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.UsersCSV) != "" {
		if c.Paths.UsersCSV, err = expandPath(c.Paths.UsersCSV); err != nil {
			return fmt.Errorf("paths.users_csv: %w", err)
		}
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		c.Database.Path = defaultDatabasePath
	}
	if c.Database.Path, err = expandPath(c.Database.Path); err != nil {
		return fmt.Errorf("database.path: %w", err)
	}

	situations := c.Pipeline.Situations[:0]
	for _, situation := range c.Pipeline.Situations {
		if trimmed := strings.TrimSpace(situation); trimmed != "" {
			situations = append(situations, trimmed)
		}
	}
	if len(situations) == 0 {
		situations = append([]string(nil), defaultSituations...)
	}
	c.Pipeline.Situations = situations

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

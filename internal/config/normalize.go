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
	if err := c.normalizeRegistry(); err != nil {
		return err
	}
	if err := c.normalizeDetector(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeLogging()
	c.normalizeNotifications()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRegistry() error {
	c.Registry.URL = strings.TrimSpace(c.Registry.URL)
	if c.Registry.URL == "" {
		if value, ok := os.LookupEnv("TVHEADEND_URL"); ok {
			c.Registry.URL = strings.TrimSpace(value)
		}
	}
	if c.Registry.URL == "" {
		c.Registry.URL = defaultRegistryURL
	}
	c.Registry.URL = strings.TrimRight(c.Registry.URL, "/")

	c.Registry.Username = strings.TrimSpace(c.Registry.Username)
	if c.Registry.Username == "" {
		if value, ok := os.LookupEnv("TVHEADEND_USER"); ok {
			c.Registry.Username = strings.TrimSpace(value)
		}
	}
	c.Registry.Password = strings.TrimSpace(c.Registry.Password)
	if c.Registry.Password == "" {
		if value, ok := os.LookupEnv("TVHEADEND_PASS"); ok {
			c.Registry.Password = strings.TrimSpace(value)
		}
	}
	if c.Registry.TimeoutSeconds <= 0 {
		c.Registry.TimeoutSeconds = defaultRegistryTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeDetector() error {
	c.Detector.Binary = strings.TrimSpace(c.Detector.Binary)
	if c.Detector.Binary == "" {
		c.Detector.Binary = defaultDetectorBinary
	}
	c.Detector.INI = strings.TrimSpace(c.Detector.INI)
	if c.Detector.INI != "" {
		expanded, err := expandPath(c.Detector.INI)
		if err != nil {
			return fmt.Errorf("detector.ini: %w", err)
		}
		c.Detector.INI = expanded
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Probe.Binary = strings.TrimSpace(c.Probe.Binary)
	if c.Probe.Binary == "" {
		c.Probe.Binary = defaultProbeBinary
	}
	c.Encoder.Binary = strings.TrimSpace(c.Encoder.Binary)
	if c.Encoder.Binary == "" {
		c.Encoder.Binary = defaultEncoderBinary
	}
	if c.Encoder.BitrateFactor <= 0 {
		c.Encoder.BitrateFactor = defaultBitrateFactor
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

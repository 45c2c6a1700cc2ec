package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRegistry(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	return ensurePositiveMap(map[string]int{
		"registry.timeout_seconds":      c.Registry.TimeoutSeconds,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	})
}

func (c *Config) validateRegistry() error {
	if strings.TrimSpace(c.Registry.URL) == "" {
		return errors.New("registry.url must be set (or set TVHEADEND_URL)")
	}
	parsed, err := url.Parse(c.Registry.URL)
	if err != nil {
		return fmt.Errorf("registry.url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("registry.url must use http or https, got %q", c.Registry.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("registry.url missing host: %q", c.Registry.URL)
	}
	if c.Registry.Password != "" && c.Registry.Username == "" {
		return errors.New("registry.username must be set when registry.password is set")
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Detector.Binary == "" {
		return errors.New("detector.binary must be set")
	}
	if c.Probe.Binary == "" {
		return errors.New("probe.binary must be set")
	}
	if c.Encoder.Binary == "" {
		return errors.New("encoder.binary must be set")
	}
	return nil
}

func (c *Config) validateEncoder() error {
	if c.Encoder.BitrateFactor <= 0 || c.Encoder.BitrateFactor > 1 {
		return errors.New("encoder.bitrate_factor must be between 0 and 1")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

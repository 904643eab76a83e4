package config

import "fmt"

type Config struct {
	Env            string
	TelegramToken  string
	ConfigDir      string
	FilesDir       string
	HTTPTimeoutSec int
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.ConfigDir == "" {
		return fmt.Errorf("CONFIG_DIR must not be empty")
	}
	if c.FilesDir == "" {
		return fmt.Errorf("FILES_DIR must not be empty")
	}
	if c.HTTPTimeoutSec <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SEC must be positive, got %d", c.HTTPTimeoutSec)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/ratelab/greencast/internal/config"
)

type envConfig struct {
	Env            string `env:"ENV" envDefault:"production"`
	TelegramToken  string `env:"TELEGRAM_BOT_TOKEN,required"`
	ConfigDir      string `env:"CONFIG_DIR" envDefault:"config"`
	FilesDir       string `env:"FILES_DIR" envDefault:"files"`
	HTTPTimeoutSec int    `env:"HTTP_TIMEOUT_SEC" envDefault:"30"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:            raw.Env,
		TelegramToken:  raw.TelegramToken,
		ConfigDir:      raw.ConfigDir,
		FilesDir:       raw.FilesDir,
		HTTPTimeoutSec: raw.HTTPTimeoutSec,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

package repository

import (
	"fmt"

	"github.com/ratelab/greencast/internal/config"
	"github.com/ratelab/greencast/internal/repository"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (repository.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := NewFileRepository(cfg.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open config store: %w", err)
		}
		if err := repo.SeedDefaults(); err != nil {
			return nil, fmt.Errorf("failed to seed default config documents: %w", err)
		}
		return repo, nil
	})
}

package bot

import (
	"github.com/samber/do/v2"

	"github.com/ratelab/greencast/internal/broadcast"
	"github.com/ratelab/greencast/internal/chat"
	"github.com/ratelab/greencast/internal/config"
	"github.com/ratelab/greencast/internal/greenapi"
	"github.com/ratelab/greencast/internal/repository"
	"github.com/ratelab/greencast/internal/sheet"
	"github.com/ratelab/greencast/internal/templates"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		transport := do.MustInvoke[chat.Transport](i)
		repo := do.MustInvoke[repository.Repository](i)
		api := do.MustInvoke[greenapi.Client](i)
		extractor := do.MustInvoke[sheet.Extractor](i)

		store := templates.NewStore(repo)
		engine := broadcast.NewEngine(repo, api)
		sessions := broadcast.NewMemorySessionStore()
		return NewManager(cfg, transport, repo, store, extractor, api, engine, sessions), nil
	})
}

package telegram

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/ratelab/greencast/internal/chat"
	"github.com/ratelab/greencast/internal/config"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (chat.Transport, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewBot(cfg.TelegramToken, time.Duration(cfg.HTTPTimeoutSec)*time.Second)
	})
}

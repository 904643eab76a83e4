package greenapi

import (
	"time"

	"github.com/ratelab/greencast/internal/config"
	greenapipkg "github.com/ratelab/greencast/internal/greenapi"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (greenapipkg.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewHTTPClient(time.Duration(cfg.HTTPTimeoutSec) * time.Second), nil
	})
}

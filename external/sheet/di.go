package sheet

import (
	sheetpkg "github.com/ratelab/greencast/internal/sheet"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (sheetpkg.Extractor, error) {
		return NewExcelExtractor(), nil
	})
}

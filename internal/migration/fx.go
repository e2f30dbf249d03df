package migration

import (
	"context"

	"github.com/smallbiznis/landedcost/internal/config"
	dutydomain "github.com/smallbiznis/landedcost/internal/dutycategory/domain"
	"github.com/smallbiznis/landedcost/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, duty dutydomain.Service, settings *config.CatalogSettingsHolder, log *zap.Logger) error {
		if err := Run(conn); err != nil {
			return err
		}
		return seed.EnsureDutyCategories(context.Background(), duty, settings.Get().DutyPresets, log)
	}),
)

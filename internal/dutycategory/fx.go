package dutycategory

import (
	"github.com/smallbiznis/landedcost/internal/dutycategory/repository"
	"github.com/smallbiznis/landedcost/internal/dutycategory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dutycategory.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)

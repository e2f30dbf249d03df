package auth

import (
	"github.com/smallbiznis/landedcost/internal/auth/oauth"
	"github.com/smallbiznis/landedcost/internal/auth/repository"
	"github.com/smallbiznis/landedcost/internal/auth/service"
	"github.com/smallbiznis/landedcost/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
	fx.Provide(oauth.NewGoogle),
	session.Module,
)

package di

import (
	"go.uber.org/fx"

	"github.com/familybank/allowance/internal/adapter/ntfy"
	"github.com/familybank/allowance/internal/app"
	"github.com/familybank/allowance/internal/config"
	"github.com/familybank/allowance/internal/logger"
	"github.com/familybank/allowance/internal/pkg/auth"
	"github.com/familybank/allowance/internal/pkg/clock"
	"github.com/familybank/allowance/internal/server/http/router"
	"github.com/familybank/allowance/internal/storage/postgres"
	"github.com/familybank/allowance/internal/usecase"
)

// Module assembles the application graph; opts may replace individual nodes.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		clock.Module,
		auth.Module,
		postgres.Module,
		ntfy.Module,
		usecase.Module,
		fx.Provide(func(f *app.AllowanceFacade) router.Facade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

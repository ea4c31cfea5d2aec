package auth

import (
	"go.uber.org/fx"

	"github.com/familybank/allowance/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(func() PasswordHasher { return NewBcryptHasher(0) }),
	fx.Provide(newTokenStrategy),
)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) TokenStrategy {
	return NewSessions(p.Config.SessionSecret, p.Config.SessionTTL)
}

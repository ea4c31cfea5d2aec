package usecase

import (
	"go.uber.org/fx"

	"github.com/familybank/allowance/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(func(cfg *config.Config) Rates {
		return Rates{SavingsAPY: cfg.SavingsRate, CreditAPR: cfg.CreditRate}
	}),
	fx.Provide(
		NewAuthUseCase,
		NewLedgerUseCase,
		NewUserUseCase,
		NewWithdrawalUseCase,
	),
)

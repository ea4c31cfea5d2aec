package ntfy

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/familybank/allowance/internal/config"
	"github.com/familybank/allowance/internal/usecase"
)

// Module exposes the notification client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (usecase.Notifier, error) {
	return NewClient(p.Config.NtfyServer, p.Config.NtfyTopic, p.Logger)
}

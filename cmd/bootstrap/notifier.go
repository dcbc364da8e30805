package bootstrap

import (
	"context"

	"facility-booking/internal/infra/notify"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewPublisher,
		fx.Annotate(
			notify.NewAMQPNotifier,
			fx.As(new(commands.Notifier)),
		),
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (*notify.Publisher, error) {
	pub, err := notify.NewPublisher(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})

	return pub, nil
}

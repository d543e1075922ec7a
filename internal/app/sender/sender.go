// Package sender собирает приложение доставки уведомлений: потребитель
// очереди событий активности, превращающий события в записи уведомлений.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/social-network/internal/config"
	"github.com/magabrotheeeer/social-network/internal/rabbitmq"
	notificationservice "github.com/magabrotheeeer/social-network/internal/services/notification"
	"github.com/magabrotheeeer/social-network/internal/storage/repository"
)

// App инкапсулирует соединения потребителя событий активности.
type App struct {
	conn                *amqp.Connection
	ch                  *amqp.Channel
	notificationService *notificationservice.NotificationService
	logger              *slog.Logger
}

// New собирает приложение: хранилище, подключение к брокеру и сервис уведомлений.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	conn, err := rabbitmq.Connect(cfg.RabbitConnectionString, cfg.RabbitMaxRetries, cfg.RabbitRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	notificationService := notificationservice.NewNotificationService(db, logger)

	return &App{
		conn:                conn,
		ch:                  ch,
		notificationService: notificationService,
		logger:              logger,
	}, nil
}

// Run запускает потребителя очереди активности и ждет отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.ActivityQueue, a.notificationService.HandleActivityMessage)
	if err != nil {
		a.logger.Error("failed to start activity queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notification sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}

// Package socialnetwork собирает основное HTTP-приложение: хранилище,
// миграции, кеш, брокер сообщений, SMTP-транспорт и все сервисы.
package socialnetwork

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/social-network/internal/cache"
	"github.com/magabrotheeeer/social-network/internal/config"
	"github.com/magabrotheeeer/social-network/internal/lib/jwt"
	"github.com/magabrotheeeer/social-network/internal/lib/smtp"
	"github.com/magabrotheeeer/social-network/internal/migrations"
	"github.com/magabrotheeeer/social-network/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/social-network/internal/services/auth"
	friendservice "github.com/magabrotheeeer/social-network/internal/services/friend"
	notificationservice "github.com/magabrotheeeer/social-network/internal/services/notification"
	postservice "github.com/magabrotheeeer/social-network/internal/services/post"
	senderservice "github.com/magabrotheeeer/social-network/internal/services/sender"
	userservice "github.com/magabrotheeeer/social-network/internal/services/user"
	"github.com/magabrotheeeer/social-network/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и внешние соединения основного приложения.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// New собирает приложение: подключения, миграции, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitConnectionString, cfg.RabbitMaxRetries, cfg.RabbitRetryDelay)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn)
	if err != nil {
		rabbitConn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewActivityPublisher(rabbitCh)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	transport := smtp.NewTransport(cfg, logger)
	sender := senderservice.NewSenderService(transport, logger)

	authSvc := authservice.NewAuthService(db, jwtMaker, sender, cfg.AppURL, logger)
	postSvc := postservice.NewPostService(db, publisher, logger)
	userSvc := userservice.NewUserService(db, cacheRedis, logger)
	friendSvc := friendservice.NewFriendService(db, publisher, logger)
	notificationSvc := notificationservice.NewNotificationService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, authSvc, postSvc, userSvc, friendSvc, notificationSvc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if chErr := a.rabbitCh.Close(); chErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", chErr))
		}
		if connErr := a.rabbitConn.Close(); connErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", connErr))
		}
		a.db.DB.Close()
		return err
	}
}

// Package socialnetwork предоставляет маршруты для основного приложения.
package socialnetwork

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/social-network/internal/config"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/auth/forgetpassword"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/auth/resetpassword"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/auth/updatepassword"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/auth/verifyemail"
	commentcreate "github.com/magabrotheeeer/social-network/internal/http/handlers/comment/create"
	commentlike "github.com/magabrotheeeer/social-network/internal/http/handlers/comment/like"
	commentlist "github.com/magabrotheeeer/social-network/internal/http/handlers/comment/list"
	friendaccept "github.com/magabrotheeeer/social-network/internal/http/handlers/friend/accept"
	frienddecline "github.com/magabrotheeeer/social-network/internal/http/handlers/friend/decline"
	friendlist "github.com/magabrotheeeer/social-network/internal/http/handlers/friend/list"
	friendremove "github.com/magabrotheeeer/social-network/internal/http/handlers/friend/remove"
	friendrequest "github.com/magabrotheeeer/social-network/internal/http/handlers/friend/request"
	friendrequests "github.com/magabrotheeeer/social-network/internal/http/handlers/friend/requests"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/health"
	notificationlist "github.com/magabrotheeeer/social-network/internal/http/handlers/notification/list"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/notification/markread"
	postcreate "github.com/magabrotheeeer/social-network/internal/http/handlers/post/create"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/post/favorite"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/post/favorites"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/post/feed"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/post/like"
	postread "github.com/magabrotheeeer/social-network/internal/http/handlers/post/read"
	postremove "github.com/magabrotheeeer/social-network/internal/http/handlers/post/remove"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/post/save"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/post/saved"
	"github.com/magabrotheeeer/social-network/internal/http/handlers/user/profile"
	userremove "github.com/magabrotheeeer/social-network/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/social-network/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/social-network/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-network/internal/models"
	authservice "github.com/magabrotheeeer/social-network/internal/services/auth"
	friendservice "github.com/magabrotheeeer/social-network/internal/services/friend"
	notificationservice "github.com/magabrotheeeer/social-network/internal/services/notification"
	postservice "github.com/magabrotheeeer/social-network/internal/services/post"
	userservice "github.com/magabrotheeeer/social-network/internal/services/user"
	"github.com/magabrotheeeer/social-network/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	storage *repository.Storage,
	authSvc *authservice.AuthService,
	postSvc *postservice.PostService,
	userSvc *userservice.UserService,
	friendSvc *friendservice.FriendService,
	notificationSvc *notificationservice.NotificationService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/signup", signup.New(logger, authSvc, cfg).ServeHTTP)
	r.Post("/login", login.New(logger, authSvc, cfg).ServeHTTP)
	r.Get("/logout", logout.New(logger).ServeHTTP)
	r.Post("/forgetpassword", forgetpassword.New(logger, authSvc).ServeHTTP)
	r.Patch("/resetpassword/{token}", resetpassword.New(logger, authSvc, cfg).ServeHTTP)
	r.Get("/verifyemail/{code}", verifyemail.New(logger, authSvc, cfg).ServeHTTP)
	r.Get("/health", health.New(logger, storage).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authSvc, logger))

		r.Patch("/updatepassword", updatepassword.New(logger, authSvc, cfg).ServeHTTP)

		r.Post("/posts", postcreate.New(logger, postSvc).ServeHTTP)
		r.Get("/posts", feed.New(logger, postSvc).ServeHTTP)
		r.Get("/posts/saved", saved.New(logger, postSvc).ServeHTTP)
		r.Get("/posts/favorites", favorites.New(logger, postSvc).ServeHTTP)
		r.Get("/posts/{id}", postread.New(logger, postSvc).ServeHTTP)
		r.Delete("/posts/{id}", postremove.New(logger, postSvc).ServeHTTP)
		r.Post("/posts/{id}/like", like.New(logger, postSvc).ServeHTTP)
		r.Delete("/posts/{id}/like", like.New(logger, postSvc).ServeHTTP)
		r.Post("/posts/{id}/save", save.New(logger, postSvc).ServeHTTP)
		r.Delete("/posts/{id}/save", save.New(logger, postSvc).ServeHTTP)
		r.Post("/posts/{id}/favorite", favorite.New(logger, postSvc).ServeHTTP)
		r.Delete("/posts/{id}/favorite", favorite.New(logger, postSvc).ServeHTTP)
		r.Post("/posts/{id}/comments", commentcreate.New(logger, postSvc).ServeHTTP)
		r.Get("/posts/{id}/comments", commentlist.New(logger, postSvc).ServeHTTP)
		r.Post("/comments/{id}/like", commentlike.New(logger, postSvc).ServeHTTP)
		r.Delete("/comments/{id}/like", commentlike.New(logger, postSvc).ServeHTTP)

		r.Post("/friends/requests", friendrequest.New(logger, friendSvc).ServeHTTP)
		r.Get("/friends/requests", friendrequests.New(logger, friendSvc).ServeHTTP)
		r.Post("/friends/requests/{id}/accept", friendaccept.New(logger, friendSvc).ServeHTTP)
		r.Delete("/friends/requests/{id}", frienddecline.New(logger, friendSvc).ServeHTTP)
		r.Get("/friends", friendlist.New(logger, friendSvc).ServeHTTP)
		r.Delete("/friends/{id}", friendremove.New(logger, friendSvc).ServeHTTP)

		r.Get("/notifications", notificationlist.New(logger, notificationSvc).ServeHTTP)
		r.Patch("/notifications/read", markread.New(logger, notificationSvc).ServeHTTP)

		r.Get("/users/{id}", profile.New(logger, userSvc).ServeHTTP)
		r.Patch("/users/me", userupdate.New(logger, userSvc).ServeHTTP)

		// Административные маршруты
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRoles(logger, models.RoleAdmin))
			r.Delete("/users/{id}", userremove.New(logger, userSvc).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

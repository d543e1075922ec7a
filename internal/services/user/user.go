// Package services содержит бизнес-логику профилей пользователей с кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/social-network/internal/models"
)

// profileCacheTTL время жизни профиля в кеше.
const profileCacheTTL = 5 * time.Minute

// UserRepository определяет методы для работы с профилями в хранилище.
type UserRepository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// UpdateProfile обновляет публичные поля профиля.
	UpdateProfile(ctx context.Context, user models.User) error
	// DeleteUser удаляет пользователя вместе со связанными записями.
	DeleteUser(ctx context.Context, userUID string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// UserService реализует чтение и обновление профилей, включая кеширование.
type UserService struct {
	repo  UserRepository
	cache Cache
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, cache Cache, log *slog.Logger) *UserService {
	return &UserService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Profile возвращает профиль пользователя, используя кеш или репозиторий.
func (s *UserService) Profile(ctx context.Context, userUID string) (*models.User, error) {
	var result *models.User
	cacheKey := fmt.Sprintf("user:%s", userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read profile from cache", slog.String("key", cacheKey),
			slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, profileCacheTTL); err != nil {
		s.log.Warn("failed to cache profile", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// UpdateProfile обновляет профиль и инвалидирует кеш.
func (s *UserService) UpdateProfile(ctx context.Context, user models.User) error {
	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return err
	}
	s.log.Info("updated user profile", slog.String("uid", user.ID))

	cacheKey := fmt.Sprintf("user:%s", user.ID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("key", cacheKey),
			slog.Any("err", err))
	}
	return nil
}

// Delete удаляет пользователя и инвалидирует кеш профиля.
func (s *UserService) Delete(ctx context.Context, userUID string) error {
	if err := s.repo.DeleteUser(ctx, userUID); err != nil {
		return err
	}
	s.log.Info("deleted user", slog.String("uid", userUID))

	cacheKey := fmt.Sprintf("user:%s", userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("key", cacheKey),
			slog.Any("err", err))
	}
	return nil
}

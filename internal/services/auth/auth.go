// Package services содержит логику бизнес-уровня для аутентификации:
// регистрацию, вход, подтверждение почты, сброс и смену пароля,
// а также разрешение пользователя по сессионному токену.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/social-network/internal/lib/jwt"
	"github.com/magabrotheeeer/social-network/internal/lib/onetime"
	"github.com/magabrotheeeer/social-network/internal/lib/password"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
	"github.com/magabrotheeeer/social-network/internal/storage/repository"
)

// Операционные ошибки аутентификации. Обработчики переводят их
// в HTTP-статусы, текст безопасен для показа пользователю.
var (
	// ErrUserExists такой email или username уже занят.
	ErrUserExists = errors.New("user with such email or username already exists")
	// ErrInvalidCredentials неверная пара идентификатор/пароль.
	// Намеренно не различает "нет такого пользователя" и "неверный пароль".
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotVerified почта учетной записи еще не подтверждена.
	ErrNotVerified = errors.New("email is not verified yet")
	// ErrUserNotFound пользователь по идентификатору не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidOrExpiredToken токен сброса пароля не совпал или истек.
	ErrInvalidOrExpiredToken = errors.New("wrong token or token expired")
	// ErrInvalidLink код подтверждения почты не совпал.
	ErrInvalidLink = errors.New("invalid registration link")
	// ErrWrongPassword текущий пароль не подошел при смене пароля.
	ErrWrongPassword = errors.New("your current password is wrong")
	// ErrEmailDelivery письмо отправить не удалось.
	ErrEmailDelivery = errors.New("there was an error sending the email, try again later")
	// ErrUserGone пользователь из валидного токена больше не существует.
	ErrUserGone = errors.New("the user belonging to this token does no longer exist")
)

// UserRepository описывает контракт хранилища учетных записей.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByIdentifier возвращает пользователя по email или username.
	GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// SetResetToken записывает дайджест токена сброса и срок действия.
	SetResetToken(ctx context.Context, userUID, digest string, expires time.Time) error
	// ClearResetToken очищает поля сброса пароля.
	ClearResetToken(ctx context.Context, userUID string) error
	// GetUserByResetDigest ищет пользователя по неистекшему дайджесту сброса.
	GetUserByResetDigest(ctx context.Context, digest string) (*models.User, error)
	// GetUserByVerificationDigest ищет пользователя по дайджесту кода подтверждения.
	GetUserByVerificationDigest(ctx context.Context, digest string) (*models.User, error)
	// UpdatePassword записывает новый хэш и очищает поля сброса.
	UpdatePassword(ctx context.Context, userUID, passwordHash string) error
	// ActivateUser включает учетную запись и очищает код подтверждения.
	ActivateUser(ctx context.Context, userUID string) error
}

// MailSender описывает исходящую доставку писем со ссылками.
type MailSender interface {
	SendVerificationEmail(to, link string) error
	SendPasswordResetEmail(to, link string) error
}

// AuthService отвечает за пять потоков аутентификации и проверку сессий.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	sender   MailSender
	appURL   string
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, sender MailSender, appURL string, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		sender:   sender,
		appURL:   appURL,
		log:      log,
	}
}

// Signup создает неактивного пользователя, отправляет письмо со ссылкой
// подтверждения и сразу выдает сессионный токен.
//
// Сбой отправки письма не откатывает регистрацию: пользователь сможет
// перезапросить письмо повторным входом.
func (s *AuthService) Signup(ctx context.Context, username, email, rawPassword string) (string, *models.User, error) {
	const op = "auth.Signup"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	rawCode, digest, err := onetime.New()
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:            email,
		Username:         username,
		PasswordHash:     hashed,
		Role:             models.RoleUser,
		VerificationCode: &digest,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return "", nil, ErrUserExists
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	user.ID = uid

	link := s.appURL + "/verifyemail/" + rawCode
	if err := s.sender.SendVerificationEmail(email, link); err != nil {
		s.log.Error("failed to send verification email", sl.Err(err),
			slog.String("username", username))
	}

	token, err := s.jwtMaker.GenerateToken(uid)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, &user, nil
}

// Login проверяет пароль по email или username и выдает сессионный токен.
// Для неподтвержденной почты возвращает ErrNotVerified вместе с пользователем,
// чтобы обработчик мог подсказать адрес для повторной проверки.
func (s *AuthService) Login(ctx context.Context, identifier, rawPassword string) (string, *models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.Active {
		return "", user, ErrNotVerified
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// ForgetPassword генерирует токен сброса, сохраняет его дайджест со сроком
// действия и отправляет ссылку на почту. Если письмо отправить не удалось,
// поля сброса очищаются, чтобы в базе не остался живой токен без письма.
func (s *AuthService) ForgetPassword(ctx context.Context, identifier string) error {
	const op = "auth.ForgetPassword"

	user, err := s.users.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	rawToken, digest, err := onetime.New()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	expires := time.Now().Add(onetime.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, digest, expires); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	link := s.appURL + "/resetpassword/" + rawToken
	if err := s.sender.SendPasswordResetEmail(user.Email, link); err != nil {
		s.log.Error("failed to send reset email, rolling back reset token", sl.Err(err),
			slog.String("username", user.Username))
		if clearErr := s.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.log.Error("failed to roll back reset token", sl.Err(clearErr))
		}
		return ErrEmailDelivery
	}
	return nil
}

// ResetPassword меняет пароль по сырому токену из ссылки.
// Совпадение ищется по дайджесту с еще не истекшим сроком действия.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) (string, *models.User, error) {
	const op = "auth.ResetPassword"

	user, err := s.users.GetUserByResetDigest(ctx, onetime.Digest(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidOrExpiredToken
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// VerifyEmail активирует учетную запись по коду из письма.
// Дайджест кода очищается, так что ссылка срабатывает ровно один раз.
func (s *AuthService) VerifyEmail(ctx context.Context, rawCode string) (string, *models.User, error) {
	const op = "auth.VerifyEmail"

	user, err := s.users.GetUserByVerificationDigest(ctx, onetime.Digest(rawCode))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidLink
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.ActivateUser(ctx, user.ID); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	user.Active = true

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// UpdatePassword меняет пароль аутентифицированного пользователя,
// предварительно проверяя текущий пароль.
func (s *AuthService) UpdatePassword(ctx context.Context, userUID, oldPassword, newPassword string) (string, *models.User, error) {
	const op = "auth.UpdatePassword"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, oldPassword); err != nil {
		return "", nil, ErrWrongPassword
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// Authenticate проверяет сессионный токен и возвращает актуального
// пользователя из хранилища. Токены, выданные до смены пароля,
// отклоняются как невалидные.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*models.User, error) {
	const op = "auth.Authenticate"

	claims, err := s.jwtMaker.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserGone
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if user.PasswordChangedAt != nil && claims.IssuedAt != nil &&
		claims.IssuedAt.Time.Before(*user.PasswordChangedAt) {
		return nil, fmt.Errorf("%s: token issued before password change: %w", op, jwt.ErrTokenInvalid)
	}
	return user, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"imagedrop/api/internal/ids"
	"imagedrop/api/internal/models"
	"imagedrop/api/internal/repository"
	"imagedrop/api/internal/security"
)

const verificationTokenBytes = 40

type AuthService struct {
	users        UserStore
	secret       string
	tokenTTL     time.Duration
	storeTimeout time.Duration
	log          zerolog.Logger
}

func NewAuthService(users UserStore, secret string, tokenTTL, storeTimeout time.Duration, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:        users,
		secret:       secret,
		tokenTTL:     tokenTTL,
		storeTimeout: storeTimeout,
		log:          log,
	}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Register creates a new user. The first account ever registered becomes
// admin, all later ones are plain users. No session is issued; login is a
// separate step.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return models.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	role := models.UserRoleUser
	if count == 0 {
		role = models.UserRoleAdmin
	}

	// Opaque and currently informational only; no flow consumes it.
	verificationToken, err := ids.NewOpaqueToken(verificationTokenBytes)
	if err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return err
	}

	user := models.User{
		ID:                ids.New(),
		Email:             input.Email,
		Name:              input.Name,
		PasswordHash:      passwordHash,
		Role:              role,
		VerificationToken: verificationToken,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return nil
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User  models.TokenUser
	Token string
}

// Login verifies the credentials and issues a signed session token. An
// unknown email and a wrong password both yield ErrInvalidCredentials so
// the response never reveals which part was wrong.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, models.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !security.VerifyPassword(input.Password, user.PasswordHash) {
		return LoginResult{}, models.ErrInvalidCredentials
	}

	tokenUser := models.NewTokenUser(user)

	// The token outlives the 24h cookie on purpose; see the design notes.
	token, err := security.IssueSessionToken(s.secret, tokenUser, s.tokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: tokenUser, Token: token}, nil
}

// LoginStatus reports whether the token is a valid, unexpired session
// token. Every failure shape reads as logged out.
func (s *AuthService) LoginStatus(token string) bool {
	if token == "" {
		return false
	}
	if _, err := security.ParseSessionToken(token, s.secret); err != nil {
		return false
	}
	return true
}

func (s *AuthService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

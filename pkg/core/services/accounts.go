package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/conecta-saber/saber-cli/pkg/clients/saberclient"
	"github.com/conecta-saber/saber-cli/pkg/core/model"
	"github.com/conecta-saber/saber-cli/pkg/session"
)

var validate = validator.New()

// RegisterForm is the user-typed registration input, validated locally
// before any call goes out.
type RegisterForm struct {
	Name     string     `validate:"required"`
	Email    string     `validate:"required,email"`
	Password string     `validate:"required,min=6"`
	Phone    string     `validate:"required"`
	Role     model.Role `validate:"required"`
}

// Login exchanges credentials for a session and persists it. The token and
// profile are saved as one unit; every later gateway call picks the token
// up from the store.
func Login(ctx context.Context, gw Gateway, store *session.Store, logger *zap.Logger, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	logger.Debug("Logging in", zap.String("email", email))

	result, err := gw.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := store.Save(session.Session{Token: result.Token, User: result.User}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	logger.Info("Logged in",
		zap.String("user", result.User.Name),
		zap.String("role", string(result.User.Role)))

	return &result.User, nil
}

// Register creates a new account. The session is untouched; the user logs
// in afterwards.
func Register(ctx context.Context, gw Gateway, logger *zap.Logger, form RegisterForm) error {
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("registration validation failed: %w", err)
	}
	if !form.Role.IsValid() {
		return fmt.Errorf("invalid profile type %q", form.Role)
	}

	logger.Debug("Registering user",
		zap.String("email", form.Email),
		zap.String("role", string(form.Role)))

	err := gw.Register(ctx, saberclient.RegisterInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
		Role:     form.Role,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	logger.Info("Account created", zap.String("email", form.Email))
	return nil
}

// Logout clears the session. Requests issued after this point carry no
// Authorization header.
func Logout(store *session.Store, logger *zap.Logger) error {
	if err := store.Clear(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	logger.Info("Session cleared")
	return nil
}

// CurrentUser returns the profile held in the session store, or nil when
// no one is logged in.
func CurrentUser(store *session.Store) (*model.User, error) {
	sess, err := store.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}
	return &sess.User, nil
}

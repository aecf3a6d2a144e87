package saberclient

import (
	"context"
	"net/http"

	"github.com/conecta-saber/saber-cli/pkg/core/model"
)

// LoginResult is the backend's response to a successful credential
// exchange.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"usuario"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// RegisterInput is the new-user payload. SchoolID is nil for self-service
// registrations.
type RegisterInput struct {
	Name     string     `json:"nome"`
	Email    string     `json:"email"`
	Password string     `json:"senha"`
	Phone    string     `json:"telefone"`
	Role     model.Role `json:"tipo_perfil"`
	SchoolID *int       `json:"id_escola"`
}

// Login exchanges credentials for a token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/login", nil, loginRequest{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/usuarios/registro", nil, input, nil)
}

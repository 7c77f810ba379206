package client

import (
	"context"
	"net/http"

	"github.com/jhoicas/retail-admin/internal/admin/storage"
	"github.com/jhoicas/retail-admin/internal/application/dto"
)

// AuthService inicia y cierra sesión; el token queda en storage bajo auth_token.
type AuthService struct {
	c *Client
}

// Login obtiene la cookie CSRF, autentica y guarda el token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	// sin CSRF habilitado la ruta responde igual; un 404 de servidores antiguos se ignora
	if err := s.c.do(ctx, http.MethodGet, "auth/csrf", nil, nil, nil); err != nil && StatusOf(err) != http.StatusNotFound {
		return nil, err
	}
	var out dto.LoginResponse
	if err := s.c.do(ctx, http.MethodPost, "auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if err := s.c.store.Set(storage.KeyAuthToken, out.Token); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout elimina el token guardado.
func (s *AuthService) Logout() error {
	return s.c.store.Delete(storage.KeyAuthToken)
}

// Me devuelve el usuario del token actual.
func (s *AuthService) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := s.c.do(ctx, http.MethodGet, "auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package dto

import (
	"time"

	"stayhub/internal/domain/auth"
)

// --- Request DTOs ---

// RegisterRequest for self-registration into an existing tenant.
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	TenantSlug string `json:"tenantSlug" binding:"required"`
}

// ToAuthRequest converts to domain request.
func (r *RegisterRequest) ToAuthRequest() auth.RegisterRequest {
	return auth.RegisterRequest{
		Email:      r.Email,
		Password:   r.Password,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		TenantSlug: r.TenantSlug,
	}
}

// LoginRequest for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Email:    r.Email,
		Password: r.Password,
	}
}

// --- Response DTOs ---

// LoginResponse carries the issued session and the authenticated identity.
type LoginResponse struct {
	AccessToken string         `json:"accessToken"`
	TokenType   string         `json:"tokenType"`
	ExpiresAt   time.Time      `json:"expiresAt"`
	Identity    *auth.Identity `json:"identity"`
}

// NewLoginResponse creates response from domain session.
func NewLoginResponse(session *auth.Session, identity *auth.Identity) LoginResponse {
	return LoginResponse{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
		ExpiresAt:   session.ExpiresAt,
		Identity:    identity,
	}
}

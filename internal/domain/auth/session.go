package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stayhub/internal/core/apperror"
	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
)

// SessionConfig holds session credential configuration.
type SessionConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// DefaultSessionConfig returns default session configuration.
func DefaultSessionConfig(secret string) SessionConfig {
	return SessionConfig{
		Secret: secret,
		Issuer: "stayhub",
		TTL:    24 * time.Hour,
	}
}

// Claims represents the session credential claims.
type Claims struct {
	jwt.RegisteredClaims
	IdentityID string    `json:"uid"`
	Role       role.Role `json:"role"`
	TenantID   string    `json:"tid,omitempty"`
	Email      string    `json:"email,omitempty"`
}

// Session is an issued bearer credential.
type Session struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// SessionService issues and resolves session credentials.
// Resolution needs no store lookup; credentials expire but are not revocable.
type SessionService struct {
	config SessionConfig
	now    func() time.Time
}

// NewSessionService creates a new session service.
func NewSessionService(config SessionConfig) *SessionService {
	return &SessionService{config: config, now: time.Now}
}

// Issue creates a signed credential for identity.
func (s *SessionService) Issue(identity *Identity) (*Session, error) {
	if identity == nil || id.IsNil(identity.ID) {
		return nil, errors.New("issue session: identity is required")
	}
	if !identity.Role.IsValid() {
		return nil, fmt.Errorf("issue session: invalid role %q", identity.Role)
	}

	now := s.now()
	expiresAt := now.Add(s.config.TTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		IdentityID: identity.ID.String(),
		Role:       identity.Role,
		Email:      identity.Email,
	}
	if identity.TenantID != nil {
		claims.TenantID = identity.TenantID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Session{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

// Resolve validates a credential and returns the caller it was issued for.
// Every failure is reported as Unauthorized.
func (s *SessionService) Resolve(tokenString string) (*appctx.Caller, error) {
	if tokenString == "" {
		return nil, apperror.NewUnauthorized("missing credential")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	},
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.NewUnauthorized("credential expired").WithCause(err)
		}
		return nil, apperror.NewUnauthorized("invalid credential").WithCause(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperror.NewUnauthorized("invalid credential")
	}

	identityID, err := id.Parse(claims.IdentityID)
	if err != nil || !claims.Role.IsValid() {
		return nil, apperror.NewUnauthorized("invalid credential")
	}
	tenantID, err := id.ParseOptional(claims.TenantID)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid credential")
	}

	return &appctx.Caller{
		IdentityID: identityID,
		Role:       claims.Role,
		TenantID:   tenantID,
		Email:      claims.Email,
	}, nil
}

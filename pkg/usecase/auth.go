package usecase

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/types"
)

const (
	tokenIssuer     = "charterforge"
	sessionLifetime = 12 * time.Hour
)

// Session is the authenticated principal extracted from a token
type Session struct {
	Subject   string
	ExpiresAt time.Time
}

// AuthUseCase issues and validates HS256 session tokens. A static API
// key is exchanged for a short-lived JWT so the signing secret never
// travels with each request.
type AuthUseCase struct {
	apiKey []byte
	secret []byte
}

func NewAuthUseCase(apiKey, secret string) (*AuthUseCase, error) {
	if apiKey == "" {
		return nil, goerr.New("API key is required")
	}
	if len(secret) < 32 {
		return nil, goerr.New("token signing secret must be at least 32 bytes")
	}
	return &AuthUseCase{
		apiKey: []byte(apiKey),
		secret: []byte(secret),
	}, nil
}

// Login exchanges the API key for a signed session token
func (uc *AuthUseCase) Login(ctx context.Context, apiKey, subject string) (string, error) {
	if subtle.ConstantTimeCompare(uc.apiKey, []byte(apiKey)) != 1 {
		return "", goerr.Wrap(types.ErrUnauthorized, "invalid API key")
	}
	if subject == "" {
		subject = "api"
	}

	now := time.Now().UTC()
	token, err := jwt.NewBuilder().
		Issuer(tokenIssuer).
		Subject(subject).
		IssuedAt(now).
		Expiration(now.Add(sessionLifetime)).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build session token")
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, uc.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign session token")
	}
	return string(signed), nil
}

// ValidateToken verifies the session token signature and expiry
func (uc *AuthUseCase) ValidateToken(ctx context.Context, raw string) (*Session, error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, uc.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAcceptableSkew(10*time.Second),
	)
	if err != nil {
		return nil, goerr.Wrap(types.ErrUnauthorized, "invalid session token", goerr.V("cause", err.Error()))
	}

	return &Session{
		Subject:   token.Subject(),
		ExpiresAt: token.Expiration(),
	}, nil
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/usecase"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewAuthUseCase(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		uc, err := usecase.NewAuthUseCase("test-api-key", testSecret)
		gt.NoError(t, err).Required()
		gt.True(t, uc != nil)
	})

	t.Run("missing API key", func(t *testing.T) {
		_, err := usecase.NewAuthUseCase("", testSecret)
		gt.Error(t, err)
	})

	t.Run("short secret", func(t *testing.T) {
		_, err := usecase.NewAuthUseCase("test-api-key", "too-short")
		gt.Error(t, err)
	})
}

func TestLoginAndValidate(t *testing.T) {
	uc, err := usecase.NewAuthUseCase("test-api-key", testSecret)
	gt.NoError(t, err).Required()
	ctx := context.Background()

	token, err := uc.Login(ctx, "test-api-key", "alice")
	gt.NoError(t, err).Required()
	gt.String(t, token).NotEqual("")

	session, err := uc.ValidateToken(ctx, token)
	gt.NoError(t, err).Required()
	gt.Value(t, session.Subject).Equal("alice")
	gt.True(t, session.ExpiresAt.After(time.Now()))
}

func TestLoginDefaultSubject(t *testing.T) {
	uc, err := usecase.NewAuthUseCase("test-api-key", testSecret)
	gt.NoError(t, err).Required()
	ctx := context.Background()

	token, err := uc.Login(ctx, "test-api-key", "")
	gt.NoError(t, err).Required()

	session, err := uc.ValidateToken(ctx, token)
	gt.NoError(t, err).Required()
	gt.Value(t, session.Subject).Equal("api")
}

func TestLoginWrongAPIKey(t *testing.T) {
	uc, err := usecase.NewAuthUseCase("test-api-key", testSecret)
	gt.NoError(t, err).Required()

	_, err = uc.Login(context.Background(), "wrong-key", "")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrUnauthorized))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	uc, err := usecase.NewAuthUseCase("test-api-key", testSecret)
	gt.NoError(t, err).Required()

	_, err = uc.ValidateToken(context.Background(), "not.a.token")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrUnauthorized))
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	issuer, err := usecase.NewAuthUseCase("test-api-key", testSecret)
	gt.NoError(t, err).Required()
	verifier, err := usecase.NewAuthUseCase("test-api-key", "ffffffffffffffffffffffffffffffff")
	gt.NoError(t, err).Required()
	ctx := context.Background()

	token, err := issuer.Login(ctx, "test-api-key", "")
	gt.NoError(t, err).Required()

	_, err = verifier.ValidateToken(ctx, token)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrUnauthorized))
}

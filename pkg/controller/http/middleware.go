package http

import (
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/usecase"
	"github.com/charter-lab/charterforge/pkg/utils/errutil"
)

// authMiddleware validates the bearer session token on protected routes
func authMiddleware(authUC *usecase.AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				errutil.HandleHTTP(r.Context(), w,
					goerr.Wrap(types.ErrUnauthorized, "authentication required"))
				return
			}

			if _, err := authUC.ValidateToken(r.Context(), raw); err != nil {
				errutil.HandleHTTP(r.Context(), w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

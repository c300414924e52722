package http

import (
	"net/http"

	"github.com/charter-lab/charterforge/pkg/usecase"
	"github.com/charter-lab/charterforge/pkg/utils/errutil"
)

type loginRequest struct {
	APIKey  string `json:"api_key"`
	Subject string `json:"subject"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// authLoginHandler exchanges an API key for a session token
func authLoginHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		token, err := authUC.Login(r.Context(), req.APIKey, req.Subject)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, loginResponse{Token: token})
	}
}

// authMeHandler returns the session behind the presented token
func authMeHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := authUC.ValidateToken(r.Context(), bearerToken(r))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, session)
	}
}

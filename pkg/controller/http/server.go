package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/charter-lab/charterforge/pkg/usecase"
	"github.com/charter-lab/charterforge/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	authUC *usecase.AuthUseCase
}

type Options func(*Server)

// WithAuth enables bearer-token authentication on the API routes
func WithAuth(authUC *usecase.AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{router: r}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints (if auth is configured)
	if s.authUC != nil {
		r.Post("/api/auth/login", authLoginHandler(s.authUC))
	}

	r.Route("/api", func(r chi.Router) {
		if s.authUC != nil {
			r.Use(authMiddleware(s.authUC))
			r.Get("/auth/me", authMeHandler(s.authUC))
		}

		r.Route("/risk", func(r chi.Router) {
			r.Post("/assess", riskAssessHandler(uc.Risk))
			r.Get("/categories", riskCategoriesHandler(uc.Risk))
			r.Put("/categories/{categoryID}/weight", riskWeightHandler(uc.Risk))
			r.Post("/categories/{categoryID}/factors", riskAddFactorHandler(uc.Risk))
			r.Delete("/categories/{categoryID}/factors/{factorID}", riskRemoveFactorHandler(uc.Risk))

			r.Get("/mitigations", mitigationListHandler(uc.Risk))
			r.Post("/mitigations", mitigationCreateHandler(uc.Risk))
			r.Delete("/mitigations/{id}", mitigationDeleteHandler(uc.Risk))
			r.Post("/mitigations/recommend", mitigationRecommendHandler(uc.Risk))
		})

		r.Route("/clauses", func(r chi.Router) {
			r.Get("/categories", clauseCategoriesHandler(uc.Clause))
			r.Get("/", clauseListHandler(uc.Clause))
			r.Post("/", clauseCreateHandler(uc.Clause))
			r.Delete("/{id}", clauseDeleteHandler(uc.Clause))
			r.Post("/versions", clauseVersionHandler(uc.Clause))
			r.Get("/search", clauseSearchHandler(uc.Clause))
			r.Post("/suggest", clauseSuggestHandler(uc.Clause))
		})

		r.Route("/contracts", func(r chi.Router) {
			r.Post("/", contractGenerateHandler(uc.Contract, uc.Risk))
			r.Get("/", contractListHandler(uc.Contract))
			r.Get("/snapshots", contractSnapshotsHandler(uc.Contract))
			r.Get("/{id}", contractGetHandler(uc.Contract))
			r.Get("/{id}/html", contractHTMLHandler(uc.Contract))
			r.Get("/{id}/pdf", contractPDFHandler(uc.Contract))
			r.Get("/{id}/snapshots/{version}/html", contractSnapshotHTMLHandler(uc.Contract))
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

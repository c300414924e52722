package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/usecase"
	"github.com/charter-lab/charterforge/pkg/utils/errutil"
)

type assessRequest struct {
	Selection map[string][]string `json:"selection"`
}

func riskAssessHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assessRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		selection := make(model.Selection, len(req.Selection))
		for cat, factors := range req.Selection {
			ids := make([]types.FactorID, len(factors))
			for i, f := range factors {
				ids[i] = types.FactorID(f)
			}
			selection[types.CategoryID(cat)] = ids
		}

		respondJSON(r.Context(), w, http.StatusOK, uc.Assess(r.Context(), selection))
	}
}

func riskCategoriesHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(r.Context(), w, http.StatusOK, map[string]any{
			"categories": uc.Categories(r.Context()),
		})
	}
}

type weightRequest struct {
	Weight float64 `json:"weight"`
}

func riskWeightHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req weightRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		categoryID := types.CategoryID(chi.URLParam(r, "categoryID"))
		if err := uc.UpdateCategoryWeight(r.Context(), categoryID, req.Weight); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, map[string]any{
			"categories": uc.Categories(r.Context()),
		})
	}
}

type factorRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

func riskAddFactorHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req factorRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		factorID := types.FactorID(req.ID)
		if err := factorID.Validate(); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(types.ErrValidation, err.Error()))
			return
		}

		categoryID := types.CategoryID(chi.URLParam(r, "categoryID"))
		factor := model.RiskFactor{
			ID:          factorID,
			Name:        req.Name,
			Weight:      req.Weight,
			Description: req.Description,
		}
		if err := uc.AddFactor(r.Context(), categoryID, factor); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusCreated, factor)
	}
}

func riskRemoveFactorHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := types.CategoryID(chi.URLParam(r, "categoryID"))
		factorID := types.FactorID(chi.URLParam(r, "factorID"))

		if err := uc.RemoveFactor(r.Context(), categoryID, factorID); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func mitigationListHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		strategies, err := uc.ListStrategies(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, map[string]any{"strategies": strategies})
	}
}

type strategyRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Implementation string  `json:"implementation"`
	Effectiveness  float64 `json:"effectiveness"`
	CostImpact     string  `json:"cost_impact"`
}

func mitigationCreateHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req strategyRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		costImpact, err := types.ParseCostImpact(req.CostImpact)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(types.ErrValidation, err.Error()))
			return
		}

		created, err := uc.AddCustomStrategy(r.Context(), &model.MitigationStrategy{
			Name:           req.Name,
			Description:    req.Description,
			Implementation: req.Implementation,
			Effectiveness:  req.Effectiveness,
			CostImpact:     costImpact,
		})
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusCreated, created)
	}
}

func mitigationDeleteHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(types.ErrValidation, "invalid strategy ID"))
			return
		}
		if err := uc.DeleteStrategy(r.Context(), id); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type recommendRequest struct {
	RiskScore float64 `json:"risk_score"`
	MaxCount  int     `json:"max_count"`
}

func mitigationRecommendHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recommendRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		recommendations, err := uc.Recommend(r.Context(), req.RiskScore, req.MaxCount)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, map[string]any{"recommendations": recommendations})
	}
}

package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/service/clause"
	"github.com/charter-lab/charterforge/pkg/service/suggest"
	"github.com/charter-lab/charterforge/pkg/usecase"
	"github.com/charter-lab/charterforge/pkg/utils/errutil"
)

func clauseCategoriesHandler(uc *usecase.ClauseUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := uc.Categories(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, map[string]any{"categories": categories})
	}
}

func clauseListHandler(uc *usecase.ClauseUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		if category == "" {
			errutil.HandleHTTP(r.Context(), w,
				goerr.Wrap(types.ErrValidation, "category query parameter is required"))
			return
		}

		clauses, err := uc.GetByCategory(r.Context(), category)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, clauses)
	}
}

type clauseRequest struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Content       string   `json:"content"`
	Jurisdictions []string `json:"jurisdictions"`
	Language      string   `json:"language"`
	Complexity    string   `json:"complexity"`
	Author        string   `json:"author"`
	LegalNotes    string   `json:"legal_notes"`
	ApplicableTo  []string `json:"applicable_to"`
}

func clauseCreateHandler(uc *usecase.ClauseUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clauseRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		created, err := uc.AddCustom(r.Context(), &model.Clause{
			Name:          req.Name,
			Category:      req.Category,
			Content:       req.Content,
			Jurisdictions: req.Jurisdictions,
			Language:      req.Language,
			Complexity:    types.Complexity(req.Complexity),
			Author:        req.Author,
			LegalNotes:    req.LegalNotes,
			ApplicableTo:  req.ApplicableTo,
		})
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusCreated, created)
	}
}

func clauseDeleteHandler(uc *usecase.ClauseUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(types.ErrValidation, "invalid clause ID"))
			return
		}
		if err := uc.DeleteCustom(r.Context(), id); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type versionRequest struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	Content           string `json:"content"`
	ModificationNotes string `json:"modification_notes"`
}

func clauseVersionHandler(uc *usecase.ClauseUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req versionRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		key := model.ClauseKey{Name: req.Name, Category: req.Category}
		created, err := uc.CreateVersion(r.Context(), key, req.Content, req.ModificationNotes)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusCreated, created)
	}
}

func clauseSearchHandler(uc *usecase.ClauseUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filters := clause.Filters{
			Categories:    q["category"],
			Jurisdictions: q["jurisdiction"],
			Languages:     q["language"],
		}
		for _, c := range q["complexity"] {
			filters.Complexities = append(filters.Complexities, types.Complexity(c))
		}
		if v := q.Get("min_usage"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errutil.HandleHTTP(r.Context(), w, goerr.Wrap(types.ErrValidation, "invalid min_usage"))
				return
			}
			filters.MinUsage = n
		}
		if v := q.Get("min_rating"); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errutil.HandleHTTP(r.Context(), w, goerr.Wrap(types.ErrValidation, "invalid min_rating"))
				return
			}
			filters.MinRating = f
		}

		results, err := uc.Search(r.Context(), q.Get("q"), filters)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, map[string]any{"results": results})
	}
}

type suggestRequest struct {
	YachtType       string   `json:"yacht_type"`
	CharterValue    float64  `json:"charter_value"`
	DurationDays    int      `json:"duration_days"`
	OperationalArea string   `json:"operational_area"`
	CorporateLessee bool     `json:"corporate_lessee"`
	RiskLevel       string   `json:"risk_level"`
	ActiveFactors   []string `json:"active_factors"`
	Categories      []string `json:"categories"`
}

func clauseSuggestHandler(uc *usecase.ClauseUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req suggestRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		suggestions, err := uc.Suggest(r.Context(), &suggest.Scenario{
			YachtType:       req.YachtType,
			CharterValue:    req.CharterValue,
			DurationDays:    req.DurationDays,
			OperationalArea: req.OperationalArea,
			CorporateLessee: req.CorporateLessee,
			RiskLevel:       types.RiskLevel(req.RiskLevel),
			ActiveFactors:   req.ActiveFactors,
			Categories:      req.Categories,
		})
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, map[string]any{"suggestions": suggestions})
	}
}

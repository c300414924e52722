package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/charter-lab/charterforge/pkg/controller/http"
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/repository/memory"
	"github.com/charter-lab/charterforge/pkg/service/clause"
	"github.com/charter-lab/charterforge/pkg/service/pdf"
	"github.com/charter-lab/charterforge/pkg/service/render"
	"github.com/charter-lab/charterforge/pkg/usecase"
)

func serverCategories() []model.RiskCategory {
	return []model.RiskCategory{
		{
			ID:     "navigation-risks",
			Name:   "Navigation Risks",
			Weight: 0.30,
			Factors: []model.RiskFactor{
				{ID: "remote-destinations", Name: "Remote destinations", Weight: 1.2},
			},
		},
		{
			ID:     "financial-risks",
			Name:   "Financial Risks",
			Weight: 0.70,
			Factors: []model.RiskFactor{
				{ID: "high-value-charter", Name: "High value charter", Weight: 1.0},
			},
		},
	}
}

func newTestServer(t *testing.T, opts ...httpctrl.Options) *httptest.Server {
	t.Helper()

	uc := usecase.New(memory.New(),
		usecase.WithRiskCategories(serverCategories()),
		usecase.WithRenderer(render.NewHTML()),
		usecase.WithExporter(pdf.New()),
	)
	gt.NoError(t, uc.Clause.Seed(context.Background(), clause.DefaultLibrary())).Required()

	srv := httptest.NewServer(httpctrl.New(uc, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	gt.NoError(t, err).Required()
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	gt.NoError(t, err).Required()
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(out)).Required()
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	gt.NoError(t, err).Required()
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

	var body map[string]string
	decodeBody(t, resp, &body)
	gt.Value(t, body["status"]).Equal("ok")
}

func TestRiskAssessEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/risk/assess", map[string]any{
		"selection": map[string][]string{
			"navigation-risks": {"remote-destinations"},
		},
	})
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

	var body struct {
		OverallScore float64 `json:"OverallScore"`
		Level        string  `json:"Level"`
	}
	decodeBody(t, resp, &body)
	gt.Value(t, body.OverallScore).Equal(0.36)
	gt.Value(t, body.Level).Equal("Low")
}

func TestRiskAssessRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/risk/assess", "application/json",
		strings.NewReader("{not json"))
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
}

func TestRiskWeightEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut,
		srv.URL+"/api/risk/categories/navigation-risks/weight",
		strings.NewReader(`{"weight": 0.5}`))
	gt.NoError(t, err).Required()
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

	t.Run("unknown category is 404", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPut,
			srv.URL+"/api/risk/categories/no-such-category/weight",
			strings.NewReader(`{"weight": 0.5}`))
		gt.NoError(t, err).Required()

		resp, err := http.DefaultClient.Do(req)
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
	})
}

func TestMitigationEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/risk/mitigations", map[string]any{
		"name":          "Night Watch Requirement",
		"description":   "Dedicated night watch for extended passages",
		"effectiveness": 0.7,
		"cost_impact":   "Low",
	})
	gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)

	var created model.MitigationStrategy
	decodeBody(t, resp, &created)
	gt.True(t, created.Custom)

	listResp, err := http.Get(srv.URL + "/api/risk/mitigations")
	gt.NoError(t, err).Required()
	var list struct {
		Strategies []model.MitigationStrategy `json:"strategies"`
	}
	decodeBody(t, listResp, &list)
	gt.Array(t, list.Strategies).Length(1)

	req, err := http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/api/risk/mitigations/%d", srv.URL, created.ID), nil)
	gt.NoError(t, err).Required()
	delResp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	defer delResp.Body.Close()
	gt.Value(t, delResp.StatusCode).Equal(http.StatusNoContent)
}

func TestClauseEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("categories", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/clauses/categories")
		gt.NoError(t, err).Required()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		var body struct {
			Categories []string `json:"categories"`
		}
		decodeBody(t, resp, &body)
		gt.Array(t, body.Categories).Has("Payment Terms")
	})

	t.Run("create and delete custom clause", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/clauses/", map[string]any{
			"name":     "Pet Policy",
			"category": "Special Conditions",
			"content":  "Pets require prior written consent of the Lessor.",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)

		var created model.Clause
		decodeBody(t, resp, &created)
		gt.Number(t, created.ID).Greater(int64(0))

		req, err := http.NewRequest(http.MethodDelete,
			fmt.Sprintf("%s/api/clauses/%d", srv.URL, created.ID), nil)
		gt.NoError(t, err).Required()
		delResp, err := http.DefaultClient.Do(req)
		gt.NoError(t, err).Required()
		defer delResp.Body.Close()
		gt.Value(t, delResp.StatusCode).Equal(http.StatusNoContent)
	})

	t.Run("version branch", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/clauses/versions", map[string]any{
			"name":               "Standard 50/50 Payment Schedule",
			"category":           "Payment Terms",
			"content":            "Revised installment text.",
			"modification_notes": "Adjusted split",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)

		var version model.Clause
		decodeBody(t, resp, &version)
		gt.Value(t, version.Version).Equal("v2.0")
	})

	t.Run("search", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/clauses/search?q=cancellation")
		gt.NoError(t, err).Required()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		var body struct {
			Results []struct {
				Relevance int `json:"Relevance"`
			} `json:"results"`
		}
		decodeBody(t, resp, &body)
		gt.Number(t, len(body.Results)).Greater(0)
	})
}

func TestContractEndpoints(t *testing.T) {
	srv := newTestServer(t)

	genResp := postJSON(t, srv.URL+"/api/contracts/", map[string]any{
		"vessel": map[string]any{
			"name": "M/Y Serenity",
			"type": "Motor Yacht",
		},
		"charter": map[string]any{
			"start_date": "2026-07-01T00:00:00Z",
			"end_date":   "2026-07-08T00:00:00Z",
			"daily_rate": 12000,
			"currency":   "EUR",
		},
		"parties": map[string]any{
			"lessor": map[string]any{"name": "Azure Charters Ltd"},
			"lessee": map[string]any{"name": "J. Moreau"},
		},
		"risk_selection": map[string][]string{
			"navigation-risks": {"remote-destinations"},
		},
	})
	gt.Value(t, genResp.StatusCode).Equal(http.StatusCreated)

	var generated struct {
		Document *model.ContractDocument `json:"document"`
		HTML     string                  `json:"html"`
		PDF      string                  `json:"pdf_base64"`
	}
	decodeBody(t, genResp, &generated)

	gt.Value(t, generated.Document.TotalValue).Equal(84000.0)
	gt.Value(t, generated.Document.Assessment.OverallScore).Equal(0.36)
	gt.True(t, strings.Contains(generated.HTML, "M/Y Serenity"))
	gt.String(t, generated.PDF).NotEqual("")

	id := generated.Document.ID.String()

	t.Run("get by ID", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/contracts/" + id)
		gt.NoError(t, err).Required()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		var doc model.ContractDocument
		decodeBody(t, resp, &doc)
		gt.Value(t, doc.Vessel.Name).Equal("M/Y Serenity")
	})

	t.Run("HTML artifact", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/contracts/" + id + "/html")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
	})

	t.Run("PDF artifact", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/contracts/" + id + "/pdf")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, resp.Header.Get("Content-Type")).Equal("application/pdf")
	})

	t.Run("missing contract is 404", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/contracts/MISSING1")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
	})
}

func TestAuthenticationFlow(t *testing.T) {
	authUC, err := usecase.NewAuthUseCase("test-api-key", "0123456789abcdef0123456789abcdef")
	gt.NoError(t, err).Required()

	uc := usecase.New(memory.New(),
		usecase.WithRiskCategories(serverCategories()),
		usecase.WithRenderer(render.NewHTML()),
		usecase.WithExporter(pdf.New()),
		usecase.WithAuth(authUC),
	)
	srv := httptest.NewServer(httpctrl.New(uc, httpctrl.WithAuth(authUC)))
	t.Cleanup(srv.Close)

	t.Run("request without token is rejected", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/risk/categories")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusUnauthorized)
	})

	t.Run("health stays open", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/health")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	})

	t.Run("login and authorized request", func(t *testing.T) {
		loginResp := postJSON(t, srv.URL+"/api/auth/login", map[string]string{
			"api_key": "test-api-key",
		})
		gt.Value(t, loginResp.StatusCode).Equal(http.StatusOK)

		var login struct {
			Token string `json:"token"`
		}
		decodeBody(t, loginResp, &login)
		gt.String(t, login.Token).NotEqual("")

		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/risk/categories", nil)
		gt.NoError(t, err).Required()
		req.Header.Set("Authorization", "Bearer "+login.Token)

		resp, err := http.DefaultClient.Do(req)
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		meReq, err := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/me", nil)
		gt.NoError(t, err).Required()
		meReq.Header.Set("Authorization", "Bearer "+login.Token)

		meResp, err := http.DefaultClient.Do(meReq)
		gt.NoError(t, err).Required()
		gt.Value(t, meResp.StatusCode).Equal(http.StatusOK)

		var session struct {
			Subject string `json:"Subject"`
		}
		decodeBody(t, meResp, &session)
		gt.Value(t, session.Subject).Equal("api")
	})

	t.Run("wrong API key is rejected", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/auth/login", map[string]string{
			"api_key": "wrong-key",
		})
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusUnauthorized)
	})
}

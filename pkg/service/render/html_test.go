package render_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/service/render"
)

func renderFixture() *model.ContractDocument {
	return &model.ContractDocument{
		ID:            "ABCD1234",
		VersionNumber: "1.0",
		Vessel: model.VesselInfo{
			Name:          "M/Y Serenity",
			Type:          "Motor Yacht",
			FlagState:     "Malta",
			LengthOverall: 42.5,
			GuestCapacity: 10,
			CrewCapacity:  6,
		},
		Charter: model.CharterTerms{
			StartDate:       time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:         time.Date(2026, 7, 8, 0, 0, 0, 0, time.UTC),
			DurationDays:    7,
			DailyRate:       12000,
			Currency:        "EUR",
			OperationalArea: "Western Mediterranean",
		},
		Parties: model.Parties{
			Lessor: model.Party{Name: "Azure Charters Ltd"},
			Lessee: model.Party{Name: "J. Moreau"},
		},
		Financial: model.FinancialTerms{
			PaymentSchedule1: 50,
			PaymentSchedule2: 50,
			SecurityDeposit:  25000,
		},
		Metadata: model.ContractMetadata{
			AgreementDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			GoverningLaw:  "Malta",
		},
		TotalValue:  84000,
		GeneratedAt: time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestRenderBasicDocument(t *testing.T) {
	out, err := render.NewHTML().Render(context.Background(), renderFixture())
	gt.NoError(t, err).Required()

	html := string(out)
	gt.True(t, strings.Contains(html, "M/Y Serenity"))
	gt.True(t, strings.Contains(html, "ABCD1234"))
	gt.True(t, strings.Contains(html, "Azure Charters Ltd"))
	gt.True(t, strings.Contains(html, "J. Moreau"))
	gt.True(t, strings.Contains(html, "84,000"))
	gt.True(t, strings.Contains(html, "01 July 2026"))
	gt.True(t, strings.Contains(html, "Western Mediterranean"))
}

func TestRenderWithAssessment(t *testing.T) {
	doc := renderFixture()
	doc.Assessment = &model.Assessment{
		OverallScore: 1.25,
		Level:        types.RiskLevelMedium,
		Categories: []model.CategoryScore{
			{
				Name:          "Navigation Risks",
				Weight:        0.30,
				RawScore:      1.2,
				WeightedScore: 0.36,
				ActiveFactors: []model.RiskFactor{{Name: "Remote destinations"}},
			},
		},
	}
	doc.Mitigations = []model.Recommendation{
		{Strategy: model.MitigationStrategy{Name: "Weather Routing Service"}, Recommended: true},
		{Strategy: model.MitigationStrategy{Name: "Client References Check"}, Recommended: false},
	}

	out, err := render.NewHTML().Render(context.Background(), doc)
	gt.NoError(t, err).Required()

	html := string(out)
	gt.True(t, strings.Contains(html, "1.25"))
	gt.True(t, strings.Contains(html, "Medium"))
	gt.True(t, strings.Contains(html, "Remote destinations"))
	gt.True(t, strings.Contains(html, "Weather Routing Service"))
}

func TestRenderWithoutAssessment(t *testing.T) {
	out, err := render.NewHTML().Render(context.Background(), renderFixture())
	gt.NoError(t, err).Required()
	gt.False(t, strings.Contains(string(out), "Risk Assessment"))
}

func TestRenderClauseSourceLabels(t *testing.T) {
	doc := renderFixture()
	doc.Clauses = []model.SelectedClause{
		{Name: "Library Clause", Content: "a", Source: types.ClauseSourceLibrary},
		{Name: "Custom Clause", Content: "b", Source: types.ClauseSourceCustom},
		{Name: "Versioned Clause", Content: "c", Source: types.ClauseSourceVersion},
		{Name: "Suggested Clause", Content: "d", Source: types.ClauseSourceAISuggestion},
	}

	out, err := render.NewHTML().Render(context.Background(), doc)
	gt.NoError(t, err).Required()

	html := string(out)
	gt.True(t, strings.Contains(html, "(From Library)"))
	gt.True(t, strings.Contains(html, "(Custom)"))
	gt.True(t, strings.Contains(html, "(Modified Version)"))
	gt.True(t, strings.Contains(html, "(AI Suggested)"))
}

func TestRenderEscapesContent(t *testing.T) {
	doc := renderFixture()
	doc.Clauses = []model.SelectedClause{
		{Name: "Injection", Content: "<script>alert(1)</script>", Source: types.ClauseSourceCustom},
	}

	out, err := render.NewHTML().Render(context.Background(), doc)
	gt.NoError(t, err).Required()
	gt.False(t, strings.Contains(string(out), "<script>alert(1)</script>"))
}

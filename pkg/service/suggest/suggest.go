package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/utils/logging"
)

// Scenario describes the charter under composition for suggestion
// ranking.
type Scenario struct {
	YachtType       string
	CharterValue    float64
	DurationDays    int
	OperationalArea string
	CorporateLessee bool
	RiskLevel       types.RiskLevel
	ActiveFactors   []string
	Categories      []string
}

// Suggester recommends contract clauses for a charter scenario. With an
// LLM client the ranking is model-generated; without one a static rule
// set covers the common cases, so the feature degrades rather than
// disappears.
type Suggester struct {
	llm gollem.LLMClient
}

// New creates a Suggester. llm may be nil.
func New(llm gollem.LLMClient) *Suggester {
	return &Suggester{llm: llm}
}

// Suggest returns ranked clause suggestions for the scenario. LLM
// failures fall back to the rule set after logging.
func (s *Suggester) Suggest(ctx context.Context, scenario *Scenario) ([]model.ClauseSuggestion, error) {
	if s.llm == nil {
		return ruleBased(scenario), nil
	}

	suggestions, err := s.generate(ctx, scenario)
	if err != nil {
		logging.From(ctx).Warn("LLM clause suggestion failed, using rule-based fallback",
			"error", err)
		return ruleBased(scenario), nil
	}
	return suggestions, nil
}

var suggestionSchema = &gollem.Parameter{
	Title:       "ClauseSuggestions",
	Description: "Ranked clause suggestions for a yacht charter contract",
	Type:        gollem.TypeObject,
	Properties: map[string]*gollem.Parameter{
		"suggestions": {
			Type:        gollem.TypeArray,
			Description: "Clause suggestions, strongest first. At most 5 entries.",
			Required:    true,
			Items: &gollem.Parameter{
				Type: gollem.TypeObject,
				Properties: map[string]*gollem.Parameter{
					"name": {
						Type:        gollem.TypeString,
						Description: "Short clause title",
						Required:    true,
					},
					"category": {
						Type:        gollem.TypeString,
						Description: "Clause category, e.g. Insurance Requirements or Payment Terms",
						Required:    true,
					},
					"content": {
						Type:        gollem.TypeString,
						Description: "Full contract clause text in formal legal register",
						Required:    true,
					},
					"reason": {
						Type:        gollem.TypeString,
						Description: "One sentence explaining why this clause fits the charter",
						Required:    true,
					},
					"confidence": {
						Type:        gollem.TypeInteger,
						Description: "Confidence from 0 to 100",
						Required:    true,
					},
					"priority": {
						Type:        gollem.TypeString,
						Description: "One of: High, Medium, Low",
						Required:    true,
					},
				},
			},
		},
	},
}

type suggestionPayload struct {
	Suggestions []struct {
		Name       string `json:"name"`
		Category   string `json:"category"`
		Content    string `json:"content"`
		Reason     string `json:"reason"`
		Confidence int    `json:"confidence"`
		Priority   string `json:"priority"`
	} `json:"suggestions"`
}

func (s *Suggester) generate(ctx context.Context, scenario *Scenario) ([]model.ClauseSuggestion, error) {
	session, err := s.llm.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(suggestionSchema),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create suggestion session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildPrompt(scenario)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate clause suggestions")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("clause suggestion generation returned empty result")
	}

	var payload suggestionPayload
	if err := json.Unmarshal([]byte(resp.Texts[0]), &payload); err != nil {
		return nil, goerr.Wrap(err, "failed to parse clause suggestion JSON",
			goerr.V("response", resp.Texts[0]),
		)
	}

	suggestions := make([]model.ClauseSuggestion, 0, len(payload.Suggestions))
	for _, sg := range payload.Suggestions {
		suggestions = append(suggestions, model.ClauseSuggestion{
			Name:       sg.Name,
			Category:   sg.Category,
			Content:    sg.Content,
			Reason:     sg.Reason,
			Confidence: sg.Confidence,
			Priority:   sg.Priority,
		})
	}
	return suggestions, nil
}

func buildPrompt(scenario *Scenario) string {
	var b strings.Builder
	b.WriteString("Suggest contract clauses for the following yacht charter.\n")
	b.WriteString("Only suggest clauses that address a concrete characteristic of this charter.\n\n")
	fmt.Fprintf(&b, "Yacht type: %s\n", scenario.YachtType)
	fmt.Fprintf(&b, "Total charter value: %.0f\n", scenario.CharterValue)
	fmt.Fprintf(&b, "Duration: %d days\n", scenario.DurationDays)
	fmt.Fprintf(&b, "Operational area: %s\n", scenario.OperationalArea)
	fmt.Fprintf(&b, "Corporate charterer: %t\n", scenario.CorporateLessee)
	if scenario.RiskLevel != "" {
		fmt.Fprintf(&b, "Assessed risk level: %s\n", scenario.RiskLevel)
	}
	if len(scenario.ActiveFactors) > 0 {
		fmt.Fprintf(&b, "Active risk factors: %s\n", strings.Join(scenario.ActiveFactors, ", "))
	}
	if len(scenario.Categories) > 0 {
		fmt.Fprintf(&b, "Clause categories already covered: %s\n", strings.Join(scenario.Categories, ", "))
	}
	return b.String()
}

// ruleBased covers the common suggestion cases without an LLM.
func ruleBased(scenario *Scenario) []model.ClauseSuggestion {
	var suggestions []model.ClauseSuggestion

	if scenario.CharterValue >= 100000 {
		suggestions = append(suggestions, model.ClauseSuggestion{
			Name:     "Enhanced Insurance Coverage",
			Category: "Insurance Requirements",
			Content: "The Lessor shall maintain hull insurance of no less than the full " +
				"replacement value of the vessel and liability insurance of no less than " +
				"twice the total charter value. Certificates of insurance shall be provided " +
				"to the Lessee prior to the commencement of the charter period.",
			Reason:     "High-value charters warrant coverage above the standard policy minimums",
			Confidence: 85,
			Priority:   "High",
		})
	}

	if scenario.CorporateLessee {
		suggestions = append(suggestions, model.ClauseSuggestion{
			Name:     "Corporate Authorization Warranty",
			Category: "Payment Terms",
			Content: "The Lessee warrants that the execution of this agreement has been duly " +
				"authorized by all necessary corporate action and that the signatory holds " +
				"authority to bind the Lessee. Invoices shall reference the Lessee's purchase " +
				"order number where provided.",
			Reason:     "Corporate charterers require authority warranties and invoice referencing",
			Confidence: 75,
			Priority:   "Medium",
		})
	}

	if scenario.DurationDays > 14 {
		suggestions = append(suggestions, model.ClauseSuggestion{
			Name:     "Extended Charter Maintenance",
			Category: "Maintenance and Repairs",
			Content: "For charter periods exceeding fourteen days, the Lessor shall arrange " +
				"scheduled maintenance inspections at intervals not exceeding fourteen days. " +
				"Time lost to scheduled maintenance shall not count against the charter period.",
			Reason:     "Long charters need scheduled maintenance windows written into the agreement",
			Confidence: 70,
			Priority:   "Medium",
		})
	}

	if scenario.RiskLevel == types.RiskLevelHigh || scenario.RiskLevel == types.RiskLevelCritical {
		suggestions = append(suggestions, model.ClauseSuggestion{
			Name:     "Risk Mitigation Compliance",
			Category: "Operational Restrictions",
			Content: "The Lessee shall comply with all risk mitigation measures specified in " +
				"the risk assessment annex, including any operational restrictions, crew " +
				"requirements and reporting obligations. Non-compliance constitutes a material " +
				"breach of this agreement.",
			Reason:     "Elevated assessed risk should be bound to enforceable mitigation obligations",
			Confidence: 80,
			Priority:   "High",
		})
	}

	return suggestions
}

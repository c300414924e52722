package config

import (
	_ "embed"
	"math"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

//go:embed defaults.toml
var defaultsTOML []byte

// AppConfig represents the application configuration: the weighted risk
// model, the mitigation catalog and optional clause seed overrides
type AppConfig struct {
	Categories  []Category   `toml:"category"`
	Mitigations []Mitigation `toml:"mitigation"`
	Clauses     []SeedClause `toml:"clause"`
}

// Category represents a weighted risk category configuration
type Category struct {
	ID      string   `toml:"id"`
	Name    string   `toml:"name"`
	Weight  float64  `toml:"weight"`
	Factors []Factor `toml:"factor"`
}

// Validate checks if the Category is valid
func (c *Category) Validate() error {
	id := types.CategoryID(c.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid category ID")
	}
	if c.Name == "" {
		return goerr.New("category name is required", goerr.V("id", c.ID))
	}
	if c.Weight < 0 {
		return goerr.New("category weight must not be negative", goerr.V("id", c.ID), goerr.V("weight", c.Weight))
	}
	if len(c.Factors) == 0 {
		return goerr.New("category requires at least one factor", goerr.V("id", c.ID))
	}
	return nil
}

// Factor represents a risk factor configuration within a category
type Factor struct {
	ID          string  `toml:"id"`
	Name        string  `toml:"name"`
	Weight      float64 `toml:"weight"`
	Description string  `toml:"description"`
}

// Validate checks if the Factor is valid
func (f *Factor) Validate() error {
	id := types.FactorID(f.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid factor ID")
	}
	if f.Name == "" {
		return goerr.New("factor name is required", goerr.V("id", f.ID))
	}
	if f.Weight <= 0 {
		return goerr.New("factor weight must be positive", goerr.V("id", f.ID), goerr.V("weight", f.Weight))
	}
	return nil
}

// Mitigation represents a mitigation strategy catalog entry
type Mitigation struct {
	Name           string  `toml:"name"`
	Description    string  `toml:"description"`
	Implementation string  `toml:"implementation"`
	Effectiveness  float64 `toml:"effectiveness"`
	CostImpact     string  `toml:"cost_impact"`
}

// Validate checks if the Mitigation is valid
func (m *Mitigation) Validate() error {
	if m.Name == "" {
		return goerr.New("mitigation name is required")
	}
	if m.Effectiveness < 0 || m.Effectiveness > 1 {
		return goerr.New("mitigation effectiveness must be within [0, 1]",
			goerr.V("name", m.Name), goerr.V("effectiveness", m.Effectiveness))
	}
	if _, err := types.ParseCostImpact(m.CostImpact); err != nil {
		return goerr.Wrap(err, "invalid mitigation cost impact", goerr.V("name", m.Name))
	}
	return nil
}

// SeedClause represents an additional clause library seed entry
type SeedClause struct {
	Name         string   `toml:"name"`
	Category     string   `toml:"category"`
	Content      string   `toml:"content"`
	Version      string   `toml:"version"`
	Language     string   `toml:"language"`
	Complexity   string   `toml:"complexity"`
	Author       string   `toml:"author"`
	LegalNotes   string   `toml:"legal_notes"`
	Jurisdiction []string `toml:"jurisdictions"`
	ApplicableTo []string `toml:"applicable_to"`
}

// Validate checks if the SeedClause is valid
func (s *SeedClause) Validate() error {
	if s.Name == "" {
		return goerr.New("clause name is required")
	}
	if s.Category == "" {
		return goerr.New("clause category is required", goerr.V("name", s.Name))
	}
	if s.Content == "" {
		return goerr.New("clause content is required", goerr.V("name", s.Name))
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	categoryIDs := make(map[string]bool)
	var totalWeight float64
	for _, cat := range a.Categories {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category")
		}
		if categoryIDs[cat.ID] {
			return goerr.New("duplicate category ID", goerr.V("id", cat.ID))
		}
		categoryIDs[cat.ID] = true
		totalWeight += cat.Weight

		factorIDs := make(map[string]bool)
		for _, f := range cat.Factors {
			if err := f.Validate(); err != nil {
				return goerr.Wrap(err, "invalid factor", goerr.V("category", cat.ID))
			}
			if factorIDs[f.ID] {
				return goerr.New("duplicate factor ID", goerr.V("category", cat.ID), goerr.V("id", f.ID))
			}
			factorIDs[f.ID] = true
		}
	}
	if len(a.Categories) > 0 && totalWeight == 0 {
		return goerr.New("total category weight must be positive")
	}
	if len(a.Categories) > 0 && math.Abs(totalWeight-1.0) > 0.01 {
		return goerr.New("category weights must sum to 1.0", goerr.V("total", totalWeight))
	}

	mitigationNames := make(map[string]bool)
	for _, m := range a.Mitigations {
		if err := m.Validate(); err != nil {
			return goerr.Wrap(err, "invalid mitigation")
		}
		if mitigationNames[m.Name] {
			return goerr.New("duplicate mitigation name", goerr.V("name", m.Name))
		}
		mitigationNames[m.Name] = true
	}

	for _, cl := range a.Clauses {
		if err := cl.Validate(); err != nil {
			return goerr.Wrap(err, "invalid clause seed")
		}
	}

	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML
// file. An empty path loads the embedded defaults.
func LoadAppConfiguration(path string) (*AppConfig, error) {
	data := defaultsTOML
	if path != "" {
		// #nosec G304 - path is expected to be provided by CLI argument
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
		}
		data = raw
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return &config, nil
}

// RiskCategories converts the configuration to domain risk categories
func (a *AppConfig) RiskCategories() []model.RiskCategory {
	categories := make([]model.RiskCategory, len(a.Categories))
	for i, cat := range a.Categories {
		factors := make([]model.RiskFactor, len(cat.Factors))
		for j, f := range cat.Factors {
			factors[j] = model.RiskFactor{
				ID:          types.FactorID(f.ID),
				Name:        f.Name,
				Weight:      f.Weight,
				Description: f.Description,
			}
		}
		categories[i] = model.RiskCategory{
			ID:      types.CategoryID(cat.ID),
			Name:    cat.Name,
			Weight:  cat.Weight,
			Factors: factors,
		}
	}
	return categories
}

// MitigationCatalog converts the configuration to catalog strategies
func (a *AppConfig) MitigationCatalog() []*model.MitigationStrategy {
	catalog := make([]*model.MitigationStrategy, len(a.Mitigations))
	for i, m := range a.Mitigations {
		catalog[i] = &model.MitigationStrategy{
			Name:           m.Name,
			Description:    m.Description,
			Implementation: m.Implementation,
			Effectiveness:  m.Effectiveness,
			CostImpact:     types.CostImpact(m.CostImpact),
		}
	}
	return catalog
}

// ClauseSeeds converts the configured clause entries to library clauses
func (a *AppConfig) ClauseSeeds() []*model.Clause {
	clauses := make([]*model.Clause, len(a.Clauses))
	for i, c := range a.Clauses {
		clauses[i] = &model.Clause{
			Name:          c.Name,
			Category:      c.Category,
			Content:       c.Content,
			Version:       c.Version,
			Status:        types.ClauseStatusLibrary,
			Language:      c.Language,
			Complexity:    types.Complexity(c.Complexity),
			Author:        c.Author,
			LegalNotes:    c.LegalNotes,
			Jurisdictions: c.Jurisdiction,
			ApplicableTo:  c.ApplicableTo,
		}
	}
	return clauses
}

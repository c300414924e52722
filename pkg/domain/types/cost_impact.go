package types

import "fmt"

// CostImpact represents the cost impact of a mitigation strategy
type CostImpact string

const (
	CostImpactLow    CostImpact = "Low"
	CostImpactMedium CostImpact = "Medium"
	CostImpactHigh   CostImpact = "High"
)

// IsValid checks if the cost impact is valid
func (c CostImpact) IsValid() bool {
	switch c {
	case CostImpactLow, CostImpactMedium, CostImpactHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the cost impact
func (c CostImpact) String() string {
	return string(c)
}

// ParseCostImpact parses a string into a CostImpact
func ParseCostImpact(s string) (CostImpact, error) {
	impact := CostImpact(s)
	if !impact.IsValid() {
		return "", fmt.Errorf("invalid cost impact: %s", s)
	}
	return impact, nil
}

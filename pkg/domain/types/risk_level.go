package types

// RiskLevel represents the category label derived from an overall risk score
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelCritical RiskLevel = "Critical"
)

// Score thresholds for risk levels. These are fixed constants with no
// configuration override.
const (
	riskThresholdMedium = 1.0
	riskThresholdHigh   = 2.0
	riskThresholdCrit   = 3.0
)

// RiskLevelFromScore derives the risk level from an overall score.
// It is a pure function of the score with no hysteresis.
func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score < riskThresholdMedium:
		return RiskLevelLow
	case score < riskThresholdHigh:
		return RiskLevelMedium
	case score < riskThresholdCrit:
		return RiskLevelHigh
	default:
		return RiskLevelCritical
	}
}

// AllRiskLevels returns all valid risk levels
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}

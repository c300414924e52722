package types

import "fmt"

// ClauseStatus represents the provenance of a clause record
type ClauseStatus string

const (
	// ClauseStatusLibrary marks an immutable seed clause
	ClauseStatusLibrary ClauseStatus = "Library"
	// ClauseStatusCustom marks a fully user-owned clause
	ClauseStatusCustom ClauseStatus = "Custom"
	// ClauseStatusModified marks a version branched from a library clause
	ClauseStatusModified ClauseStatus = "Modified"
)

// IsValid checks if the clause status is valid
func (s ClauseStatus) IsValid() bool {
	switch s {
	case ClauseStatusLibrary, ClauseStatusCustom, ClauseStatusModified:
		return true
	default:
		return false
	}
}

// String returns the string representation of the clause status
func (s ClauseStatus) String() string {
	return string(s)
}

// ClauseSource indicates where a selected clause came from when it was
// attached to a contract under composition.
type ClauseSource string

const (
	ClauseSourceLibrary      ClauseSource = "library"
	ClauseSourceCustom       ClauseSource = "custom"
	ClauseSourceVersion      ClauseSource = "version"
	ClauseSourceAISuggestion ClauseSource = "ai_suggestion"
)

// IsValid checks if the clause source is valid
func (s ClauseSource) IsValid() bool {
	switch s {
	case ClauseSourceLibrary, ClauseSourceCustom, ClauseSourceVersion, ClauseSourceAISuggestion:
		return true
	default:
		return false
	}
}

// String returns the string representation of the clause source
func (s ClauseSource) String() string {
	return string(s)
}

// ParseClauseSource parses a string into a ClauseSource
func ParseClauseSource(s string) (ClauseSource, error) {
	source := ClauseSource(s)
	if !source.IsValid() {
		return "", fmt.Errorf("invalid clause source: %s", s)
	}
	return source, nil
}

// Complexity grades how involved a clause is for the reviewing party
type Complexity string

const (
	ComplexityBasic    Complexity = "Basic"
	ComplexityStandard Complexity = "Standard"
	ComplexityAdvanced Complexity = "Advanced"
	ComplexityExpert   Complexity = "Expert"
)

// IsValid checks if the complexity is valid
func (c Complexity) IsValid() bool {
	switch c {
	case ComplexityBasic, ComplexityStandard, ComplexityAdvanced, ComplexityExpert:
		return true
	default:
		return false
	}
}

// String returns the string representation of the complexity
func (c Complexity) String() string {
	return string(c)
}

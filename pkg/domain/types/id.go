package types

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// CategoryID represents a unique identifier for a risk category
type CategoryID string

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the CategoryID is valid
func (c CategoryID) Validate() error {
	if c == "" {
		return goerr.New("category ID cannot be empty")
	}
	if !idPattern.MatchString(string(c)) {
		return goerr.New("category ID must be lowercase alphanumeric with hyphens", goerr.V("id", c))
	}
	return nil
}

// String returns the string representation of CategoryID
func (c CategoryID) String() string {
	return string(c)
}

// FactorID represents a unique identifier for a risk factor within a category
type FactorID string

// Validate checks if the FactorID is valid
func (f FactorID) Validate() error {
	if f == "" {
		return goerr.New("factor ID cannot be empty")
	}
	if !idPattern.MatchString(string(f)) {
		return goerr.New("factor ID must be lowercase alphanumeric with hyphens", goerr.V("id", f))
	}
	return nil
}

// String returns the string representation of FactorID
func (f FactorID) String() string {
	return string(f)
}

// ContractID is a short uppercase token identifying a generated contract
type ContractID string

// NewContractID generates a new contract ID from a random UUID prefix
func NewContractID() ContractID {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ContractID(strings.ToUpper(raw[:8]))
}

// String returns the string representation of ContractID
func (c ContractID) String() string {
	return string(c)
}

package model

import (
	"time"

	"github.com/charter-lab/charterforge/pkg/domain/types"
)

// VesselInfo holds the vessel specifications section of a contract.
type VesselInfo struct {
	Name           string
	Type           string
	LengthOverall  float64
	Beam           float64
	Draft          float64
	OfficialNumber string
	FlagState      string
	GuestCapacity  int
	CrewCapacity   int
	EnginePower    int
	MaxSpeed       float64
	CruisingSpeed  float64
}

// CharterTerms holds the charter period and location terms.
type CharterTerms struct {
	StartDate        time.Time
	EndDate          time.Time
	DurationDays     int
	DailyRate        float64
	Currency         string
	OperationalArea  string
	DeliveryLocation string
	ReturnLocation   string
}

// Party is one signatory of the contract.
type Party struct {
	Name    string
	Address string
	Contact string
	Email   string
	Phone   string
}

// Parties holds both signatories.
type Parties struct {
	Lessor Party
	Lessee Party
}

// FinancialTerms holds payment schedule and deposit terms.
type FinancialTerms struct {
	PaymentSchedule1   int
	PaymentSchedule2   int
	PaymentTiming      string
	SecurityDeposit    float64
	DepositMethod      string
	FuelPolicy         string
	AdditionalCosts    []string
	HullInsurance      float64
	LiabilityInsurance float64
}

// ContractMetadata holds the descriptive fields of a contract that are
// neither vessel, charter, party nor financial terms.
type ContractMetadata struct {
	TemplateName       string
	VersionNumber      string
	AgreementDate      time.Time
	BrokerInfo         string
	BrokerCommission   float64
	ContractLanguage   string
	GoverningLaw       string
	CancellationPolicy string
	SpecialRequests    string
}

// ContractDocument is the fully assembled, immutable snapshot of all
// charter data ready for rendering and export. It is distinct from the
// persistent clause library.
type ContractDocument struct {
	ID            types.ContractID
	VersionNumber string

	Vessel    VesselInfo
	Charter   CharterTerms
	Parties   Parties
	Financial FinancialTerms
	Metadata  ContractMetadata

	Assessment  *Assessment
	Mitigations []Recommendation
	Clauses     []SelectedClause

	TotalValue  float64
	GeneratedAt time.Time
}

// SnapshotInfo describes one stored contract snapshot for version
// history display, ordered by modification time.
type SnapshotInfo struct {
	ContractID types.ContractID
	Version    string
	VesselName string
	Size       int64
	ModTime    time.Time
}

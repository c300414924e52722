package render

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

//go:embed templates/contract.html.tmpl
var contractTmplSrc string

var contractTmpl = template.Must(template.New("contract").Parse(contractTmplSrc))

// HTMLRenderer renders contract documents through the embedded contract
// template. The template consumes a fixed, typed field set so missing
// fields fail at assembly time, not at render time.
type HTMLRenderer struct{}

var _ interfaces.Renderer = &HTMLRenderer{}

// NewHTML creates an HTMLRenderer.
func NewHTML() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render produces the HTML document for the contract.
func (r *HTMLRenderer) Render(ctx context.Context, doc *model.ContractDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := contractTmpl.Execute(&buf, newTemplateData(doc)); err != nil {
		return nil, goerr.Wrap(err, "failed to render contract template",
			goerr.V("contract_id", doc.ID))
	}
	return buf.Bytes(), nil
}

// templateData is the versioned field schema consumed by the contract
// template.
type templateData struct {
	ContractID    string
	VersionNumber string
	AgreementDate string
	GeneratedAt   string

	VesselName     string
	YachtType      string
	OfficialNumber string
	FlagState      string
	LengthOverall  string
	Beam           string
	Draft          string
	EnginePower    int
	MaxSpeed       string
	CruisingSpeed  string
	GuestCapacity  int
	CrewCapacity   int

	StartDate        string
	EndDate          string
	CharterDuration  int
	DailyRate        string
	TotalValue       string
	Currency         string
	OperationalArea  string
	DeliveryLocation string
	ReturnLocation   string

	LessorName    string
	LessorAddress string
	LessorEmail   string
	LessorPhone   string
	LesseeName    string
	LesseeAddress string
	LesseeEmail   string
	LesseePhone   string

	PaymentSchedule1   int
	PaymentSchedule2   int
	PaymentTiming      string
	SecurityDeposit    string
	DepositMethod      string
	FuelPolicy         string
	AdditionalCosts    string
	HullInsurance      string
	LiabilityInsurance string

	Risk    *riskData
	Clauses []clauseData

	SpecialRequests    string
	GoverningLaw       string
	CancellationPolicy string
	BrokerInfo         string
}

type riskData struct {
	Score       string
	Level       string
	Categories  []riskCategoryData
	Mitigations []mitigationData
}

type riskCategoryData struct {
	Name          string
	Weight        string
	RawScore      string
	WeightedScore string
	Factors       string
}

type mitigationData struct {
	Name        string
	Description string
	Recommended bool
}

type clauseData struct {
	Name        string
	Content     string
	Category    string
	SourceLabel string
}

func newTemplateData(doc *model.ContractDocument) *templateData {
	data := &templateData{
		ContractID:    doc.ID.String(),
		VersionNumber: doc.VersionNumber,
		AgreementDate: doc.Metadata.AgreementDate.Format("02 January 2006"),
		GeneratedAt:   doc.GeneratedAt.Format("2006-01-02 15:04:05"),

		VesselName:     doc.Vessel.Name,
		YachtType:      doc.Vessel.Type,
		OfficialNumber: doc.Vessel.OfficialNumber,
		FlagState:      doc.Vessel.FlagState,
		LengthOverall:  formatFloat(doc.Vessel.LengthOverall),
		Beam:           formatFloat(doc.Vessel.Beam),
		Draft:          formatFloat(doc.Vessel.Draft),
		EnginePower:    doc.Vessel.EnginePower,
		MaxSpeed:       formatFloat(doc.Vessel.MaxSpeed),
		CruisingSpeed:  formatFloat(doc.Vessel.CruisingSpeed),
		GuestCapacity:  doc.Vessel.GuestCapacity,
		CrewCapacity:   doc.Vessel.CrewCapacity,

		StartDate:        doc.Charter.StartDate.Format("02 January 2006"),
		EndDate:          doc.Charter.EndDate.Format("02 January 2006"),
		CharterDuration:  doc.Charter.DurationDays,
		DailyRate:        formatMoney(doc.Charter.DailyRate),
		TotalValue:       formatMoney(doc.TotalValue),
		Currency:         doc.Charter.Currency,
		OperationalArea:  doc.Charter.OperationalArea,
		DeliveryLocation: doc.Charter.DeliveryLocation,
		ReturnLocation:   doc.Charter.ReturnLocation,

		LessorName:    doc.Parties.Lessor.Name,
		LessorAddress: doc.Parties.Lessor.Address,
		LessorEmail:   doc.Parties.Lessor.Email,
		LessorPhone:   doc.Parties.Lessor.Phone,
		LesseeName:    doc.Parties.Lessee.Name,
		LesseeAddress: doc.Parties.Lessee.Address,
		LesseeEmail:   doc.Parties.Lessee.Email,
		LesseePhone:   doc.Parties.Lessee.Phone,

		PaymentSchedule1:   doc.Financial.PaymentSchedule1,
		PaymentSchedule2:   doc.Financial.PaymentSchedule2,
		PaymentTiming:      doc.Financial.PaymentTiming,
		SecurityDeposit:    formatMoney(doc.Financial.SecurityDeposit),
		DepositMethod:      doc.Financial.DepositMethod,
		FuelPolicy:         doc.Financial.FuelPolicy,
		AdditionalCosts:    joinOrDefault(doc.Financial.AdditionalCosts, "None specified"),
		HullInsurance:      formatMoney(doc.Financial.HullInsurance),
		LiabilityInsurance: formatMoney(doc.Financial.LiabilityInsurance),

		SpecialRequests:    doc.Metadata.SpecialRequests,
		GoverningLaw:       doc.Metadata.GoverningLaw,
		CancellationPolicy: doc.Metadata.CancellationPolicy,
		BrokerInfo:         doc.Metadata.BrokerInfo,
	}

	if doc.Assessment != nil {
		risk := &riskData{
			Score: fmt.Sprintf("%.2f", doc.Assessment.OverallScore),
			Level: doc.Assessment.Level.String(),
		}
		for _, cat := range doc.Assessment.Categories {
			names := make([]string, 0, len(cat.ActiveFactors))
			for _, f := range cat.ActiveFactors {
				names = append(names, f.Name)
			}
			risk.Categories = append(risk.Categories, riskCategoryData{
				Name:          cat.Name,
				Weight:        fmt.Sprintf("%.2f", cat.Weight),
				RawScore:      fmt.Sprintf("%.2f", cat.RawScore),
				WeightedScore: fmt.Sprintf("%.2f", cat.WeightedScore),
				Factors:       joinOrDefault(names, "None"),
			})
		}
		for _, rec := range doc.Mitigations {
			risk.Mitigations = append(risk.Mitigations, mitigationData{
				Name:        rec.Strategy.Name,
				Description: rec.Strategy.Description,
				Recommended: rec.Recommended,
			})
		}
		data.Risk = risk
	}

	for _, cl := range doc.Clauses {
		data.Clauses = append(data.Clauses, clauseData{
			Name:        cl.Name,
			Content:     cl.Content,
			Category:    cl.Category,
			SourceLabel: sourceLabel(cl.Source),
		})
	}

	return data
}

func sourceLabel(source types.ClauseSource) string {
	switch source {
	case types.ClauseSourceLibrary:
		return "(From Library)"
	case types.ClauseSourceVersion:
		return "(Modified Version)"
	case types.ClauseSourceAISuggestion:
		return "(AI Suggested)"
	default:
		return "(Custom)"
	}
}

func formatFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func formatMoney(v float64) string {
	whole := int64(v)
	s := fmt.Sprintf("%d", whole)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 && c != '-' {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}

func joinOrDefault(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

package clause

import (
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

// DefaultLibrary returns the built-in clause library. These records are
// seeded with status Library and are never mutated; edits branch into
// version chains instead.
func DefaultLibrary() []*model.Clause {
	return []*model.Clause{
		{
			Name:     "Standard 50/50 Payment Schedule",
			Category: "Payment Terms",
			Version:  "2.1",
			Content: `PAYMENT TERMS: The total charter fee shall be paid according to the following schedule:
a) Fifty percent (50%) of the total charter fee shall be paid as a deposit upon execution of this agreement;
b) The remaining fifty percent (50%) shall be paid no later than thirty (30) days prior to the charter commencement date;
c) All payments shall be made in the currency specified in this agreement;
d) Payment may be made by bank transfer, certified check, or other means as agreed between the parties;
e) Late payments may incur interest charges at the rate of 1.5% per month or the maximum rate permitted by law, whichever is less.`,
			Jurisdictions:  []string{"International", "EU", "US"},
			Language:       "English",
			UsageCount:     1247,
			Rating:         4.8,
			Complexity:     types.ComplexityStandard,
			Author:         "Maritime Legal Team",
			LegalNotes:     "Compliant with EU Payment Services Directive and US maritime law",
			ApplicableTo:   []string{"Bareboat", "Crewed", "Corporate"},
			RelatedClauses: []string{"Security Deposit", "Cancellation Policy"},
			RiskLevel:      types.RiskLevelLow,
		},
		{
			Name:     "Accelerated Payment Terms",
			Category: "Payment Terms",
			Version:  "1.3",
			Content: `ACCELERATED PAYMENT SCHEDULE: For charter bookings made within sixty (60) days of the charter commencement date:
a) One hundred percent (100%) of the total charter fee is due immediately upon booking confirmation;
b) No refunds will be provided except as specifically outlined in the Force Majeure clause;
c) Payment must be received and cleared before charter documents will be released;
d) Additional fees for expedited processing may apply at the rate of 2.5% of the total charter value.`,
			Jurisdictions:  []string{"International", "Caribbean"},
			Language:       "English",
			UsageCount:     342,
			Rating:         4.5,
			Complexity:     types.ComplexityAdvanced,
			Author:         "Charter Finance Team",
			LegalNotes:     "Higher risk due to accelerated timeline - ensure proper due diligence",
			ApplicableTo:   []string{"Last-minute bookings", "Corporate", "Emergency charters"},
			RelatedClauses: []string{"Force Majeure", "Document Release"},
			RiskLevel:      types.RiskLevelMedium,
		},
		{
			Name:     "Corporate Net-30 Terms",
			Category: "Payment Terms",
			Version:  "1.0",
			Content: `CORPORATE PAYMENT TERMS: For qualified corporate clients with approved credit:
a) Invoice will be issued upon charter completion;
b) Payment is due within thirty (30) days of invoice date (Net-30);
c) Client must maintain minimum credit rating of BBB or equivalent;
d) Personal guarantee may be required from corporate officers;
e) Right to demand immediate payment or additional security if credit rating falls below threshold.`,
			Jurisdictions:  []string{"US", "EU"},
			Language:       "English",
			UsageCount:     89,
			Rating:         4.2,
			Complexity:     types.ComplexityAdvanced,
			Author:         "Corporate Legal Team",
			LegalNotes:     "Requires credit check and corporate verification",
			ApplicableTo:   []string{"Corporate"},
			RelatedClauses: []string{"Credit Requirements", "Personal Guarantee"},
			RiskLevel:      types.RiskLevelHigh,
		},
		{
			Name:     "Standard Cancellation Terms",
			Category: "Cancellation Policy",
			Version:  "2.0",
			Content: `CANCELLATION POLICY: The following cancellation terms shall apply:
a) Cancellation more than 90 days prior: 10% cancellation fee of total charter value;
b) Cancellation 61-90 days prior: 25% cancellation fee;
c) Cancellation 31-60 days prior: 50% cancellation fee;
d) Cancellation 0-30 days prior: 100% cancellation fee (no refund);
e) All cancellation fees are in addition to any third-party costs already incurred.`,
			Jurisdictions:  []string{"International"},
			Language:       "English",
			UsageCount:     956,
			Rating:         4.7,
			Complexity:     types.ComplexityStandard,
			Author:         "Maritime Legal Team",
			LegalNotes:     "Graduated scale provides fair balance between client and operator protection",
			ApplicableTo:   []string{"All charter types"},
			RelatedClauses: []string{"Force Majeure", "Travel Insurance"},
			RiskLevel:      types.RiskLevelLow,
		},
		{
			Name:     "Flexible Health Emergency Cancellation",
			Category: "Cancellation Policy",
			Version:  "1.2",
			Content: `HEALTH EMERGENCY CANCELLATION PROTECTION: In addition to standard cancellation terms:
a) Full refund (minus processing fees) if government travel restrictions prevent charter;
b) 50% refund if the client is medically certified unfit to travel within 14 days of charter;
c) Rebooking option within 12 months with no penalties if health restrictions apply;
d) Charter may be postponed up to 48 hours before start date due to health concerns;
e) All health-related cancellations require official documentation.`,
			Jurisdictions:  []string{"International"},
			Language:       "English",
			UsageCount:     234,
			Rating:         4.9,
			Complexity:     types.ComplexityAdvanced,
			Author:         "Risk Management Team",
			LegalNotes:     "Requires verification of health restrictions and documentation",
			ApplicableTo:   []string{"International travel"},
			RelatedClauses: []string{"Health Requirements", "Travel Documentation"},
			RiskLevel:      types.RiskLevelMedium,
		},
		{
			Name:     "Comprehensive Hull Insurance",
			Category: "Insurance Requirements",
			Version:  "2.2",
			Content: `HULL INSURANCE REQUIREMENTS: The vessel must maintain comprehensive marine insurance:
a) Minimum hull value coverage as stated in this agreement;
b) Coverage must include collision, fire, theft, and total loss;
c) Policy must name charterer as additional insured party;
d) Deductible not to exceed 1% of vessel value or USD 10,000, whichever is greater;
e) Insurance certificate must be provided 30 days prior to charter commencement.`,
			Jurisdictions:  []string{"International", "EU"},
			Language:       "English",
			UsageCount:     782,
			Rating:         4.6,
			Complexity:     types.ComplexityStandard,
			Author:         "Insurance Specialists",
			LegalNotes:     "Essential for vessels over USD 500,000 value",
			ApplicableTo:   []string{"High-value vessels", "Bareboat charters"},
			RelatedClauses: []string{"Liability Insurance", "Security Deposit"},
			RiskLevel:      types.RiskLevelHigh,
		},
	}
}

package http

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/service/contract"
	"github.com/charter-lab/charterforge/pkg/usecase"
	"github.com/charter-lab/charterforge/pkg/utils/errutil"
)

type generateRequest struct {
	Vessel struct {
		Name           string  `json:"name"`
		Type           string  `json:"type"`
		LengthOverall  float64 `json:"length_overall"`
		Beam           float64 `json:"beam"`
		Draft          float64 `json:"draft"`
		OfficialNumber string  `json:"official_number"`
		FlagState      string  `json:"flag_state"`
		GuestCapacity  int     `json:"guest_capacity"`
		CrewCapacity   int     `json:"crew_capacity"`
		EnginePower    int     `json:"engine_power"`
		MaxSpeed       float64 `json:"max_speed"`
		CruisingSpeed  float64 `json:"cruising_speed"`
	} `json:"vessel"`

	Charter struct {
		StartDate        time.Time `json:"start_date"`
		EndDate          time.Time `json:"end_date"`
		DailyRate        float64   `json:"daily_rate"`
		Currency         string    `json:"currency"`
		OperationalArea  string    `json:"operational_area"`
		DeliveryLocation string    `json:"delivery_location"`
		ReturnLocation   string    `json:"return_location"`
	} `json:"charter"`

	Parties struct {
		Lessor partyRequest `json:"lessor"`
		Lessee partyRequest `json:"lessee"`
	} `json:"parties"`

	Financial struct {
		PaymentSchedule1   int      `json:"payment_schedule_1"`
		PaymentSchedule2   int      `json:"payment_schedule_2"`
		PaymentTiming      string   `json:"payment_timing"`
		SecurityDeposit    float64  `json:"security_deposit"`
		DepositMethod      string   `json:"deposit_method"`
		FuelPolicy         string   `json:"fuel_policy"`
		AdditionalCosts    []string `json:"additional_costs"`
		HullInsurance      float64  `json:"hull_insurance"`
		LiabilityInsurance float64  `json:"liability_insurance"`
	} `json:"financial"`

	Metadata struct {
		TemplateName       string    `json:"template_name"`
		VersionNumber      string    `json:"version_number"`
		AgreementDate      time.Time `json:"agreement_date"`
		BrokerInfo         string    `json:"broker_info"`
		BrokerCommission   float64   `json:"broker_commission"`
		ContractLanguage   string    `json:"contract_language"`
		GoverningLaw       string    `json:"governing_law"`
		CancellationPolicy string    `json:"cancellation_policy"`
		SpecialRequests    string    `json:"special_requests"`
	} `json:"metadata"`

	RiskSelection  map[string][]string `json:"risk_selection"`
	MaxMitigations int                 `json:"max_mitigations"`
	Clauses        []selectedClause    `json:"clauses"`
}

type partyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type selectedClause struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Source   string `json:"source"`
}

type generateResponse struct {
	Document *model.ContractDocument `json:"document"`
	HTML     string                  `json:"html"`
	PDF      string                  `json:"pdf_base64"`
}

func contractGenerateHandler(uc *usecase.ContractUseCase, riskUC *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		input := contract.AssembleInput{
			Vessel: model.VesselInfo{
				Name:           req.Vessel.Name,
				Type:           req.Vessel.Type,
				LengthOverall:  req.Vessel.LengthOverall,
				Beam:           req.Vessel.Beam,
				Draft:          req.Vessel.Draft,
				OfficialNumber: req.Vessel.OfficialNumber,
				FlagState:      req.Vessel.FlagState,
				GuestCapacity:  req.Vessel.GuestCapacity,
				CrewCapacity:   req.Vessel.CrewCapacity,
				EnginePower:    req.Vessel.EnginePower,
				MaxSpeed:       req.Vessel.MaxSpeed,
				CruisingSpeed:  req.Vessel.CruisingSpeed,
			},
			Charter: model.CharterTerms{
				StartDate:        req.Charter.StartDate,
				EndDate:          req.Charter.EndDate,
				DailyRate:        req.Charter.DailyRate,
				Currency:         req.Charter.Currency,
				OperationalArea:  req.Charter.OperationalArea,
				DeliveryLocation: req.Charter.DeliveryLocation,
				ReturnLocation:   req.Charter.ReturnLocation,
			},
			Parties: model.Parties{
				Lessor: toParty(req.Parties.Lessor),
				Lessee: toParty(req.Parties.Lessee),
			},
			Financial: model.FinancialTerms{
				PaymentSchedule1:   req.Financial.PaymentSchedule1,
				PaymentSchedule2:   req.Financial.PaymentSchedule2,
				PaymentTiming:      req.Financial.PaymentTiming,
				SecurityDeposit:    req.Financial.SecurityDeposit,
				DepositMethod:      req.Financial.DepositMethod,
				FuelPolicy:         req.Financial.FuelPolicy,
				AdditionalCosts:    req.Financial.AdditionalCosts,
				HullInsurance:      req.Financial.HullInsurance,
				LiabilityInsurance: req.Financial.LiabilityInsurance,
			},
			Metadata: model.ContractMetadata{
				TemplateName:       req.Metadata.TemplateName,
				VersionNumber:      req.Metadata.VersionNumber,
				AgreementDate:      req.Metadata.AgreementDate,
				BrokerInfo:         req.Metadata.BrokerInfo,
				BrokerCommission:   req.Metadata.BrokerCommission,
				ContractLanguage:   req.Metadata.ContractLanguage,
				GoverningLaw:       req.Metadata.GoverningLaw,
				CancellationPolicy: req.Metadata.CancellationPolicy,
				SpecialRequests:    req.Metadata.SpecialRequests,
			},
		}

		for _, cl := range req.Clauses {
			source := types.ClauseSource(cl.Source)
			if !source.IsValid() {
				source = types.ClauseSourceCustom
			}
			input.Clauses = append(input.Clauses, model.SelectedClause{
				Name:     cl.Name,
				Content:  cl.Content,
				Category: cl.Category,
				Source:   source,
			})
		}

		if len(req.RiskSelection) > 0 {
			selection := make(model.Selection, len(req.RiskSelection))
			for cat, factors := range req.RiskSelection {
				ids := make([]types.FactorID, len(factors))
				for i, f := range factors {
					ids[i] = types.FactorID(f)
				}
				selection[types.CategoryID(cat)] = ids
			}

			assessment := riskUC.Assess(r.Context(), selection)
			input.Assessment = assessment

			mitigations, err := riskUC.Recommend(r.Context(), assessment.OverallScore, req.MaxMitigations)
			if err != nil {
				errutil.HandleHTTP(r.Context(), w, err)
				return
			}
			input.Mitigations = mitigations
		}

		generated, err := uc.Generate(r.Context(), input)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusCreated, generateResponse{
			Document: generated.Document,
			HTML:     string(generated.HTML),
			PDF:      base64.StdEncoding.EncodeToString(generated.PDF),
		})
	}
}

func toParty(p partyRequest) model.Party {
	return model.Party{
		Name:    p.Name,
		Address: p.Address,
		Contact: p.Contact,
		Email:   p.Email,
		Phone:   p.Phone,
	}
}

func contractListHandler(uc *usecase.ContractUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := uc.List(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, map[string]any{"contracts": docs})
	}
}

func contractGetHandler(uc *usecase.ContractUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := uc.Get(r.Context(), types.ContractID(chi.URLParam(r, "id")))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, doc)
	}
}

func contractHTMLHandler(uc *usecase.ContractUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		html, err := uc.RenderHTML(r.Context(), types.ContractID(chi.URLParam(r, "id")))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(html) //nolint:errcheck // header already committed
	}
}

func contractPDFHandler(uc *usecase.ContractUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ContractID(chi.URLParam(r, "id"))
		pdf, err := uc.ExportPDF(r.Context(), id)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="contract_`+id.String()+`.pdf"`)
		w.Write(pdf) //nolint:errcheck // header already committed
	}
}

func contractSnapshotsHandler(uc *usecase.ContractUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshots, err := uc.Snapshots(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, map[string]any{"snapshots": snapshots})
	}
}

func contractSnapshotHTMLHandler(uc *usecase.ContractUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		html, err := uc.SnapshotHTML(r.Context(),
			types.ContractID(chi.URLParam(r, "id")),
			chi.URLParam(r, "version"),
		)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(html) //nolint:errcheck // header already committed
	}
}

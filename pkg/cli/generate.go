package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/charter-lab/charterforge/pkg/cli/config"
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/service/contract"
	"github.com/charter-lab/charterforge/pkg/service/mitigation"
	"github.com/charter-lab/charterforge/pkg/service/pdf"
	"github.com/charter-lab/charterforge/pkg/service/render"
	"github.com/charter-lab/charterforge/pkg/service/risk"
	"github.com/charter-lab/charterforge/pkg/utils/logging"
)

// charterInput is the TOML schema of a one-shot charter description
type charterInput struct {
	Vessel struct {
		Name           string  `toml:"name"`
		Type           string  `toml:"type"`
		LengthOverall  float64 `toml:"length_overall"`
		Beam           float64 `toml:"beam"`
		Draft          float64 `toml:"draft"`
		OfficialNumber string  `toml:"official_number"`
		FlagState      string  `toml:"flag_state"`
		GuestCapacity  int     `toml:"guest_capacity"`
		CrewCapacity   int     `toml:"crew_capacity"`
		EnginePower    int     `toml:"engine_power"`
		MaxSpeed       float64 `toml:"max_speed"`
		CruisingSpeed  float64 `toml:"cruising_speed"`
	} `toml:"vessel"`

	Charter struct {
		StartDate        string  `toml:"start_date"`
		EndDate          string  `toml:"end_date"`
		DailyRate        float64 `toml:"daily_rate"`
		Currency         string  `toml:"currency"`
		OperationalArea  string  `toml:"operational_area"`
		DeliveryLocation string  `toml:"delivery_location"`
		ReturnLocation   string  `toml:"return_location"`
	} `toml:"charter"`

	Lessor struct {
		Name    string `toml:"name"`
		Address string `toml:"address"`
		Email   string `toml:"email"`
		Phone   string `toml:"phone"`
	} `toml:"lessor"`

	Lessee struct {
		Name    string `toml:"name"`
		Address string `toml:"address"`
		Email   string `toml:"email"`
		Phone   string `toml:"phone"`
	} `toml:"lessee"`

	Financial struct {
		PaymentSchedule1   int      `toml:"payment_schedule_1"`
		PaymentSchedule2   int      `toml:"payment_schedule_2"`
		PaymentTiming      string   `toml:"payment_timing"`
		SecurityDeposit    float64  `toml:"security_deposit"`
		DepositMethod      string   `toml:"deposit_method"`
		FuelPolicy         string   `toml:"fuel_policy"`
		AdditionalCosts    []string `toml:"additional_costs"`
		HullInsurance      float64  `toml:"hull_insurance"`
		LiabilityInsurance float64  `toml:"liability_insurance"`
	} `toml:"financial"`

	Metadata struct {
		VersionNumber      string `toml:"version_number"`
		AgreementDate      string `toml:"agreement_date"`
		GoverningLaw       string `toml:"governing_law"`
		CancellationPolicy string `toml:"cancellation_policy"`
		SpecialRequests    string `toml:"special_requests"`
		BrokerInfo         string `toml:"broker_info"`
	} `toml:"metadata"`

	RiskSelection map[string][]string `toml:"risk_selection"`

	Clauses []struct {
		Name     string `toml:"name"`
		Category string `toml:"category"`
		Content  string `toml:"content"`
		Source   string `toml:"source"`
	} `toml:"clause"`
}

func cmdGenerate() *cli.Command {
	var inputPath string
	var outDir string
	var configPath string

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate a contract (HTML + PDF) from a charter description file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Usage:       "Path to charter description TOML file",
				Required:    true,
				Sources:     cli.EnvVars("CHARTERFORGE_INPUT"),
				Destination: &inputPath,
			},
			&cli.StringFlag{
				Name:        "out-dir",
				Usage:       "Output directory for generated files",
				Value:       ".",
				Sources:     cli.EnvVars("CHARTERFORGE_OUT_DIR"),
				Destination: &outDir,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Path to TOML configuration. Empty uses built-in defaults.",
				Sources:     cli.EnvVars("CHARTERFORGE_CONFIG"),
				Destination: &configPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			appCfg, err := config.LoadAppConfiguration(configPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			input, err := loadCharterInput(inputPath)
			if err != nil {
				return err
			}

			assembleInput, err := input.toAssembleInput()
			if err != nil {
				return err
			}

			// Risk assessment from the configured model
			if len(input.RiskSelection) > 0 {
				engine := risk.New(appCfg.RiskCategories())
				selection := make(model.Selection, len(input.RiskSelection))
				for cat, factors := range input.RiskSelection {
					ids := make([]types.FactorID, len(factors))
					for i, f := range factors {
						ids[i] = types.FactorID(f)
					}
					selection[types.CategoryID(cat)] = ids
				}

				assessment := engine.Compute(selection)
				assembleInput.Assessment = assessment
				assembleInput.Mitigations = mitigation.Recommend(
					assessment.OverallScore, appCfg.MitigationCatalog(), 0)
			}

			doc, err := contract.Assemble(*assembleInput)
			if err != nil {
				return goerr.Wrap(err, "failed to assemble contract")
			}

			html, err := render.NewHTML().Render(ctx, doc)
			if err != nil {
				return goerr.Wrap(err, "failed to render contract")
			}
			pdfData, err := pdf.New().Export(ctx, doc)
			if err != nil {
				return goerr.Wrap(err, "failed to export contract PDF")
			}

			if err := os.MkdirAll(outDir, 0o750); err != nil {
				return goerr.Wrap(err, "failed to create output directory", goerr.V("path", outDir))
			}

			base := fmt.Sprintf("contract_v%s_%s", doc.VersionNumber, doc.ID)
			htmlPath := filepath.Join(outDir, base+".html")
			pdfPath := filepath.Join(outDir, base+".pdf")

			if err := os.WriteFile(htmlPath, html, 0o640); err != nil {
				return goerr.Wrap(err, "failed to write HTML output", goerr.V("path", htmlPath))
			}
			if err := os.WriteFile(pdfPath, pdfData, 0o640); err != nil {
				return goerr.Wrap(err, "failed to write PDF output", goerr.V("path", pdfPath))
			}

			logger := logging.Default()
			logger.Info("Contract generated",
				"contract_id", doc.ID,
				"vessel", doc.Vessel.Name,
				"total_value", doc.TotalValue,
				"html", htmlPath,
				"pdf", pdfPath,
			)
			if doc.Assessment != nil {
				logger.Info("Risk assessment",
					"score", doc.Assessment.OverallScore,
					"level", doc.Assessment.Level,
				)
			}
			return nil
		},
	}
}

func loadCharterInput(path string) (*charterInput, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read charter input", goerr.V("path", path))
	}

	var input charterInput
	if err := toml.Unmarshal(data, &input); err != nil {
		return nil, goerr.Wrap(err, "failed to parse charter input", goerr.V("path", path))
	}
	return &input, nil
}

func (in *charterInput) toAssembleInput() (*contract.AssembleInput, error) {
	startDate, err := parseDate(in.Charter.StartDate)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid charter start date")
	}
	endDate, err := parseDate(in.Charter.EndDate)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid charter end date")
	}

	agreementDate := time.Now().UTC()
	if in.Metadata.AgreementDate != "" {
		agreementDate, err = parseDate(in.Metadata.AgreementDate)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid agreement date")
		}
	}

	out := &contract.AssembleInput{
		Vessel: model.VesselInfo{
			Name:           in.Vessel.Name,
			Type:           in.Vessel.Type,
			LengthOverall:  in.Vessel.LengthOverall,
			Beam:           in.Vessel.Beam,
			Draft:          in.Vessel.Draft,
			OfficialNumber: in.Vessel.OfficialNumber,
			FlagState:      in.Vessel.FlagState,
			GuestCapacity:  in.Vessel.GuestCapacity,
			CrewCapacity:   in.Vessel.CrewCapacity,
			EnginePower:    in.Vessel.EnginePower,
			MaxSpeed:       in.Vessel.MaxSpeed,
			CruisingSpeed:  in.Vessel.CruisingSpeed,
		},
		Charter: model.CharterTerms{
			StartDate:        startDate,
			EndDate:          endDate,
			DailyRate:        in.Charter.DailyRate,
			Currency:         in.Charter.Currency,
			OperationalArea:  in.Charter.OperationalArea,
			DeliveryLocation: in.Charter.DeliveryLocation,
			ReturnLocation:   in.Charter.ReturnLocation,
		},
		Parties: model.Parties{
			Lessor: model.Party{
				Name:    in.Lessor.Name,
				Address: in.Lessor.Address,
				Email:   in.Lessor.Email,
				Phone:   in.Lessor.Phone,
			},
			Lessee: model.Party{
				Name:    in.Lessee.Name,
				Address: in.Lessee.Address,
				Email:   in.Lessee.Email,
				Phone:   in.Lessee.Phone,
			},
		},
		Financial: model.FinancialTerms{
			PaymentSchedule1:   in.Financial.PaymentSchedule1,
			PaymentSchedule2:   in.Financial.PaymentSchedule2,
			PaymentTiming:      in.Financial.PaymentTiming,
			SecurityDeposit:    in.Financial.SecurityDeposit,
			DepositMethod:      in.Financial.DepositMethod,
			FuelPolicy:         in.Financial.FuelPolicy,
			AdditionalCosts:    in.Financial.AdditionalCosts,
			HullInsurance:      in.Financial.HullInsurance,
			LiabilityInsurance: in.Financial.LiabilityInsurance,
		},
		Metadata: model.ContractMetadata{
			VersionNumber:      in.Metadata.VersionNumber,
			AgreementDate:      agreementDate,
			GoverningLaw:       in.Metadata.GoverningLaw,
			CancellationPolicy: in.Metadata.CancellationPolicy,
			SpecialRequests:    in.Metadata.SpecialRequests,
			BrokerInfo:         in.Metadata.BrokerInfo,
		},
	}

	for _, cl := range in.Clauses {
		source := types.ClauseSource(cl.Source)
		if !source.IsValid() {
			source = types.ClauseSourceCustom
		}
		out.Clauses = append(out.Clauses, model.SelectedClause{
			Name:     cl.Name,
			Content:  cl.Content,
			Category: cl.Category,
			Source:   source,
		})
	}

	return out, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "date must be YYYY-MM-DD", goerr.V("value", s))
	}
	return t, nil
}

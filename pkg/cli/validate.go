package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/charter-lab/charterforge/pkg/cli/config"
)

func cmdValidate() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a TOML configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Path to TOML configuration. Empty validates the built-in defaults.",
				Sources:     cli.EnvVars("CHARTERFORGE_CONFIG"),
				Destination: &configPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			bold := color.New(color.Bold)
			green := color.New(color.FgGreen)
			red := color.New(color.FgRed)
			yellow := color.New(color.FgYellow)

			target := configPath
			if target == "" {
				target = "(built-in defaults)"
			}
			bold.Printf("Validating configuration: %s\n\n", target)

			cfg, err := config.LoadAppConfiguration(configPath)
			if err != nil {
				red.Println("✗ Configuration is invalid")
				fmt.Println()
				printValidationError(err)
				return goerr.Wrap(err, "configuration validation failed")
			}

			green.Println("✓ Configuration is valid")
			fmt.Println()

			var totalWeight float64
			var factorCount int
			for _, cat := range cfg.Categories {
				totalWeight += cat.Weight
				factorCount += len(cat.Factors)
			}

			bold.Println("Risk model")
			fmt.Printf("  Categories:   %d (total weight %.2f)\n", len(cfg.Categories), totalWeight)
			fmt.Printf("  Risk factors: %d\n", factorCount)
			for _, cat := range cfg.Categories {
				fmt.Printf("    %-20s weight=%.2f factors=%d\n", cat.ID, cat.Weight, len(cat.Factors))
			}
			fmt.Println()

			bold.Println("Mitigation catalog")
			fmt.Printf("  Strategies: %d\n", len(cfg.Mitigations))
			fmt.Println()

			bold.Println("Clause seeds")
			if len(cfg.Clauses) == 0 {
				fmt.Println("  (none)")
			} else {
				fmt.Printf("  Clauses: %d\n", len(cfg.Clauses))
			}

			if len(cfg.Categories) == 0 {
				fmt.Println()
				yellow.Println("! No risk categories defined, risk assessment will always score zero")
			}

			return nil
		},
	}
}

// printValidationError unwraps goerr values so that the offending entry
// is visible without parsing a JSON log line.
func printValidationError(err error) {
	var tomlErr *toml.DecodeError
	if errors.As(err, &tomlErr) {
		row, col := tomlErr.Position()
		fmt.Fprintf(os.Stderr, "  parse error at line %d, column %d:\n%s\n", row, col, tomlErr.String())
		return
	}

	fmt.Fprintf(os.Stderr, "  %s\n", err.Error())
	if goErr := goerr.Unwrap(err); goErr != nil {
		for k, v := range goErr.Values() {
			fmt.Fprintf(os.Stderr, "    %s: %v\n", k, v)
		}
	}
}

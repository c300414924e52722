package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/charter-lab/charterforge/pkg/cli/config"
	httpctrl "github.com/charter-lab/charterforge/pkg/controller/http"
	"github.com/charter-lab/charterforge/pkg/service/clause"
	"github.com/charter-lab/charterforge/pkg/service/pdf"
	"github.com/charter-lab/charterforge/pkg/service/render"
	"github.com/charter-lab/charterforge/pkg/service/suggest"
	"github.com/charter-lab/charterforge/pkg/usecase"
	"github.com/charter-lab/charterforge/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var configPath string
	var repoCfg config.Repository
	var archiveCfg config.Archive
	var geminiCfg config.Gemini
	var slackCfg config.Slack
	var authCfg config.Auth

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CHARTERFORGE_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to TOML configuration (risk model, mitigation catalog, clause seeds). Empty uses built-in defaults.",
			Sources:     cli.EnvVars("CHARTERFORGE_CONFIG"),
			Destination: &configPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, archiveCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			appCfg, err := config.LoadAppConfiguration(configPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(ctx); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			archive, err := archiveCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize snapshot archive")
			}

			authUC, err := authCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}
			if authUC == nil {
				logging.Default().Warn("Running without authentication (development only)")
			}

			ucOpts := []usecase.Option{
				usecase.WithRiskCategories(appCfg.RiskCategories()),
				usecase.WithArchive(archive),
				usecase.WithRenderer(render.NewHTML()),
				usecase.WithExporter(pdf.New()),
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}
			if llmClient != nil {
				logging.Default().Info("AI clause suggestions enabled (Gemini)")
			} else {
				logging.Default().Info("Gemini not configured, clause suggestions use the rule set")
			}
			ucOpts = append(ucOpts, usecase.WithSuggester(suggest.New(llmClient)))

			notifier, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack notifications")
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
				logging.Default().Info("Slack contract notifications enabled")
			}

			if authUC != nil {
				ucOpts = append(ucOpts, usecase.WithAuth(authUC))
			}

			uc := usecase.New(repo, ucOpts...)

			// Seed the clause library and mitigation catalog
			if err := uc.Clause.Seed(ctx, clause.DefaultLibrary()); err != nil {
				return goerr.Wrap(err, "failed to seed clause library")
			}
			if err := uc.Clause.Seed(ctx, appCfg.ClauseSeeds()); err != nil {
				return goerr.Wrap(err, "failed to seed configured clauses")
			}
			if err := uc.Risk.SeedStrategies(ctx, appCfg.MitigationCatalog()); err != nil {
				return goerr.Wrap(err, "failed to seed mitigation catalog")
			}

			var httpOpts []httpctrl.Options
			if authUC != nil {
				httpOpts = append(httpOpts, httpctrl.WithAuth(authUC))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

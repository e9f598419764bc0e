package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"jelajah/cmd/fx/completion_fx"
	"jelajah/internal/config"
	"jelajah/internal/infra"
	"jelajah/internal/models/request_models"
	"jelajah/internal/repositories"
	"jelajah/internal/services"
	"jelajah/pkg/metrics"
	"jelajah/pkg/utils"
)

func newPlanCmd() *cobra.Command {
	var (
		req request_models.TravelRequest
		raw bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate one itinerary in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runPlan(ctx, cmd, req, raw)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&req.Destination, "destination", "d", "", "where you are going")
	flags.IntVarP(&req.Duration, "days", "n", 3, "trip length in days (1-30)")
	flags.StringVarP(&req.Interests, "interests", "i", "", "what you enjoy, e.g. \"food, temples\"")
	flags.BoolVar(&raw, "raw", false, "print the decoded itinerary as JSON")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("interests")

	return cmd
}

func runPlan(ctx context.Context, cmd *cobra.Command, req request_models.TravelRequest, raw bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := infra.NewLogger("warn", "console")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	completion, err := utils.NewCompletionClient(ctx, completion_fx.CompletionConfig(cfg))
	if err != nil {
		return err
	}

	itineraryService := services.NewItineraryService(
		completion,
		services.NewBudgetService(utils.NewAmountFormatter(cfg.DisplayLocale)),
		repositories.NewMemoryGenerationLogRepository(1),
		metrics.New(),
		logger,
		cfg.PromptLanguage,
	)

	fmt.Fprintln(cmd.ErrOrStderr(), "Planning your trip…")
	generated, err := itineraryService.Generate(ctx, "cli", req)
	if errors.Is(err, utils.ErrInvalidInput) {
		return err
	}
	if err != nil {
		return errors.New(utils.UserMessage(err))
	}

	out := cmd.OutOrStdout()
	if raw {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(generated)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	rendered, err := renderer.Render(services.ItineraryMarkdown(req, generated))
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}

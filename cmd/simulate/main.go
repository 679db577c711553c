// Package main provides a CLI for running payout simulations against the
// stored draw history without starting the portal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pool-portal/internal/config"
	"github.com/yourusername/pool-portal/internal/engine"
	"github.com/yourusername/pool-portal/internal/models"
	"github.com/yourusername/pool-portal/internal/repository"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		betAmount  = flag.String("bet", "100", "Hypothetical bet amount")
		poolSpec   = flag.String("pool", "", "Pool state as category=amount pairs, comma separated (e.g. win=1000,loss=500)")
	)
	flag.Parse()

	logger := logrus.New()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	categories := cfg.CategorySet()

	amount, err := decimal.NewFromString(*betAmount)
	if err != nil {
		logger.Fatalf("Invalid bet amount %q: %v", *betAmount, err)
	}
	pool, err := parsePool(*poolSpec, categories)
	if err != nil {
		logger.Fatalf("Invalid pool: %v", err)
	}

	ctx := context.Background()
	repos, err := repository.New(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to open record store: %v", err)
	}

	records, err := repos.Outcomes.List(ctx)
	if err != nil {
		logger.Fatalf("Failed to load history: %v", err)
	}

	probs, err := engine.Estimate(records, categories)
	if err != nil {
		logger.Fatalf("Failed to estimate probabilities: %v", err)
	}

	result, err := engine.Project(models.BetRequest{Amount: amount, Pool: pool}, probs, categories)
	if err != nil {
		logger.Fatalf("Failed to project payouts: %v", err)
	}

	best, bestP := probs.Best(categories)
	fmt.Printf("History: %d draws\n", len(records))
	fmt.Printf("Most likely: %s (%.1f%%)\n", best, bestP*100)
	fmt.Printf("Bet: %s\n\n", amount.StringFixed(2))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tPROBABILITY\tPOOL\tPAYOUT IF WIN\tEXPECTED VALUE")
	for _, c := range categories {
		projection := result[c]
		fmt.Fprintf(w, "%s\t%.4f\t%s\t%s\t%s\n",
			c,
			probs[c],
			pool[c].StringFixed(2),
			projection.PayoutIfWin.StringFixed(2),
			projection.ExpectedValue.StringFixed(2),
		)
	}
	w.Flush()
}

// parsePool turns "win=1000,loss=500" into a pool mapping. Categories not
// mentioned hold zero.
func parsePool(spec string, categories []models.Category) (models.PoolMapping, error) {
	pool := make(models.PoolMapping, len(categories))
	for _, c := range categories {
		pool[c] = decimal.Zero
	}
	if spec == "" {
		return pool, nil
	}

	for _, pair := range strings.Split(spec, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}
		category := models.Category(name)
		if !models.ContainsCategory(categories, category) {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		amount, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("amount for %q: %w", name, err)
		}
		pool[category] = amount
	}
	return pool, nil
}

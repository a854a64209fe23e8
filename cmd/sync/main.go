// Command sync runs one CSuite → HubSpot sync from the terminal and
// prints the result tally as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/AMCF-2026/jidhr/internal/config"
	"github.com/AMCF-2026/jidhr/internal/csuite"
	"github.com/AMCF-2026/jidhr/internal/hubspot"
	"github.com/AMCF-2026/jidhr/internal/pkg/logger"
	"github.com/AMCF-2026/jidhr/internal/sync"
)

func main() {
	syncType := flag.String("type", "", "sync to run: donations, events, or newsletter")
	dryRun := flag.Bool("dry-run", false, "report intended changes without writing to HubSpot")
	quick := flag.Bool("quick", false, "cap the CSuite read at a sample for a fast pass")
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		logger.SetLevel(logger.DEBUG)
	}

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if missing := cfg.Validate(); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "missing credentials: %s\n", strings.Join(missing, ", "))
		os.Exit(1)
	}

	csuiteClient := csuite.NewClient(csuite.Config{
		APIKey:    cfg.CSuite.APIKey,
		APISecret: cfg.CSuite.APISecret,
		BaseURL:   cfg.CSuite.BaseURL,
		Env:       cfg.CSuite.Env,
		Timeout:   cfg.CSuite.Timeout(),
	})
	hubspotClient := hubspot.NewClient(hubspot.Config{
		AccessToken: cfg.HubSpot.AccessToken,
		BaseURL:     cfg.HubSpot.BaseURL,
		Timeout:     cfg.HubSpot.Timeout(),
	})

	opts := sync.Options{DryRun: *dryRun, Quick: *quick}
	ctx := context.Background()

	var result interface{}
	switch *syncType {
	case "donations":
		result = sync.NewDonationSync(csuiteClient, hubspotClient).Sync(ctx, opts)
	case "events":
		result = sync.NewEventSync(csuiteClient, hubspotClient, cfg.Sync.EventOwnerID).Sync(ctx, opts)
	case "newsletter":
		result = sync.NewNewsletterSync(csuiteClient, hubspotClient, cfg.Sync.SubscriptionID).Sync(ctx, opts)
	default:
		fmt.Fprintln(os.Stderr, "usage: sync -type donations|events|newsletter [-dry-run] [-quick]")
		os.Exit(2)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}

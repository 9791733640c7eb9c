// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cms-seeder/internal/journal"
	"github.com/pdiddy/cms-seeder/internal/publish"
	"github.com/pdiddy/cms-seeder/internal/secrets"
	"github.com/pdiddy/cms-seeder/internal/seed"
	"github.com/pdiddy/cms-seeder/pkg/types"
)

var publishCmd = &cobra.Command{
	Use:   "publish <seed-file> [cms-url] [api-token]",
	Short: "Create the application, pages, and blocks of a seed document",
	Long: `Publish parses a seed document and creates its application, then every
page in document order, then each page's content blocks. The first failure
stops the run; records created before it are left in place and listed in the
journal when --journal is set.

With --dry-run nothing is sent; the payloads are logged and placeholder ids
are assigned. The CMS URL and token may come from arguments, flags,
CMS_SEEDER_CMS_URL / CMS_SEEDER_CMS_TOKEN, the config file, or
.secrets/cms-api-token.`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runPublish,
}

func init() {
	f := publishCmd.Flags()
	f.String("url", "", "CMS base URL (e.g. https://cms.example.com)")
	f.String("token", "", "CMS API token")
	f.Bool("dry-run", false, "log payloads instead of sending requests")
	f.Duration("timeout", publish.DefaultTimeout, "HTTP request timeout")
	f.Int("retries", 0, "retries for requests answered with HTTP 429")
	f.String("user-agent", publish.DefaultUserAgent, "User-Agent header")
	f.String("journal", "", "SQLite journal of created records (empty disables)")
	f.String("report", "", "write a YAML run report to this file")

	_ = viper.BindPFlag("cms.url", f.Lookup("url"))
	_ = viper.BindPFlag("cms.token", f.Lookup("token"))
	_ = viper.BindPFlag("timeout", f.Lookup("timeout"))
	_ = viper.BindPFlag("retries", f.Lookup("retries"))
	_ = viper.BindPFlag("user_agent", f.Lookup("user-agent"))
	_ = viper.BindPFlag("journal", f.Lookup("journal"))

	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	seedFile := args[0]
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	reportPath, _ := cmd.Flags().GetString("report")

	log, err := newLogger("cms-seeder.publish")
	if err != nil {
		return err
	}

	cfg := publishConfig(args[1:], dryRun)
	if !dryRun && (cfg.BaseURL == "" || cfg.Token == "") {
		return fmt.Errorf("CMS URL and API token are required: pass them as arguments, flags, or CMS_SEEDER_CMS_URL / CMS_SEEDER_CMS_TOKEN")
	}

	doc, err := seed.ParseFile(seedFile, log)
	if err != nil {
		log.Error(err.Error())
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := publish.Options{Logger: log}

	var jnl *journal.Journal
	if path := viper.GetString("journal"); path != "" {
		jnl, err = journal.Open(path)
		if err != nil {
			return err
		}
		defer jnl.Close()
		opts.Recorder = jnl
	}

	pub, err := publish.New(cfg, opts)
	if err != nil {
		log.Error(err.Error())
		return err
	}

	if jnl != nil {
		start := types.RunSummary{RunID: pub.RunID(), SeedFile: seedFile, BaseURL: cfg.BaseURL, DryRun: dryRun, StartedAt: time.Now()}
		if err := jnl.BeginRun(ctx, start); err != nil {
			log.Warn("Could not journal run: " + err.Error())
			jnl = nil
		}
	}

	summary, runErr := pub.Publish(ctx, doc)
	summary.SeedFile = seedFile

	if jnl != nil {
		if err := jnl.FinishRun(context.Background(), summary); err != nil {
			log.Warn("Could not journal run result: " + err.Error())
		}
	}
	if reportPath != "" {
		if err := publish.WriteReport(reportPath, summary); err != nil {
			log.Warn(err.Error())
		}
	}

	publish.FormatSummary(summary, os.Stdout)
	return runErr
}

// publishConfig assembles the publish settings. Positional arguments take
// precedence over flags, environment, and config; the token falls back to
// the secrets directory.
func publishConfig(positional []string, dryRun bool) types.PublishConfig {
	var argURL, argToken string
	if len(positional) > 0 {
		argURL = positional[0]
	}
	if len(positional) > 1 {
		argToken = positional[1]
	}

	baseURL := argURL
	if baseURL == "" {
		baseURL = viper.GetString("cms.url")
	}

	return types.PublishConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
			Retries:   viper.GetInt("retries"),
		},
		BaseURL: baseURL,
		Token:   loadedSecrets.Resolve(secrets.CMSToken, argToken, viper.GetString("cms.token")),
		DryRun:  dryRun,
		Endpoints: types.Endpoints{
			Applications:  viper.GetString("endpoints.applications"),
			Pages:         viper.GetString("endpoints.pages"),
			ContentBlocks: viper.GetString("endpoints.content_blocks"),
		},
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	outreach "github.com/alnah/go-outreach"
	"github.com/alnah/go-outreach/internal/config"
	"github.com/alnah/go-outreach/internal/hints"
	"github.com/alnah/go-outreach/internal/leads"
	"github.com/alnah/go-outreach/internal/logging"
	"github.com/alnah/go-outreach/internal/sheet"
	"github.com/alnah/go-outreach/internal/smartlead"
	"github.com/alnah/go-outreach/internal/yamlutil"
)

// launcherClient is the slice of the platform client launch drives.
// Narrowed for tests.
type launcherClient interface {
	CreateCampaign(ctx context.Context, name string) (int, error)
	AddLeads(ctx context.Context, campaignID int, l []smartlead.Lead, settings smartlead.LeadSettings) error
	SaveSequences(ctx context.Context, campaignID int, steps []outreach.SequenceStep) error
	AttachEmailAccounts(ctx context.Context, campaignID int, accountIDs []int) error
	ApplySettings(ctx context.Context, campaignID int, settings smartlead.CampaignSettings) error
	ApplySchedule(ctx context.Context, campaignID int, schedule smartlead.Schedule) error
}

// Compile-time interface implementation check.
var _ launcherClient = (*smartlead.Client)(nil)

// launchPlan is everything resolved before the first API call, so a
// dry run can print it and a real run can execute it.
type launchPlan struct {
	table    *sheet.Table
	steps    []outreach.SequenceStep
	accounts map[string][]int
	sps      []string
	flags    *launchFlags
	cfg      *config.Config
}

// runLaunchCmd executes the launch command.
func runLaunchCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseLaunchFlags(args)
	if err != nil {
		return err
	}
	initLogging(env, flags.common)

	settings := loadEnvSettings(env.Getenv)
	cfg, err := resolveConfig(flags.common.config, settings)
	if err != nil {
		return err
	}

	plan, err := buildLaunchPlan(ctx, positional, flags, cfg)
	if err != nil {
		return err
	}

	if flags.dryRun {
		printLaunchPlan(plan, env)
		return nil
	}

	client, err := platformClient(settings, cfg)
	if err != nil {
		return err
	}
	return executeLaunch(ctx, client, plan, env)
}

// buildLaunchPlan validates flags and loads every input before any API
// call, so a bad accounts file fails the run up front instead of after
// half the campaigns exist.
func buildLaunchPlan(ctx context.Context, positional []string, flags *launchFlags, cfg *config.Config) (*launchPlan, error) {
	if len(positional) != 1 {
		return nil, fmt.Errorf("%w: exactly one lead export expected", ErrNoInput)
	}
	if flags.baseName == "" {
		return nil, fmt.Errorf("%w: --base-name", ErrMissingFlag)
	}
	if len(flags.templates) == 0 {
		return nil, fmt.Errorf("%w: --templates", ErrMissingFlag)
	}
	if flags.accounts == "" {
		return nil, fmt.Errorf("%w: --accounts", ErrMissingFlag)
	}

	table, err := sheet.ReadTable(positional[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, positional[0], err)
	}

	steps, err := loadSequences(ctx, flags.templates, cfg)
	if err != nil {
		return nil, err
	}

	accounts, err := loadAccountAssignments(flags.accounts)
	if err != nil {
		return nil, err
	}

	sps := flags.sps
	if len(sps) == 0 {
		sps = leads.SPSelections(table)
	}
	if len(sps) == 0 {
		return nil, fmt.Errorf("%w: lead export has no SP Selection values", ErrNoInput)
	}

	for _, sp := range sps {
		if len(accounts[sp]) == 0 {
			return nil, fmt.Errorf("%w: %q (accounts file has: %s)",
				ErrNoAccountsForSP, sp, strings.Join(accountKeys(accounts), ", "))
		}
	}

	return &launchPlan{
		table:    table,
		steps:    steps,
		accounts: accounts,
		sps:      sps,
		flags:    flags,
		cfg:      cfg,
	}, nil
}

// loadSequences compiles the template spreadsheets, or loads a single
// already-compiled .json payload directly.
func loadSequences(ctx context.Context, templates []string, cfg *config.Config) ([]outreach.SequenceStep, error) {
	if len(templates) == 1 && strings.EqualFold(filepath.Ext(templates[0]), ".json") {
		return readPayload(templates[0])
	}

	tables := make([]*sheet.Table, 0, len(templates))
	for _, path := range templates {
		table, err := sheet.ReadTable(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v%s", ErrReadInput, path, err, hints.ForUnsupportedFormat())
		}
		tables = append(tables, table)
	}
	return newCompiler(cfg).Compile(ctx, sheet.SequenceRows(sheet.Merge(tables...)))
}

// loadAccountAssignments reads the SP-to-account-IDs YAML map. Strict
// decoding: a typoed SP key should fail loud, not launch with defaults.
func loadAccountAssignments(path string) (map[string][]int, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied accounts path
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, path, err)
	}
	accounts := make(map[string][]int)
	if err := yamlutil.UnmarshalStrict(data, &accounts); err != nil {
		return nil, fmt.Errorf("parsing accounts file %s: %w", path, err)
	}
	return accounts, nil
}

// executeLaunch creates one campaign per SP selection.
func executeLaunch(ctx context.Context, client launcherClient, plan *launchPlan, env *Environment) error {
	log := logging.Component("launch")
	pause := plan.cfg.LaunchPause()

	launched := 0
	for i, sp := range plan.sps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("launch interrupted after %d campaign(s): %w", launched, err)
		}

		spLeads := leads.Select(plan.table, sp)
		if len(spLeads) == 0 {
			log.Warn().Str("sp", sp).Msg("no leads for sp selection, skipping")
			continue
		}

		name := leads.CampaignName(plan.flags.emailType, plan.flags.baseName, sp)
		if err := launchCampaign(ctx, client, plan, name, sp, spLeads); err != nil {
			return fmt.Errorf("campaign %q: %w%s", name, err, hints.ForAPIFailure())
		}
		launched++
		fmt.Fprintf(env.Stdout, "Launched %s (%d leads)\n", name, len(spLeads))

		if i < len(plan.sps)-1 && pause > 0 {
			if err := sleepCtx(ctx, pause); err != nil {
				return fmt.Errorf("launch interrupted after %d campaign(s): %w", launched, err)
			}
		}
	}

	if launched == 0 {
		return fmt.Errorf("%w: no sp selection matched any leads", ErrNoInput)
	}
	return nil
}

// launchCampaign runs the per-campaign call sequence the platform
// expects: create, leads, sequences, accounts, settings, schedule.
func launchCampaign(ctx context.Context, client launcherClient, plan *launchPlan, name, sp string, spLeads []smartlead.Lead) error {
	id, err := client.CreateCampaign(ctx, name)
	if err != nil {
		return err
	}
	if err := client.AddLeads(ctx, id, spLeads, smartlead.DefaultLeadSettings()); err != nil {
		return err
	}
	if err := client.SaveSequences(ctx, id, plan.steps); err != nil {
		return err
	}
	if err := client.AttachEmailAccounts(ctx, id, plan.accounts[sp]); err != nil {
		return err
	}
	if err := client.ApplySettings(ctx, id, campaignSettings(plan.cfg)); err != nil {
		return err
	}
	return client.ApplySchedule(ctx, id, schedulePayload(plan.cfg))
}

// printLaunchPlan lists what a real run would do.
func printLaunchPlan(plan *launchPlan, env *Environment) {
	fmt.Fprintf(env.Stdout, "Dry run: %d sequence step(s), %d sp selection(s)\n", len(plan.steps), len(plan.sps))
	for _, sp := range plan.sps {
		name := leads.CampaignName(plan.flags.emailType, plan.flags.baseName, sp)
		fmt.Fprintf(env.Stdout, "  %s: %d leads, accounts %v\n",
			name, len(leads.Select(plan.table, sp)), plan.accounts[sp])
	}
}

// platformClient builds the API client from the environment key and the
// configured base URL.
func platformClient(settings *envSettings, cfg *config.Config) (*smartlead.Client, error) {
	opts := []smartlead.ClientOption{smartlead.WithLogger(logging.Component("smartlead"))}
	if cfg.Platform.BaseURL != "" {
		opts = append(opts, smartlead.WithBaseURL(cfg.Platform.BaseURL))
	}
	client, err := smartlead.NewClient(settings.SmartleadKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForMissingAPIKey(envSmartleadKey))
	}
	return client, nil
}

// campaignSettings maps the config's unsubscribe block to the platform
// payload.
func campaignSettings(cfg *config.Config) smartlead.CampaignSettings {
	return smartlead.CampaignSettings{
		UnsubscribeText:             cfg.Platform.Unsubscribe.Text,
		StopLeadSettings:            cfg.Platform.Unsubscribe.StopLeadSettings,
		AutoPauseDomainLeadsOnReply: cfg.Platform.Unsubscribe.AutoPauseDomainLeadsOnReply,
	}
}

// schedulePayload maps the config's schedule block to the platform
// payload. The start time stays empty; the platform starts immediately.
func schedulePayload(cfg *config.Config) smartlead.Schedule {
	s := cfg.Platform.Schedule
	return smartlead.Schedule{
		Timezone:          s.Timezone,
		DaysOfTheWeek:     s.DaysOfTheWeek,
		StartHour:         s.StartHour,
		EndHour:           s.EndHour,
		MinTimeBtwEmails:  s.MinTimeBtwEmails,
		MaxNewLeadsPerDay: s.MaxNewLeadsPerDay,
	}
}

// accountKeys lists the SP keys present in the accounts file, for error
// messages.
func accountKeys(accounts map[string][]int) []string {
	keys := make([]string, 0, len(accounts))
	for k := range accounts {
		keys = append(keys, k)
	}
	return keys
}

// sleepCtx waits for d or until ctx is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

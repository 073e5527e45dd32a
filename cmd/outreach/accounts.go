package main

import (
	"context"
	"fmt"
)

// runAccountsCmd executes the accounts command: list sending mailboxes
// with their IDs so the operator can build the launch accounts file.
func runAccountsCmd(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseAccountsFlags(args)
	if err != nil {
		return err
	}
	initLogging(env, flags.common)

	settings := loadEnvSettings(env.Getenv)
	cfg, err := resolveConfig(flags.common.config, settings)
	if err != nil {
		return err
	}

	client, err := platformClient(settings, cfg)
	if err != nil {
		return err
	}

	accounts, err := client.ListEmailAccounts(ctx)
	if err != nil {
		return err
	}

	start := flags.offset
	if start > len(accounts) {
		start = len(accounts)
	}
	end := len(accounts)
	if flags.limit > 0 && start+flags.limit < end {
		end = start + flags.limit
	}

	for _, a := range accounts[start:end] {
		fmt.Fprintf(env.Stdout, "%d\t%s\t%s\n", a.ID, a.FromEmail, a.FromName)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "%d account(s), showing %d-%d\n", len(accounts), start, end)
	}
	return nil
}

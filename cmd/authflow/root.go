package main

import (
	"github.com/spf13/cobra"
)

type options struct {
	redisAddr   string
	prefix      string
	sessionFile string
	signingKey  string
	logFormat   string
	verbose     bool
	audit       bool
}

// NewRootCmd creates the root command for the authflow CLI.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "authflow",
		Short: "Sign-up, sign-in and session flows backed by Redis",
		Long: `authflow runs the account flows against a Redis-backed identity provider.

Without --redis-addr (or REDIS_ADDR) an in-process miniredis is started and all
state is discarded on exit; use "authflow demo" to see a full flow in one run.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.redisAddr, "redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
	flags.StringVar(&opts.prefix, "prefix", "authflow", "redis key prefix for accounts and sessions")
	flags.StringVar(&opts.sessionFile, "session-file", "", "file caching the signed-in user's token between runs")
	flags.StringVar(&opts.signingKey, "signing-key", "", "HS256 token key; if empty, AUTHFLOW_SIGNING_KEY env or a development key is used")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: json or text")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	flags.BoolVar(&opts.audit, "audit", false, "write audit events to stderr as JSON")

	cmd.AddCommand(
		newValidateCmd(),
		newSignUpCmd(opts),
		newSignInCmd(opts),
		newWhoAmICmd(opts),
		newSignOutCmd(opts),
		newProfileCmd(opts),
		newDemoCmd(opts),
		newMetricsCmd(opts),
	)

	return cmd
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/MrEthical07/authflow"
	"github.com/MrEthical07/authflow/metrics/export/prometheus"
	"github.com/spf13/cobra"
)

func newDemoCmd(opts *options) *cobra.Command {
	var (
		email       string
		password    string
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run sign-up, protected entry, profile and sign-out in one process",
		Long: `Run the whole account flow in one process: a protected screen while signed
out, two queued sign-ups for the same email, the protected screen again, the
profile screen, and sign-out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBackend(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer b.Close()

			out := cmd.OutOrStdout()
			if err := runDemo(cmd.Context(), out, b.engine, email, password); err != nil {
				return err
			}
			if showMetrics {
				fmt.Fprintln(out)
				fmt.Fprint(out, prometheus.NewPrometheusExporter(b.engine).Render())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "demo@example.com", "email used by the demo")
	cmd.Flags().StringVar(&password, "password", "demo-password", "password used by the demo")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print Prometheus metrics after the run")
	return cmd
}

func newMetricsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Run the demo flow quietly and print its Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBackend(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer b.Close()

			if err := runDemo(cmd.Context(), io.Discard, b.engine, "metrics@example.com", "metrics-password"); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), prometheus.NewPrometheusExporter(b.engine).Render())
			return nil
		},
	}
}

func runDemo(ctx context.Context, w io.Writer, engine *authflow.Engine, email, password string) error {
	entry := engine.EnterProtected(ctx)
	fmt.Fprintf(w, "protected screen: redirect=%t next=%s\n", entry.Redirect, entry.Next)

	queue := engine.NewSignUpQueue()
	first := queue.Submit(ctx, email, password)
	second := queue.Submit(ctx, email, password)
	for i, r := range []*authflow.Registration{first, second} {
		outcome, err := r.Wait(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "sign-up %d: %s (next=%s)\n", i+1, outcome.Message, outcome.Next)
	}

	entry = engine.EnterProtected(ctx)
	if entry.Redirect {
		fmt.Fprintf(w, "protected screen: redirect=%t next=%s\n", entry.Redirect, entry.Next)
	} else {
		fmt.Fprintf(w, "protected screen: %s\n", entry.Welcome)
	}

	printProfile(w, engine.LoadProfile(ctx))

	state := engine.SignOut(ctx, entry.Session)
	fmt.Fprintf(w, "signed out: %s\n", engine.Policy().DisplayName(state))

	entry = engine.EnterProtected(ctx)
	fmt.Fprintf(w, "protected screen: redirect=%t next=%s\n", entry.Redirect, entry.Next)
	return nil
}

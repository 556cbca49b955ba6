package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/MrEthical07/authflow"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate EMAIL PASSWORD",
		Short: "Check credentials against the sign-up rules without contacting Redis",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := authflow.ValidateCredentials(args[0], args[1])
			if !result.OK() {
				return errors.New(result.Message())
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.String())
			return nil
		},
	}
}

func newSignUpCmd(opts *options) *cobra.Command {
	var clientIP string

	cmd := &cobra.Command{
		Use:   "signup EMAIL PASSWORD",
		Short: "Create an account and sign it in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer b.Close()

			ctx := authflow.WithClientIP(cmd.Context(), clientIP)
			outcome, err := b.engine.SubmitSignUp(ctx, args[0], args[1]).Wait(ctx)
			if err != nil {
				return err
			}
			if !outcome.Succeeded() {
				return errors.New(outcome.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
			fmt.Fprintf(cmd.OutOrStdout(), "next: %s\n", outcome.Next)
			return nil
		},
	}
	cmd.Flags().StringVar(&clientIP, "ip", "", "client IP used for per-IP throttling")
	return cmd
}

func newSignInCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "signin EMAIL PASSWORD",
		Short: "Sign an existing account in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer b.Close()

			outcome := b.engine.SignIn(cmd.Context(), args[0], args[1])
			if !outcome.Succeeded() {
				return errors.New(outcome.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
			return nil
		},
	}
}

func newWhoAmICmd(opts *options) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user, as a protected screen would",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBackend(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer b.Close()

			ctx := cmd.Context()
			if verify {
				if _, err := b.provider.VerifySession(ctx); err != nil {
					return err
				}
			}

			entry := b.engine.EnterProtected(ctx)
			if entry.Redirect {
				fmt.Fprintln(cmd.OutOrStdout(), b.engine.Policy().DisplayName(entry.Session))
				fmt.Fprintf(cmd.OutOrStdout(), "next: %s\n", entry.Next)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), entry.Welcome)
			if verify {
				n, err := b.provider.ActiveSessions(ctx, entry.Session.UserID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "active sessions: %d\n", n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "confirm the session record still exists in Redis")
	return cmd
}

func newSignOutCmd(opts *options) *cobra.Command {
	var everywhere bool

	cmd := &cobra.Command{
		Use:   "signout",
		Short: "Sign the current user out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBackend(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer b.Close()

			ctx := cmd.Context()
			if everywhere {
				if err := b.provider.SignOutEverywhere(ctx); err != nil {
					return err
				}
			}
			state := b.engine.SignOut(ctx, b.engine.CurrentSession(ctx))
			fmt.Fprintln(cmd.OutOrStdout(), b.engine.Policy().DisplayName(state))
			return nil
		},
	}
	cmd.Flags().BoolVar(&everywhere, "everywhere", false, "delete every session of the current user")
	return cmd
}

func newProfileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Load the profile screen, including the connectivity write",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBackend(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer b.Close()

			printProfile(cmd.OutOrStdout(), b.engine.LoadProfile(cmd.Context()))
			return nil
		},
	}
}

func printProfile(w io.Writer, p authflow.Profile) {
	email := p.Email
	if email == "" {
		email = "-"
	}
	fmt.Fprintf(w, "email: %s\n", email)
	fmt.Fprintf(w, "signed in: %t\n", p.SignedIn)
	if p.SmokeWrite != nil {
		fmt.Fprintf(w, "smoke write: failed: %v\n", p.SmokeWrite)
	} else {
		fmt.Fprintln(w, "smoke write: ok")
	}
}

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"dentalClinicManagement/internal/seed"
)

var errBadCredentials = errors.New("invalid email or password")

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write seed data into an empty store and report the schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The root pre-run already seeded; report the result.
		v, err := svc.Seeder.SchemaVersion(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]int{"schemaVersion": v, "supported": seed.CurrentSchemaVersion})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login EMAIL PASSWORD",
	Short: "Start a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := svc.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if sess == nil {
			return errBadCredentials
		}
		return printJSON(cmd.OutOrStdout(), sess)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.Logout(cmd.Context())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := svc.CurrentSession(cmd.Context())
		if err != nil {
			return err
		}
		if sess == nil {
			cmd.Println("not logged in")
			return nil
		}
		return printJSON(cmd.OutOrStdout(), sess)
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the logged-in patient's record and appointments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := svc.CurrentSession(cmd.Context())
		if err != nil {
			return err
		}
		ov, err := svc.PatientOverview(cmd.Context(), sess)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), ov)
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show clinic totals and the most recent appointments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireAdmin(cmd.Context()); err != nil {
			return err
		}
		dash, err := svc.Dashboard(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), dash)
	},
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dentalClinicManagement/models"
	"dentalClinicManagement/repository"
)

var patientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "List, add and update patients (admin)",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		_, err := requireAdmin(cmd.Context())
		return err
	},
}

var patientSearch string

var patientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List patients, optionally filtered by name, email or contact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		patients, err := svc.SearchPatients(cmd.Context(), repository.PatientFilter{Search: patientSearch})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), patients)
	},
}

var patientInput models.PatientInput

var patientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a patient",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := svc.AddPatient(cmd.Context(), patientInput)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), p)
	},
}

var patientsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update the given fields of a patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := svc.UpdatePatient(cmd.Context(), args[0], patientPatchFromFlags(cmd))
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("patient %s not found", args[0])
		}
		return printJSON(cmd.OutOrStdout(), p)
	},
}

// patientPatchFromFlags includes only the flags given on the command line.
func patientPatchFromFlags(cmd *cobra.Command) models.PatientPatch {
	var patch models.PatientPatch
	set := func(flag string, dst **string, v string) {
		if cmd.Flags().Changed(flag) {
			*dst = &v
		}
	}
	set("name", &patch.Name, patientInput.Name)
	set("dob", &patch.Dob, patientInput.Dob)
	set("contact", &patch.Contact, patientInput.Contact)
	set("email", &patch.Email, patientInput.Email)
	set("health-info", &patch.HealthInfo, patientInput.HealthInfo)
	return patch
}

func init() {
	patientsListCmd.Flags().StringVarP(&patientSearch, "search", "s", "", "Case-insensitive search term")

	for _, c := range []*cobra.Command{patientsAddCmd, patientsUpdateCmd} {
		c.Flags().StringVar(&patientInput.Name, "name", "", "Full name")
		c.Flags().StringVar(&patientInput.Dob, "dob", "", "Date of birth (YYYY-MM-DD)")
		c.Flags().StringVar(&patientInput.Contact, "contact", "", "Phone number")
		c.Flags().StringVar(&patientInput.Email, "email", "", "Email address")
		c.Flags().StringVar(&patientInput.HealthInfo, "health-info", "", "Allergies, conditions and other notes")
	}
	_ = patientsAddCmd.MarkFlagRequired("name")

	patientsCmd.AddCommand(patientsListCmd, patientsAddCmd, patientsUpdateCmd)
}

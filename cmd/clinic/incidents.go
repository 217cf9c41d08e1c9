package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dentalClinicManagement/internal/attachments"
	"dentalClinicManagement/models"
	"dentalClinicManagement/repository"
)

var incidentsCmd = &cobra.Command{
	Use:     "incidents",
	Aliases: []string{"appointments"},
	Short:   "List, add and update appointments (admin)",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		_, err := requireAdmin(cmd.Context())
		return err
	},
}

var (
	incidentSearch string
	incidentStatus string
	incidentRecent int
)

var incidentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List appointments filtered by search term and status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		incidents, err := svc.SearchIncidents(cmd.Context(), repository.IncidentFilter{Search: incidentSearch, Status: incidentStatus})
		if err != nil {
			return err
		}
		if incidentRecent > 0 {
			incidents = repository.Recent(incidents, incidentRecent)
		}
		return printJSON(cmd.OutOrStdout(), incidents)
	},
}

// incidentFlags holds raw flag values shared by add and update.
var incidentFlags struct {
	patientID   string
	title       string
	description string
	comments    string
	date        string
	cost        string
	status      string
	files       []string
	addFiles    []string
	removeFile  int
}

var incidentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Schedule an appointment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := parseStatus(incidentFlags.status)
		if err != nil {
			return err
		}
		files, err := readFiles(cmd.Context(), incidentFlags.files)
		if err != nil {
			return err
		}
		inc, err := svc.AddIncident(cmd.Context(), models.IncidentInput{
			PatientID:       incidentFlags.patientID,
			Title:           incidentFlags.title,
			Description:     incidentFlags.description,
			Comments:        incidentFlags.comments,
			AppointmentDate: incidentFlags.date,
			Cost:            models.ParseCost(incidentFlags.cost),
			Status:          status,
			Files:           files,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), inc)
	},
}

var incidentsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update the given fields of an appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		patch, err := incidentPatchFromFlags(ctx, cmd, args[0])
		if err != nil {
			return err
		}
		inc, err := svc.UpdateIncident(ctx, args[0], patch)
		if err != nil {
			return err
		}
		if inc == nil {
			return fmt.Errorf("incident %s not found", args[0])
		}
		return printJSON(cmd.OutOrStdout(), inc)
	},
}

// incidentPatchFromFlags includes only the flags given on the command line.
// --file replaces the attachment list; --add-file and --remove-file edit the
// stored list and send the result as a replacement.
func incidentPatchFromFlags(ctx context.Context, cmd *cobra.Command, id string) (models.IncidentPatch, error) {
	var patch models.IncidentPatch
	f := cmd.Flags()
	str := func(flag string, dst **string, v string) {
		if f.Changed(flag) {
			*dst = &v
		}
	}
	str("patient", &patch.PatientID, incidentFlags.patientID)
	str("title", &patch.Title, incidentFlags.title)
	str("description", &patch.Description, incidentFlags.description)
	str("comments", &patch.Comments, incidentFlags.comments)
	str("date", &patch.AppointmentDate, incidentFlags.date)
	if f.Changed("cost") {
		c := models.ParseCost(incidentFlags.cost)
		patch.Cost = &c
	}
	if f.Changed("status") {
		st, err := parseStatus(incidentFlags.status)
		if err != nil {
			return patch, err
		}
		patch.Status = &st
	}

	if !f.Changed("file") && !f.Changed("add-file") && !f.Changed("remove-file") {
		return patch, nil
	}
	var files []models.Attachment
	if f.Changed("file") {
		read, err := readFiles(ctx, incidentFlags.files)
		if err != nil {
			return patch, err
		}
		files = read
	} else {
		cur, err := svc.Incidents.GetByID(ctx, id)
		if err != nil {
			return patch, err
		}
		if cur == nil {
			return patch, fmt.Errorf("incident %s not found", id)
		}
		files = cur.Files
	}
	if f.Changed("remove-file") {
		if incidentFlags.removeFile < 0 || incidentFlags.removeFile >= len(files) {
			return patch, fmt.Errorf("no attachment at index %d", incidentFlags.removeFile)
		}
		files = attachments.Remove(files, incidentFlags.removeFile)
	}
	if f.Changed("add-file") {
		added, err := readFiles(ctx, incidentFlags.addFiles)
		if err != nil {
			return patch, err
		}
		files = attachments.Append(files, added)
	}
	patch.Files = &files
	return patch, nil
}

func parseStatus(s string) (models.IncidentStatus, error) {
	if s == "" {
		return "", nil
	}
	for _, st := range []models.IncidentStatus{models.IncidentStatusScheduled, models.IncidentStatusCompleted, models.IncidentStatusCancelled} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (want Scheduled, Completed or Cancelled)", s)
}

// readFiles reads local paths, absolute or relative to the working directory.
func readFiles(ctx context.Context, paths []string) ([]models.Attachment, error) {
	if len(paths) == 0 {
		return []models.Attachment{}, nil
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		names[i] = strings.TrimPrefix(filepath.ToSlash(abs), "/")
	}
	return attachments.Read(ctx, os.DirFS("/"), names)
}

func init() {
	incidentsListCmd.Flags().StringVarP(&incidentSearch, "search", "s", "", "Search title, description and patient name")
	incidentsListCmd.Flags().StringVar(&incidentStatus, "status", repository.StatusAll, "Scheduled, Completed, Cancelled or all")
	incidentsListCmd.Flags().IntVar(&incidentRecent, "recent", 0, "Only the N latest appointments, newest first")

	for _, c := range []*cobra.Command{incidentsAddCmd, incidentsUpdateCmd} {
		c.Flags().StringVar(&incidentFlags.patientID, "patient", "", "Patient ID")
		c.Flags().StringVar(&incidentFlags.title, "title", "", "Title")
		c.Flags().StringVar(&incidentFlags.description, "description", "", "Description")
		c.Flags().StringVar(&incidentFlags.comments, "comments", "", "Comments")
		c.Flags().StringVar(&incidentFlags.date, "date", "", "Appointment date and time (YYYY-MM-DDTHH:MM)")
		c.Flags().StringVar(&incidentFlags.cost, "cost", "", "Cost; unparsable values count as 0")
		c.Flags().StringVar(&incidentFlags.status, "status", "", "Scheduled, Completed or Cancelled")
		c.Flags().StringSliceVar(&incidentFlags.files, "file", nil, "Attach a file (repeatable)")
	}
	incidentsUpdateCmd.Flags().StringSliceVar(&incidentFlags.addFiles, "add-file", nil, "Append a file to the existing attachments (repeatable)")
	incidentsUpdateCmd.Flags().IntVar(&incidentFlags.removeFile, "remove-file", -1, "Remove the attachment at this index")
	_ = incidentsAddCmd.MarkFlagRequired("patient")
	_ = incidentsAddCmd.MarkFlagRequired("title")

	incidentsCmd.AddCommand(incidentsListCmd, incidentsAddCmd, incidentsUpdateCmd)
}

package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dentalClinicManagement/internal/auth"
	"dentalClinicManagement/internal/clinic"
	"dentalClinicManagement/internal/config"
	"dentalClinicManagement/internal/db"
	"dentalClinicManagement/internal/logging"
	"dentalClinicManagement/internal/storage"
	"dentalClinicManagement/models"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger *zap.Logger
	dbConn *sql.DB
	svc    *clinic.Service
)

var rootCmd = &cobra.Command{
	Use:   "clinic",
	Short: "Dental clinic records: patients, appointments and sessions",
	Long: `clinic manages patients and dental appointments ("incidents") stored in a
local key-value store. Log in first; most commands need an admin session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debug("configuration loaded", zap.Stringer("config", cfg))

		store, err := openStorage(cfg.Storage)
		if err != nil {
			return err
		}
		svc = clinic.New(store, logger)
		return svc.EnsureSeeded(cmd.Context())
	},
}

// cleanup releases what the pre-run opened. It runs after every command,
// including failed ones.
func cleanup() {
	if dbConn != nil {
		if err := dbConn.Close(); err != nil && logger != nil {
			logger.Warn("close db", zap.Error(err))
		}
		dbConn = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func openStorage(cfg config.StorageConfig) (storage.Storage, error) {
	if cfg.Driver == config.DriverMemory {
		return storage.NewMemory(), nil
	}
	d, err := db.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	dbConn = d
	return storage.NewSQLite(d), nil
}

// requireAdmin loads the current session and checks it belongs to staff.
func requireAdmin(ctx context.Context) (*models.Session, error) {
	sess, err := svc.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	return auth.RequireAdmin(sess)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $CLINIC_CONFIG)")

	rootCmd.AddCommand(seedCmd, loginCmd, logoutCmd, whoamiCmd, meCmd, dashboardCmd, patientsCmd, incidentsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cleanup()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

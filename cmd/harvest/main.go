package main

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"

	"harvest-keeper/internal/config"
	"harvest-keeper/internal/domain"
	"harvest-keeper/internal/logger"
	"harvest-keeper/internal/service"
	"harvest-keeper/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	todayFlag string
	noSeed    bool

	// remindersCmd flags
	pendingOnly bool

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Track harvested stock and its shelf life",
	Long: `harvest keeps a list of harvested products, copies the recommended
storage conditions for each plant type, and counts down to expiry.

Run without arguments to start the interactive app.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg = config.Load()
		if noSeed {
			cfg.App.SeedDemoData = false
		}

		var err error
		log, err = logger.New(logger.Options{
			Env:     cfg.Server.Env,
			Level:   cfg.App.LogLevel,
			File:    cfg.App.LogFile,
			Service: "harvest",
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: runTUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive app",
	RunE:  runTUI,
}

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Print expired, urgent and soon-to-expire products",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newHarvestService(cmd.Context())
		if err != nil {
			return err
		}

		load := svc.Reminders
		if pendingOnly {
			load = svc.PendingReminders
		}
		report, err := load(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), tui.RenderReminders(report))
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the storage profile catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := service.LoadCatalog(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderCatalog(cat))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&todayFlag, "today", "", "pretend today is this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVar(&noSeed, "no-seed", false, "start with an empty product list")
	remindersCmd.Flags().BoolVar(&pendingOnly, "pending", false, "leave out products already taken out of storage")

	rootCmd.AddCommand(tuiCmd, remindersCmd, catalogCmd)
}

// newHarvestService honors --today by pinning the clock
func newHarvestService(ctx context.Context) (service.HarvestService, error) {
	var clock service.Clock
	if todayFlag != "" {
		day, err := domain.ParseDate(todayFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid --today: %w", err)
		}
		loc, err := cfg.Location()
		if err != nil {
			return nil, err
		}
		clock = service.FixedClock(day, loc)
	}
	return service.NewHarvestServiceFromConfig(ctx, cfg, clock, log)
}

func runTUI(cmd *cobra.Command, args []string) error {
	svc, err := newHarvestService(cmd.Context())
	if err != nil {
		return err
	}

	model := tui.New(svc, service.NewSessionService(nil), log)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

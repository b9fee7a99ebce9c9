package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/vitalcheck/internal/config"
	"github.com/abhisek/vitalcheck/internal/diagnosis"
	"github.com/abhisek/vitalcheck/internal/logging"
)

// app carries state shared by every subcommand once the root pre-run hook
// has loaded configuration.
type app struct {
	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "vitalcheck",
		Short: "Rule-based vital sign checker",
		Long: "vitalcheck keeps one patient's vital signs, matches them against an ordered\n" +
			"table of threshold rules and can ask an LLM for a narrative health report.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd, showOptions{})
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to YAML config file (overrides VITALCHECK_CONFIG)")
	pf.String("db", "", "Path to SQLite database file (overrides VITALCHECK_DB)")
	pf.String("state-file", "", "Path to the JSON patient file used by the file backend")
	pf.String("backend", "", "Patient state backend: file or sqlite")
	pf.Uint64("seed", 0, "Seed for generated default vitals (0 = random)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.Bool("no-report", false, "Skip the LLM health report")

	root.AddCommand(
		a.newShowCmd(),
		a.newUpdateCmd(),
		a.newRulesCmd(),
		a.newResetCmd(),
		a.newHistoryCmd(),
		a.newEventsCmd(),
		a.newLLMCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func (a *app) init(cmd *cobra.Command) error {
	logging.Init()

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.State.DB, _ = flags.GetString("db")
	}
	if flags.Changed("state-file") {
		cfg.State.File, _ = flags.GetString("state-file")
	}
	if flags.Changed("backend") {
		cfg.State.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if noReport, _ := flags.GetBool("no-report"); noReport {
		cfg.Report.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	a.cfg = cfg
	a.logger = logging.Logger(logging.SourceApp)

	if dups := diagnosis.DefaultTable().DuplicateConjunctions(); len(dups) > 0 {
		a.logger.Warn("rule table has unreachable duplicate rules",
			"count", len(dups), "first", dups[0].Rule.Label, "hint", "vitalcheck rules --duplicates")
	}
	return nil
}

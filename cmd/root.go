package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/trknhr/cooktime/internal"
	"github.com/trknhr/cooktime/internal/chat"
	"github.com/trknhr/cooktime/internal/config"
	"github.com/trknhr/cooktime/internal/estimator"
	"github.com/trknhr/cooktime/internal/logger"
	"github.com/trknhr/cooktime/internal/metrics"
	"github.com/trknhr/cooktime/internal/model"
	"github.com/trknhr/cooktime/internal/predictor"
	"github.com/trknhr/cooktime/internal/store"
	"github.com/trknhr/cooktime/internal/tui"
	"github.com/trknhr/cooktime/internal/worker"
)

const journalBuffer = 64

type rootFlags struct {
	configPath string
	logLevel   string
	dbPath     string
	models     string
}

// app carries the loaded configuration from PersistentPreRunE to the
// subcommands.
type app struct {
	flags rootFlags
	cfg   *config.Config
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "cooktime",
		Short:         "Chat with a chef that estimates cooking times",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// the TUI owns the terminal, so its logs go to the log file only
			return a.setup(cmd, cmd != cmd.Root())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cooktime/config.yaml)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error, none")
	pf.StringVar(&a.flags.dbPath, "db", "", "journal database path (default <user cache dir>/cooktime/cooktime.db)")
	pf.StringVar(&a.flags.models, "models", "", "comma-separated regressors to train (forest,ridge)")

	cmd.AddCommand(
		newPredictCmd(a),
		newEvalCmd(a),
		newHistoryCmd(a),
		newIngredientsCmd(),
		newBenchmarkCmd(a),
	)
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command, console bool) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if flags.Changed("db") {
		cfg.DBPath = a.flags.dbPath
	}
	if flags.Changed("models") {
		cfg.Models = a.flags.models
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(cfg.LogFile, cfg.LogLevel, console); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	if cfg.MetricsAddr != "" {
		go func(addr string) {
			logger.Info("serving metrics on %s/metrics", addr)
			if err := metrics.Serve(addr); err != nil {
				logger.Error("metrics server stopped: %v", err)
			}
		}(cfg.MetricsAddr)
	}

	a.cfg = cfg
	return nil
}

// openJournal returns a recorder backed by the journal database and a
// cleanup func. When the journal is disabled or cannot be opened the
// recorder is nil and estimates are simply not kept.
func (a *app) openJournal() (predictor.Recorder, func()) {
	if !a.cfg.Journal {
		return nil, func() {}
	}
	db, err := internal.OpenDB(a.cfg.DBPath)
	if err != nil {
		logger.Warn("journal disabled: %v", err)
		return nil, func() {}
	}
	if err := store.Migrate(db); err != nil {
		logger.Warn("journal disabled: %v", err)
		db.Close()
		return nil, func() {}
	}

	w := worker.LaunchJournalWorker(store.NewSQLJournalStore(db), journalBuffer)
	return w, func() {
		w.Close()
		db.Close()
	}
}

func (a *app) newSession(h *estimator.Handle, rec predictor.Recorder) *predictor.Session {
	var opts []predictor.Option
	if rec != nil {
		opts = append(opts, predictor.WithRecorder(rec))
	}
	return predictor.NewSession(h, opts...)
}

func (a *app) runTUI() error {
	h, events, err := model.GenerateModel(a.cfg.ModelOptions())
	if err != nil {
		return fmt.Errorf("failed to generate model: %w", err)
	}

	rec, closeJournal := a.openJournal()
	defer closeJournal()

	bot := chat.NewBot(a.newSession(h, rec), chat.NewResponder(time.Now().UnixNano()))
	p := tea.NewProgram(tui.NewTuiModel(bot, events), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

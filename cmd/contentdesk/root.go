package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"ContentDesk/internal/app"
	"ContentDesk/internal/config"
	"ContentDesk/internal/logging"
)

// cliState is shared by every subcommand of one root.
type cliState struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:   "contentdesk",
		Short: "Classify newsroom content requests by role, content kind and lifecycle status",
		Long: `ContentDesk decides what a newsroom user is doing with a piece of content.
Requests are read from YAML or JSON fixtures; every decision can be kept in a
SQLite audit log.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			st.cfg = config.Load(st.configPath)
			if st.logLevel != "" {
				st.cfg.Logging.Level = st.logLevel
			}
			if err := st.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			st.logger = logging.NewWithWriter(cmd.ErrOrStderr(), st.cfg.Logging.Level)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&st.configPath, "config", "", "path to config YAML (default $CONTENTDESK_CONFIG)")
	root.PersistentFlags().StringVar(&st.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newClassifyCmd(st),
		newRunCmd(st),
		newWatchCmd(st),
		newVariantsCmd(),
		newHistoryCmd(st),
	)
	return root
}

func (st *cliState) application() (*app.Application, error) {
	return app.New(st.cfg, st.logger)
}

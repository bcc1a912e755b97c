package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ContentDesk/internal/usecase"
)

func newWatchCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-classify the fixture sets whenever a fixture changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := st.application()
			if err != nil {
				return err
			}
			defer application.Close()

			out := cmd.OutOrStdout()
			return application.Watch(ctx, func(at time.Time, summary usecase.Summary) {
				fmt.Fprintf(out, "[%s] ", at.In(st.cfg.Display.Location()).Format(time.TimeOnly))
				_ = writeSummary(out, formatText, summary)
			})
		},
	}
}

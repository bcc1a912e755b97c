package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ContentDesk/internal/domain"
	"ContentDesk/internal/ports"
)

var errNoDecisionLog = errors.New("history needs a decision log: set database.dsn or CONTENTDESK_DATABASE_DSN")

func newHistoryCmd(st *cliState) *cobra.Command {
	var (
		outcome string
		role    string
		limit   int
		format  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded decisions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			filter, err := historyFilter(outcome, role, limit)
			if err != nil {
				return err
			}

			application, err := st.application()
			if err != nil {
				return err
			}
			defer application.Close()

			log := application.Decisions()
			if log == nil {
				return errNoDecisionLog
			}

			decisions, err := log.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, decisions)
			}
			loc := st.cfg.Display.Location()
			for _, d := range decisions {
				fmt.Fprintf(out, "%s %s\n", d.DecidedAt.In(loc).Format("2006-01-02 15:04:05"), outcomeLine(d))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outcome, "outcome", "", "only decisions with this verdict: allowed or rejected")
	cmd.Flags().StringVar(&role, "role", "", "only decisions for this user role")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows, 0 for all")
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or json")
	return cmd
}

func historyFilter(outcome, role string, limit int) (ports.DecisionFilter, error) {
	filter := ports.DecisionFilter{Limit: limit}

	switch v := domain.Verdict(outcome); v {
	case "":
	case domain.VerdictAllowed, domain.VerdictRejected:
		filter.Verdict = v
	default:
		return filter, fmt.Errorf("--outcome %q: want %s or %s", outcome, domain.VerdictAllowed, domain.VerdictRejected)
	}

	if role != "" {
		if !domain.RoleFamily().Has(role) {
			return filter, fmt.Errorf("--role %q: want one of %v", role, domain.RoleFamily().Tags())
		}
		filter.Role = domain.Role(role)
	}

	if limit < 0 {
		return filter, fmt.Errorf("--limit must not be negative")
	}
	return filter, nil
}

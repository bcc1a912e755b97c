package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ContentDesk/internal/infrastructure/fixture"
)

func newClassifyCmd(st *cliState) *cobra.Command {
	var (
		format  string
		details bool
	)

	cmd := &cobra.Command{
		Use:   "classify FILE...",
		Short: "Classify the requests in fixture files",
		Long: `Classify reads YAML or JSON request fixtures and prints one outcome per request.
A rejected request is a normal result; the command only fails on unreadable or
malformed input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			reqs, err := fixture.LoadFiles(cmd.Context(), args...)
			if err != nil {
				return err
			}

			application, err := st.application()
			if err != nil {
				return err
			}
			defer application.Close()

			summary, err := application.Pipeline().Classify(cmd.Context(), reqs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, summary.Decisions)
			}
			for i, d := range summary.Decisions {
				fmt.Fprintln(out, outcomeLine(d))
				if details {
					writeDetails(out, application.Describer(), reqs[i], d)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or json")
	cmd.Flags().BoolVar(&details, "details", false, "also print user, content and status descriptions")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd(st *cliState) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Classify every configured fixture set once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			application, err := st.application()
			if err != nil {
				return err
			}
			defer application.Close()

			summary, err := application.Run(cmd.Context())
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), format, summary)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or json")
	return cmd
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ContentDesk/internal/domain"
)

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "Print the variant registry",
		Long:  "Print every variant family with its discriminant and fields. Optional fields end in '?'.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writeFamilies(cmd.OutOrStdout(), domain.Families())
			return nil
		},
	}
}

func writeFamilies(w io.Writer, families []domain.Family) {
	for i, f := range families {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header := fmt.Sprintf("%s (discriminant: %s", f.Name, f.Discriminant)
		if f.Structural {
			header += ", structural"
		}
		fmt.Fprintln(w, header+")")
		if len(f.Shared) > 0 {
			fmt.Fprintf(w, "  shared: %s\n", fieldList(f.Shared))
		}
		for _, v := range f.Variants {
			fmt.Fprintf(w, "  %s: %s\n", v.Tag, fieldList(v.Fields))
		}
	}
}

func fieldList(fields []domain.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		if !f.Required {
			names[i] += "?"
		}
	}
	return strings.Join(names, ", ")
}

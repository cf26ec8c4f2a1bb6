package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aanand-mishra/students-roster/internal/roster"
	"github.com/aanand-mishra/students-roster/internal/types"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func newListCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.controller(slog.New(slog.DiscardHandler))
			if err := ctrl.Load(cmd.Context()); err != nil {
				return failure(ctrl, err)
			}
			return printStudents(cmd.OutOrStdout(), ctrl.Variant(), ctrl.State().Students, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json or yaml")
	return cmd
}

// printStudents writes students in format. An empty table prints the empty
// roster message instead of a bare header.
func printStudents(w io.Writer, v roster.Variant, students []types.Student, format string) error {
	switch format {
	case formatTable:
		if len(students) == 0 {
			_, err := fmt.Fprintln(w, roster.MsgEmpty)
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "ID\tNOM\tÂGE\t%s\n", strings.ToUpper(v.ExtraLabel))
		for _, s := range students {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", s.ID, s.Name, s.Age, v.Extra(s))
		}
		return tw.Flush()

	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(students)

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(students); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown output format %q: want table, json or yaml", format)
	}
}

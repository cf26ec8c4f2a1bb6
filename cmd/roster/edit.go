package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/students-roster/internal/form"
	"github.com/aanand-mishra/students-roster/internal/roster"
)

// recordFlags are the form fields as flags. --major and --email are
// aliases of --extra for the matching variant.
type recordFlags struct {
	name, age, extra, major, email string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "student name")
	cmd.Flags().StringVar(&f.age, "age", "", "student age")
	cmd.Flags().StringVar(&f.extra, "extra", "", "third field of the variant (major or email)")
	cmd.Flags().StringVar(&f.major, "major", "", "major, for the majors variant")
	cmd.Flags().StringVar(&f.email, "email", "", "email, for the contacts variant")
	cmd.MarkFlagsMutuallyExclusive("extra", "major", "email")
}

// apply overlays every flag the user set on base.
func (f *recordFlags) apply(cmd *cobra.Command, base form.Fields) form.Fields {
	if cmd.Flags().Changed("name") {
		base.Name = f.name
	}
	if cmd.Flags().Changed("age") {
		base.Age = f.age
	}
	for _, name := range []string{"extra", "major", "email"} {
		if cmd.Flags().Changed(name) {
			base.Extra = cmd.Flags().Lookup(name).Value.String()
		}
	}
	return base
}

func newAddCmd(a *app) *cobra.Command {
	var rf recordFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a student",
		Example: `  roster add --name Dana --age 23 --major Chimie
  roster --variant contacts add --name Dana --age 23 --email dana@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.controller(slog.New(slog.DiscardHandler))
			ctrl.SetFields(rf.apply(cmd, form.Fields{}))
			if err := ctrl.Submit(cmd.Context()); err != nil {
				return failure(ctrl, err)
			}

			students := ctrl.State().Students
			created := students[len(students)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Étudiant ajouté avec l'ID %d\n", created.ID)
			return nil
		},
	}

	rf.register(cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var rf recordFlags

	cmd := &cobra.Command{
		Use:     "update ID",
		Short:   "Update a student (majors variant only)",
		Long:    "Update overwrites the student's record. Fields without a flag keep their current value.",
		Example: "  roster update 2 --age 23",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctrl := a.controller(slog.New(slog.DiscardHandler))
			if !ctrl.Variant().Editable {
				return failure(ctrl, roster.ErrNotEditable)
			}
			if err := ctrl.Load(cmd.Context()); err != nil {
				return failure(ctrl, err)
			}
			if err := ctrl.BeginEdit(id); err != nil {
				return failure(ctrl, err)
			}

			ctrl.SetFields(rf.apply(cmd, ctrl.State().Form))
			if err := ctrl.Submit(cmd.Context()); err != nil {
				return failure(ctrl, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Étudiant avec l'ID %d mis à jour\n", id)
			return nil
		},
	}

	rf.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctrl := a.controller(slog.New(slog.DiscardHandler))
			if err := ctrl.Delete(cmd.Context(), id); err != nil {
				return failure(ctrl, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Étudiant avec l'ID %d supprimé\n", id)
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", arg)
	}
	return id, nil
}

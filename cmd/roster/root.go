package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/students-roster/internal/client"
	"github.com/aanand-mishra/students-roster/internal/config"
	"github.com/aanand-mishra/students-roster/internal/roster"
)

// app is the state shared by every subcommand once the root has parsed its
// flags and loaded the config.
type app struct {
	configPath string
	variant    string
	baseURL    string

	cfg *config.Config
	v   roster.Variant
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the student roster against the students API",
		Long: `roster lists, adds, updates and deletes students held by the students API.

Variants:
  majors    name, age and major; records can be edited (default)
  contacts  name, age and email; one request at a time, no edit mode`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to the configuration YAML file (default $CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&a.variant, "variant", "", "roster variant: majors or contacts")
	cmd.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "students collection URL, overrides the variant default")

	cmd.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newTUICmd(a),
		newWebCmd(a),
	)
	return cmd
}

// load resolves the config file, then lets flags override it.
func (a *app) load(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("variant") {
		cfg.Roster.Variant = a.variant
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = a.baseURL
	}

	v, err := roster.VariantByName(cfg.Roster.Variant)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.v = v
	return nil
}

// endpoint is the configured collection URL or the variant's default.
func (a *app) endpoint() string {
	if a.cfg.BaseURL != "" {
		return a.cfg.BaseURL
	}
	return a.v.DefaultBaseURL
}

func (a *app) controller(log *slog.Logger) *roster.Controller {
	remote := client.New(a.endpoint(), client.WithTimeout(a.cfg.Timeout))
	return roster.NewController(a.v, remote, log)
}

// failure turns a controller error into the message the user sees. The
// store holds the localized message; the cause stays wrapped.
func failure(ctrl *roster.Controller, err error) error {
	if msg := ctrl.State().Err; msg != "" {
		return fmt.Errorf("%s (%w)", msg, err)
	}
	if errors.Is(err, roster.ErrNotEditable) {
		return fmt.Errorf("la variante %s ne permet pas la modification: %w", ctrl.Variant().Name, err)
	}
	return err
}

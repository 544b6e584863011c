package main

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pa11y/sidekick/internal/settings"
)

func (c *cli) settingCmd() *cobra.Command {
	settingCmd := &cobra.Command{
		Use:               "setting",
		Short:             "Manage settings",
		PersistentPreRunE: c.loadBackends,
	}

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := settings.New(c.backends.Settings).View()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}

	setCmd := &cobra.Command{
		Use:     "set NAME VALUE",
		Short:   "Set a setting; VALUE is given as JSON",
		Example: "sidekickctl setting set publicReadAccess true",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, value := args[0], args[1]
			if !json.Valid([]byte(value)) {
				return errors.Errorf("value of '%s' is not valid JSON: %s", name, value)
			}
			body, err := json.Marshal(map[string]json.RawMessage{name: json.RawMessage(value)})
			if err != nil {
				return err
			}
			v, err := settings.ParseView(body)
			if err != nil {
				return err
			}
			cache := settings.New(c.backends.Settings)
			if err = cache.Apply(v); err != nil {
				return err
			}
			current, err := cache.View()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), current)
		},
	}

	settingCmd.AddCommand(getCmd, setCmd)
	return settingCmd
}

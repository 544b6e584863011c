package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pa11y/sidekick/storage/model"
)

func (c *cli) setupCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:               "setup",
		Short:             "Create the owner account of a fresh installation",
		Args:              cobra.NoArgs,
		PersistentPreRunE: c.loadBackends,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := c.backends.Users.Count()
			if err != nil {
				return err
			}
			if count > 0 {
				return errors.New("sidekick is already set up")
			}
			owner, err := c.backends.Users.Create(
				model.AddUser{
					Email:    email,
					Password: password,
					IsOwner:  true,
				},
			)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), owner)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "email of the owner (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password of the owner (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/pa11y/sidekick/storage/model"
)

func (c *cli) userCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:               "user",
		Short:             "Manage users",
		PersistentPreRunE: c.loadBackends,
	}

	var add model.AddUser
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.backends.Users.Create(add)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
	createCmd.Flags().StringVarP(&add.Email, "email", "e", "", "email of the user (required)")
	createCmd.Flags().StringVarP(&add.Password, "password", "p", "", "password of the user (required)")
	createCmd.Flags().BoolVar(&add.Permissions.Read, "read", false, "grant read permission")
	createCmd.Flags().BoolVar(&add.Permissions.Write, "write", false, "grant write permission")
	createCmd.Flags().BoolVar(&add.Permissions.Delete, "delete", false, "grant delete permission")
	createCmd.Flags().BoolVar(&add.Permissions.Admin, "admin", false, "grant admin permission")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := c.backends.Users.List()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), users)
		},
	}

	userCmd.AddCommand(createCmd, listCmd)
	return userCmd
}

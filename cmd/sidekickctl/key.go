package main

import (
	"github.com/spf13/cobra"

	"github.com/pa11y/sidekick/storage/model"
)

func (c *cli) keyCmd() *cobra.Command {
	keyCmd := &cobra.Command{
		Use:               "key",
		Short:             "Manage API keys",
		PersistentPreRunE: c.loadBackends,
	}

	var userID uint
	var add model.AddKey
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an API key for a user; the secret is only shown once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.backends.Users.Get(userID); err != nil {
				return err
			}
			key, err := c.backends.Keys.Create(userID, add)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), key)
		},
	}
	createCmd.Flags().UintVarP(&userID, "user", "u", 0, "id of the user owning the key (required)")
	createCmd.Flags().StringVarP(&add.Description, "description", "d", "", "description of the key")
	_ = createCmd.MarkFlagRequired("user")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the API keys of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := c.backends.Keys.ListForUser(userID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), keys)
		},
	}
	listCmd.Flags().UintVarP(&userID, "user", "u", 0, "id of the user owning the keys (required)")
	_ = listCmd.MarkFlagRequired("user")

	deleteCmd := &cobra.Command{
		Use:   "delete KEY_ID",
		Short: "Delete an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.backends.Keys.Delete(args[0])
		},
	}

	keyCmd.AddCommand(createCmd, listCmd, deleteCmd)
	return keyCmd
}

package main

import (
	"encoding/json"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pa11y/sidekick/cmd/sidekick/config"
	"github.com/pa11y/sidekick/storage/model"
)

// backendLoader returns the storage backends the commands operate on
type backendLoader func(configFile string) (model.Backends, error)

func loadBackends(configFile string) (model.Backends, error) {
	config.Load(configFile)
	log.Info("Loaded Config")
	c := config.Get()
	return config.LoadStorageBackends(c.Storage, c.API)
}

// cli holds the state shared by all commands
type cli struct {
	configFile string
	load       backendLoader
	backends   model.Backends
}

func newRootCmd(load backendLoader) *cobra.Command {
	c := &cli{load: load}
	rootCmd := &cobra.Command{
		Use:           "sidekickctl",
		Short:         "sidekickctl can help you manage your Sidekick",
		Long:          "sidekickctl can help you manage the users, keys and settings of your Sidekick",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&c.configFile, "config", "c", "config.yaml", "the config file to use")

	rootCmd.AddCommand(
		c.setupCmd(),
		c.userCmd(),
		c.keyCmd(),
		c.settingCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadBackends is used as PersistentPreRunE of all commands that need storage
func (c *cli) loadBackends(*cobra.Command, []string) error {
	backs, err := c.load(c.configFile)
	if err != nil {
		return err
	}
	c.backends = backs
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd(loadBackends).Execute(); err != nil {
		log.Fatal(err)
	}
}

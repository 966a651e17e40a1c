package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/flexicity/app"
	"github.com/kilianp07/flexicity/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "flexicity",
	Short:         "City-scale demand flexibility simulator",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func newService() (*app.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(cfg)
}

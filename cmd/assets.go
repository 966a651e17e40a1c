package cmd

import (
	"github.com/spf13/cobra"
)

var assetsScenario string

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List the catalog with naive and flexible hours",
	RunE:  runAssets,
}

func init() {
	assetsCmd.Flags().StringVar(&assetsScenario, "scenario", "", "scenario name (default from config)")
	rootCmd.AddCommand(assetsCmd)
}

func runAssets(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	if assetsScenario != "" {
		if err := svc.Engine.ApplyScenario(assetsScenario); err != nil {
			return err
		}
	}
	printAssets(cmd.OutOrStdout(), svc.Engine.ListAssets())
	return nil
}

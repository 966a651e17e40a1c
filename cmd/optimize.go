package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/flexicity/core/optimizer"
)

var optFlags struct {
	policy   string
	scenario string
	format   string
	serve    bool
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search the participation and price weight grid for the best settings",
	RunE:  runOptimize,
}

func init() {
	f := optimizeCmd.Flags()
	f.StringVar(&optFlags.policy, "policy", "", fmt.Sprintf("search policy %v (default from config)", optimizer.Policies()))
	f.StringVar(&optFlags.scenario, "scenario", "", "scenario name (default from config)")
	f.StringVar(&optFlags.format, "format", "text", "output format: text or json")
	f.BoolVar(&optFlags.serve, "serve", false, "keep serving /metrics until interrupted")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	if optFlags.format != "text" && optFlags.format != "json" {
		return fmt.Errorf("unknown format %q", optFlags.format)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	name := optFlags.policy
	if name == "" {
		name = svc.Config().Optimizer.Policy
	}
	policy, err := optimizer.ParsePolicy(name)
	if err != nil {
		return err
	}
	if optFlags.scenario != "" {
		if err := svc.Engine.ApplyScenario(optFlags.scenario); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	res, err := svc.Optimize(ctx, policy)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if optFlags.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Scenario: %s\n", svc.Engine.Scenario().Name)
		fmt.Fprint(out, res.Report())
	}
	if optFlags.serve {
		return svc.ServeMetrics(ctx)
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/flexicity/app"
	"github.com/kilianp07/flexicity/infra/logger"
	"github.com/kilianp07/flexicity/pkg/export"
)

var simFlags struct {
	scenario    string
	flex        float64
	price       float64
	format      string
	scheduleCSV string
	curvesCSV   string
	chart       string
	serve       bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Compute the schedule for one scenario and parameter set",
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simFlags.scenario, "scenario", "", "scenario name (default from config)")
	f.Float64Var(&simFlags.flex, "flex", 100, "flexible participation in percent")
	f.Float64Var(&simFlags.price, "price", 50, "price weight in percent")
	f.StringVar(&simFlags.format, "format", "text", "output format: text or json")
	f.StringVar(&simFlags.scheduleCSV, "schedule-csv", "", "write per-asset hours to this CSV file")
	f.StringVar(&simFlags.curvesCSV, "curves-csv", "", "write hourly curves to this CSV file")
	f.StringVar(&simFlags.chart, "chart", "", "write an HTML chart to this file")
	f.BoolVar(&simFlags.serve, "serve", false, "keep serving /metrics until interrupted")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simFlags.format != "text" && simFlags.format != "json" {
		return fmt.Errorf("unknown format %q", simFlags.format)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	eng := svc.Engine
	if simFlags.scenario != "" {
		if err := eng.ApplyScenario(simFlags.scenario); err != nil {
			return err
		}
	}
	flexChanged, priceChanged := cmd.Flags().Changed("flex"), cmd.Flags().Changed("price")
	if flexChanged || priceChanged {
		flex, price := eng.FlexParticipation()*100, eng.PriceWeight()*100
		if flexChanged {
			flex = simFlags.flex
		}
		if priceChanged {
			price = simFlags.price
		}
		eng.SetParameters(flex, price)
	}

	report := export.Report{
		Scenario: eng.Scenario().Name,
		FlexPct:  eng.FlexParticipation() * 100,
		PricePct: eng.PriceWeight() * 100,
		Stats:    eng.ComputeStats(),
		Before:   eng.BeforeLoad(),
		After:    eng.AfterLoad(),
		Prices:   eng.Prices(),
		Assets:   eng.ListAssets(),
		Time:     time.Now(),
	}
	out := cmd.OutOrStdout()
	if simFlags.format == "json" {
		if err := export.WriteJSON(out, report); err != nil {
			return err
		}
	} else {
		printSummary(out, report)
	}

	if err := writeExports(report); err != nil {
		return err
	}
	if simFlags.serve {
		return serve(svc)
	}
	return nil
}

func writeExports(r export.Report) error {
	if simFlags.scheduleCSV != "" {
		if err := writeFile(simFlags.scheduleCSV, func(f *os.File) error {
			return export.WriteScheduleCSV(f, r.Assets)
		}); err != nil {
			return err
		}
	}
	if simFlags.curvesCSV != "" {
		if err := writeFile(simFlags.curvesCSV, func(f *os.File) error {
			return export.WriteCurvesCSV(f, r.Before, r.After, r.Prices)
		}); err != nil {
			return err
		}
	}
	if simFlags.chart != "" {
		if err := writeFile(simFlags.chart, func(f *os.File) error {
			return export.WriteChart(f, r.Scenario, r.Before, r.After, r.Prices)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// serve blocks on the metrics endpoint until SIGINT or SIGTERM.
func serve(svc *app.Service) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return svc.ServeMetrics(ctx)
}

func closeService(svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("main").Errorf("service close: %v", err)
	}
}

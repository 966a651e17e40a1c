package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/flexicity/core/model"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the available scenarios",
	RunE:  runScenarios,
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	active := svc.Engine.Scenario().Name
	table := svc.Scenarios()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBASE PEAK\tSCALING")
	for _, name := range table.Names() {
		sc, err := table.Get(name)
		if err != nil {
			return err
		}
		if name == active {
			name += " *"
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%s\n", name, sc.BaseLoad.Peak(), scaling(sc))
	}
	return tw.Flush()
}

func scaling(sc model.Scenario) string {
	factors := sc.Scaling()
	if len(factors) == 0 {
		return "-"
	}
	cats := make([]string, 0, len(factors))
	for c := range factors {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = fmt.Sprintf("%s x%g", c, factors[model.Category(c)])
	}
	return strings.Join(parts, " ")
}

package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fiscalpro/internal/breakeven"
	"github.com/rgehrsitz/fiscalpro/internal/brl"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var breakEvenCmd = &cobra.Command{
	Use:   "breakeven [scenario-file]",
	Short: "Find the revenue at which the cheaper regime changes",
	Long: `Scale the scenario's revenue, keeping its product/service mix, and find
the total revenue at which two regimes carry the same tax. Costs, expenses
and payroll stay fixed.

With --sweep, print the four totals at evenly spaced revenues instead.

Examples:
  fiscalpro breakeven loja.yaml --between real,presumed
  fiscalpro breakeven loja.yaml --between simples,presumed --max "R$ 6.000.000,00"
  fiscalpro breakeven loja.yaml --sweep --points 12 --format json
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		constraints, err := revenueConstraints(cmd)
		if err != nil {
			return err
		}

		scenario, cat, calc, err := loadScenario(cmd, inputFile)
		if err != nil {
			return err
		}

		options := breakeven.DefaultSolverOptions()
		options.GridResolution, _ = cmd.Flags().GetInt("points")
		if raw, _ := cmd.Flags().GetString("tolerance"); raw != "" {
			tol, err := brl.ParseAmount(raw)
			if err != nil || !tol.IsPositive() {
				return fmt.Errorf("invalid tolerance %q", raw)
			}
			options.Tolerance = tol
		}
		solver := breakeven.NewSolver(calc, options)

		outputFormat, _ := cmd.Flags().GetString("format")
		sweep, _ := cmd.Flags().GetBool("sweep")

		var result any
		if sweep {
			result, err = solver.Sweep(cmd.Context(), scenario.Input, cat, constraints)
		} else {
			a, b, perr := parseBetween(cmd)
			if perr != nil {
				return perr
			}
			result, err = solver.Solve(cmd.Context(), breakeven.Request{
				Base:        scenario.Input,
				Catalog:     cat,
				RegimeA:     a,
				RegimeB:     b,
				Constraints: constraints,
			})
		}
		if err != nil {
			return fmt.Errorf("break-even analysis failed: %w", err)
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(outputFormat) {
		case "json":
			formatter := &breakeven.JSONFormatter{Pretty: true}
			output, err := formatter.Format(result)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprintln(out, output)

		case "table", "console", "":
			formatter := &breakeven.TableFormatter{}
			switch r := result.(type) {
			case *breakeven.SweepResult:
				fmt.Fprint(out, formatter.FormatSweep(r))
			case *breakeven.Result:
				fmt.Fprint(out, formatter.Format(r))
			}

		default:
			return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
		}
		return nil
	},
}

// parseBetween reads the --between pair of regimes
func parseBetween(cmd *cobra.Command) (domain.RegimeID, domain.RegimeID, error) {
	raw, _ := cmd.Flags().GetString("between")
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("--between expects two regimes separated by a comma, got %q", raw)
	}
	a, err := domain.ParseRegimeID(parts[0])
	if err != nil {
		return "", "", err
	}
	b, err := domain.ParseRegimeID(parts[1])
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

// revenueConstraints reads the --min and --max revenue bounds
func revenueConstraints(cmd *cobra.Command) (breakeven.Constraints, error) {
	var c breakeven.Constraints
	for name, target := range map[string]**decimal.Decimal{"min": &c.MinRevenue, "max": &c.MaxRevenue} {
		raw, _ := cmd.Flags().GetString(name)
		if raw == "" {
			continue
		}
		v, err := brl.ParseAmount(raw)
		if err != nil {
			return c, fmt.Errorf("--%s: %w", name, err)
		}
		*target = &v
	}
	return c, c.Validate()
}

func init() {
	breakEvenCmd.Flags().String("between", "simples,presumed", "Pair of regimes to compare (presumed, real, simples, ret)")
	breakEvenCmd.Flags().String("min", "", "Lowest total revenue to try (default R$ 1,00)")
	breakEvenCmd.Flags().String("max", "", "Highest total revenue to try (default R$ 4.800.000,00)")
	breakEvenCmd.Flags().String("tolerance", "", "Width of the final revenue interval (default R$ 1,00)")
	breakEvenCmd.Flags().Bool("sweep", false, "Print totals across the revenue range instead of solving")
	breakEvenCmd.Flags().Int("points", 10, "Revenue levels in a sweep")
	breakEvenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
}

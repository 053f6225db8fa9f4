package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/fiscalpro/internal/calculation"
	"github.com/rgehrsitz/fiscalpro/internal/catalog"
	"github.com/rgehrsitz/fiscalpro/internal/compare"
	"github.com/rgehrsitz/fiscalpro/internal/config"
	"github.com/spf13/cobra"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate [scenario-file]",
	Short: "Compare the tax regimes for a scenario",
	Long: `Compare the tax burden of a scenario under every regime.

Examples:
  fiscalpro calculate loja.yaml
  fiscalpro calculate loja.yaml --format csv
  fiscalpro calculate loja.yaml --format html > relatorio.html
  fiscalpro calculate loja.yaml --store sqlite --catalog fiscalpro.db --debug
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		scenario, cat, calc, err := loadScenario(cmd, inputFile)
		if err != nil {
			return err
		}

		compareEngine := compare.NewCompareEngine(calc)
		comparisonSet := compareEngine.Compare(scenario.Name, scenario.Input, cat)
		comparisonSet.ScenarioPath = inputFile

		outputFormat, _ := cmd.Flags().GetString("format")
		compact, _ := cmd.Flags().GetBool("compact")
		out := cmd.OutOrStdout()

		switch strings.ToLower(outputFormat) {
		case "csv":
			formatter := &compare.CSVFormatter{}
			output, err := formatter.Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(out, output)

		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			output, err := formatter.Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprintln(out, output)

		case "html":
			formatter := &compare.HTMLFormatter{}
			output, err := formatter.Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format HTML: %w", err)
			}
			fmt.Fprint(out, output)

		case "table", "console", "":
			formatter := &compare.TableFormatter{}
			if compact {
				fmt.Fprintln(out, formatter.FormatCompact(comparisonSet))
				return nil
			}
			fmt.Fprint(out, formatter.Format(comparisonSet))

		default:
			return fmt.Errorf("unknown output format: %s (valid: table, csv, json, html)", outputFormat)
		}
		return nil
	},
}

// loadScenario reads a scenario file and the stored catalog, and builds a
// calculator wired to the command logger
func loadScenario(cmd *cobra.Command, inputFile string) (*config.Scenario, *catalog.Catalog, *calculation.Calculator, error) {
	parser := config.NewInputParser()
	scenario, err := parser.LoadScenario(inputFile)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, w := range scenario.Warnings {
		logger.Warnf("%s: %s", inputFile, w)
	}
	if scenario.Name == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	}

	s, err := openStore(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	defer s.Close()

	cat, err := s.Load(cmd.Context())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	calc := calculation.NewCalculator()
	calc.SetLogger(logger)
	calc.Debug, _ = cmd.Flags().GetBool("debug")
	return scenario, cat, calc, nil
}

var validateCmd = &cobra.Command{
	Use:   "validate [scenario-file]",
	Short: "Validate a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		parser := config.NewInputParser()
		scenario, err := parser.LoadScenario(inputFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, w := range scenario.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		fmt.Fprintf(out, "Scenario file %s is valid\n", inputFile)
		return nil
	},
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json, html)")
	calculateCmd.Flags().Bool("compact", false, "Print a single-line ranking (table format only)")
}

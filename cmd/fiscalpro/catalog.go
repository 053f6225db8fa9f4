package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/fiscalpro/internal/brl"
	"github.com/rgehrsitz/fiscalpro/internal/catalog"
	"github.com/rgehrsitz/fiscalpro/internal/config"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the ICMS and segment rate tables",
}

// editCatalog loads the catalog, applies fn and saves the result
func editCatalog(cmd *cobra.Command, fn func(c *catalog.Catalog) error) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := fn(c); err != nil {
		return err
	}
	if err := s.Save(cmd.Context(), c); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

func parseSegmentRegime(s string) (domain.SegmentRegime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "presumed", "presumido", "lucro_presumido":
		return domain.SegmentPresumed, nil
	case "real", "lucro_real":
		return domain.SegmentReal, nil
	default:
		return "", fmt.Errorf("unknown regime %q (valid: presumed, real)", s)
	}
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the state and segment tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		c, err := s.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		writeCatalog(cmd.OutOrStdout(), c)
		return nil
	},
}

func writeCatalog(w io.Writer, c *catalog.Catalog) {
	fmt.Fprintln(w, "ICMS POR ESTADO")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, rec := range c.StateRecords() {
		line := fmt.Sprintf("%-24s %10s", rec.State, brl.FormatPercent(rec.RatePercent))
		if rec.HasIncentive() {
			line += fmt.Sprintf("   incentivo %s", brl.FormatPercent(*rec.IncentivePercent))
		}
		fmt.Fprintln(w, line)
	}

	for _, regime := range []domain.SegmentRegime{domain.SegmentPresumed, domain.SegmentReal} {
		rows, _ := c.SegmentTable(regime)
		fmt.Fprintf(w, "\nSEGMENTOS - %s\n", strings.ToUpper(regime.DisplayName()))
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for _, r := range rows {
			fmt.Fprintf(w, "%s\n  PIS %s  COFINS %s  IRPJ %s  CSLL %s",
				r.SegmentName,
				brl.FormatPercent(r.PIS), brl.FormatPercent(r.COFINS),
				brl.FormatPercent(r.IncomeTaxRate), brl.FormatPercent(r.SocialContributionRate))
			if regime == domain.SegmentPresumed {
				fmt.Fprintf(w, "  presunção IRPJ %s  CSLL %s",
					brl.FormatPercent(r.IncomeTaxPresumptionRate), brl.FormatPercent(r.SocialContributionPresumptionRate))
			}
			fmt.Fprintln(w)
		}
	}
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Overwrite the store with the default catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Save(cmd.Context(), catalog.Default()); err != nil {
			return fmt.Errorf("failed to save catalog: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Default catalog saved")
		return nil
	},
}

var catalogAddStateCmd = &cobra.Command{
	Use:   "add-state [name] [rate]",
	Short: "Add a state, or replace it with --replace",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rate, err := brl.ParsePercent(args[1])
		if err != nil {
			return err
		}
		rec := domain.StateIcmsRecord{State: args[0], RatePercent: rate}

		if raw, _ := cmd.Flags().GetString("incentive"); raw != "" {
			inc, err := brl.ParsePercent(raw)
			if err != nil {
				return err
			}
			rec.IncentivePercent = &inc
		}
		replace, _ := cmd.Flags().GetBool("replace")

		err = editCatalog(cmd, func(c *catalog.Catalog) error {
			if replace {
				return c.UpdateState(args[0], rec)
			}
			return c.AddState(rec)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "State %s saved\n", domain.NormalizeStateName(args[0]))
		return nil
	},
}

var catalogRemoveStateCmd = &cobra.Command{
	Use:   "remove-state [name]",
	Short: "Remove a state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := editCatalog(cmd, func(c *catalog.Catalog) error {
			return c.RemoveState(args[0])
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "State %s removed\n", args[0])
		return nil
	},
}

var catalogSetSegmentCmd = &cobra.Command{
	Use:   "set-segment [presumed|real] [name]",
	Short: "Add or replace a segment row",
	Long: `Add or replace a segment row. Rates are percentages and accept the
Brazilian notation ("1,65%").

Example:
  fiscalpro catalog set-segment real "Construção Civil" --pis 1,65 --cofins 7,6 --irpj 15 --csll 9
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		regime, err := parseSegmentRegime(args[0])
		if err != nil {
			return err
		}

		rec := domain.SegmentTaxRecord{SegmentName: args[1]}
		targets := map[string]*decimal.Decimal{
			"pis":              &rec.PIS,
			"cofins":           &rec.COFINS,
			"irpj":             &rec.IncomeTaxRate,
			"irpj-presumption": &rec.IncomeTaxPresumptionRate,
			"csll":             &rec.SocialContributionRate,
			"csll-presumption": &rec.SocialContributionPresumptionRate,
		}
		for _, name := range segmentRateFlags {
			raw, _ := cmd.Flags().GetString(name)
			v, err := brl.ParsePercent(raw)
			if err != nil {
				return fmt.Errorf("--%s: %w", name, err)
			}
			*targets[name] = v
		}

		err = editCatalog(cmd, func(c *catalog.Catalog) error {
			return c.UpsertSegment(regime, rec)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Segment %s saved in %s\n", strings.TrimSpace(args[1]), regime.DisplayName())
		return nil
	},
}

var segmentRateFlags = []string{"pis", "cofins", "irpj", "irpj-presumption", "csll", "csll-presumption"}

var catalogRemoveSegmentCmd = &cobra.Command{
	Use:   "remove-segment [presumed|real] [name]",
	Short: "Remove a segment row",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		regime, err := parseSegmentRegime(args[0])
		if err != nil {
			return err
		}
		err = editCatalog(cmd, func(c *catalog.Catalog) error {
			return c.RemoveSegment(regime, args[1])
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Segment %s removed from %s\n", args[1], regime.DisplayName())
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the stored catalog as YAML (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		c, err := s.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		data, err := config.NewInputParser().MarshalCatalog(c)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the stored catalog with a YAML catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.NewInputParser().LoadCatalog(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Save(cmd.Context(), c); err != nil {
			return fmt.Errorf("failed to save catalog: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog imported from %s\n", args[0])
		return nil
	},
}

func init() {
	catalogAddStateCmd.Flags().String("incentive", "", "Incentive ICMS rate")
	catalogAddStateCmd.Flags().Bool("replace", false, "Replace an existing state instead of adding")

	for _, name := range segmentRateFlags {
		catalogSetSegmentCmd.Flags().String(name, "0", strings.ToUpper(strings.ReplaceAll(name, "-", " "))+" rate")
	}

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSeedCmd)
	catalogCmd.AddCommand(catalogAddStateCmd)
	catalogCmd.AddCommand(catalogRemoveStateCmd)
	catalogCmd.AddCommand(catalogSetSegmentCmd)
	catalogCmd.AddCommand(catalogRemoveSegmentCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogImportCmd)
}

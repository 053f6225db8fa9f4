package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/fiscalpro/internal/brl"
	"github.com/rgehrsitz/fiscalpro/internal/catalog"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ScenarioFile is the on-disk scenario format. Figures are kept as strings
// so they can be written the Brazilian way ("R$ 1.000,00", "18%").
type ScenarioFile struct {
	Name           string       `yaml:"name"`
	State          string       `yaml:"state"`
	IncentiveState string       `yaml:"incentive_state"`
	ICMSSource     string       `yaml:"icms_source"`
	ServiceTaxRate string       `yaml:"service_tax_rate"`
	Segment        string       `yaml:"segment"`
	SimplesAnnex   string       `yaml:"simples_annex"`
	Revenue        RevenueFile  `yaml:"revenue"`
	Costs          CostsFile    `yaml:"costs"`
	Expenses       ExpensesFile `yaml:"expenses"`
	RET            RETFile      `yaml:"ret"`
}

// RevenueFile holds the revenue figures
type RevenueFile struct {
	Products           string `yaml:"products"`
	MonophasicProducts string `yaml:"monophasic_products"`
	Services           string `yaml:"services"`
}

// CostsFile holds the product cost figures
type CostsFile struct {
	Products           string `yaml:"products"`
	MonophasicProducts string `yaml:"monophasic_products"`
}

// ExpensesFile holds the remaining outflows
type ExpensesFile struct {
	Fixed     string `yaml:"fixed"`
	Variable  string `yaml:"variable"`
	OwnerDraw string `yaml:"owner_draw"`
	Payroll   string `yaml:"payroll"`
}

// RETFile toggles the RET components
type RETFile struct {
	SingleTax bool `yaml:"single_tax"`
	FGTS      bool `yaml:"fgts"`
}

// Scenario is a parsed scenario ready for the calculator
type Scenario struct {
	Name  string
	Input domain.ScenarioInput
	// Warnings lists figures that could not be parsed and were read as zero
	Warnings []string
}

// InputParser handles parsing of scenario and catalog files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadScenario loads and validates a scenario from a YAML file
func (ip *InputParser) LoadScenario(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML
func (ip *InputParser) ParseScenario(data []byte) (*Scenario, error) {
	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	scenario, err := ip.BuildScenario(file)
	if err != nil {
		return nil, err
	}
	if err := ip.ValidateScenario(scenario); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return scenario, nil
}

// BuildScenario converts the file form into a ScenarioInput. Malformed figures
// become zero and are reported in Warnings.
func (ip *InputParser) BuildScenario(file ScenarioFile) (*Scenario, error) {
	source, err := domain.ParseICMSSource(file.ICMSSource)
	if err != nil {
		return nil, err
	}
	annex, err := domain.ParseSimplesAnnex(file.SimplesAnnex)
	if err != nil {
		return nil, err
	}

	s := &Scenario{Name: file.Name}
	amount := func(field, value string) decimal.Decimal {
		d, err := brl.ParseAmount(value)
		if err != nil {
			s.Warnings = append(s.Warnings, fmt.Sprintf("%s: %v; using 0", field, err))
			return decimal.Zero
		}
		return d
	}

	s.Input = domain.ScenarioInput{
		SelectedState:          domain.NormalizeStateName(file.State),
		SelectedIncentiveState: domain.NormalizeStateName(file.IncentiveState),
		ICMSSource:             source,
		ServiceTaxRatePercent:  amount("service_tax_rate", file.ServiceTaxRate),
		SelectedSegment:        strings.TrimSpace(file.Segment),
		SimplesAnnex:           annex,

		ProductRevenue:           amount("revenue.products", file.Revenue.Products),
		MonophasicProductRevenue: amount("revenue.monophasic_products", file.Revenue.MonophasicProducts),
		ServiceRevenue:           amount("revenue.services", file.Revenue.Services),
		ProductCost:              amount("costs.products", file.Costs.Products),
		MonophasicProductCost:    amount("costs.monophasic_products", file.Costs.MonophasicProducts),
		FixedExpenses:            amount("expenses.fixed", file.Expenses.Fixed),
		VariableExpenses:         amount("expenses.variable", file.Expenses.Variable),
		OwnerDraw:                amount("expenses.owner_draw", file.Expenses.OwnerDraw),
		Payroll:                  amount("expenses.payroll", file.Expenses.Payroll),

		RETSingleTaxEnabled: file.RET.SingleTax,
		RETFGTSEnabled:      file.RET.FGTS,
	}
	return s, nil
}

// ValidateScenario rejects negative figures and out-of-range rates
func (ip *InputParser) ValidateScenario(s *Scenario) error {
	in := s.Input
	figures := []struct {
		name  string
		value decimal.Decimal
	}{
		{"product revenue", in.ProductRevenue},
		{"monophasic product revenue", in.MonophasicProductRevenue},
		{"service revenue", in.ServiceRevenue},
		{"product cost", in.ProductCost},
		{"monophasic product cost", in.MonophasicProductCost},
		{"fixed expenses", in.FixedExpenses},
		{"variable expenses", in.VariableExpenses},
		{"owner draw", in.OwnerDraw},
		{"payroll", in.Payroll},
	}
	for _, f := range figures {
		if f.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", f.name)
		}
	}
	if in.ServiceTaxRatePercent.IsNegative() || in.ServiceTaxRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("service tax rate must be between 0 and 100")
	}
	if in.SimplesAnnex < domain.AnnexI || in.SimplesAnnex > domain.AnnexV {
		return fmt.Errorf("simples annex must be between I and V")
	}
	return nil
}

// LoadCatalog loads and validates a catalog from a YAML file
func (ip *InputParser) LoadCatalog(filename string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseCatalog(data)
}

// ParseCatalog parses and validates catalog YAML
func (ip *InputParser) ParseCatalog(data []byte) (*catalog.Catalog, error) {
	var file catalog.File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	c, err := catalog.FromFile(file)
	if err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}
	return c, nil
}

// MarshalCatalog renders a catalog as YAML
func (ip *InputParser) MarshalCatalog(c *catalog.Catalog) ([]byte, error) {
	data, err := yaml.Marshal(c.ToFile())
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return data, nil
}

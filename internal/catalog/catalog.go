// Package catalog holds the rate tables the comparison calculator reads: the
// ordered state ICMS list and the Lucro Presumido / Lucro Real segment tables.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrDuplicateState is returned when a state name is already present
	ErrDuplicateState = errors.New("state already exists")
	// ErrStateNotFound is returned when a state name is unknown
	ErrStateNotFound = errors.New("state not found")
	// ErrSegmentNotFound is returned when a segment name is unknown
	ErrSegmentNotFound = errors.New("segment not found")
)

// Catalog is an in-memory snapshot of every rate table
type Catalog struct {
	States   []domain.StateOption
	Presumed []domain.SegmentTaxRecord
	Real     []domain.SegmentTaxRecord
}

// StateOptions returns the state list, separators included
func (c *Catalog) StateOptions() ([]domain.StateOption, error) {
	return c.States, nil
}

// SegmentTable returns the rows of one regime table
func (c *Catalog) SegmentTable(regime domain.SegmentRegime) ([]domain.SegmentTaxRecord, error) {
	switch regime {
	case domain.SegmentPresumed:
		return c.Presumed, nil
	case domain.SegmentReal:
		return c.Real, nil
	default:
		return nil, fmt.Errorf("unknown segment regime %q", regime)
	}
}

// StateRecords returns the real states, separators excluded
func (c *Catalog) StateRecords() []domain.StateIcmsRecord {
	records := make([]domain.StateIcmsRecord, 0, len(c.States))
	for _, opt := range c.States {
		if rec, ok := opt.(domain.StateIcmsRecord); ok {
			records = append(records, rec)
		}
	}
	return records
}

// FindState returns the record of a state, ignoring case
func (c *Catalog) FindState(name string) (domain.StateIcmsRecord, bool) {
	i := c.stateIndex(name)
	if i < 0 {
		return domain.StateIcmsRecord{}, false
	}
	return c.States[i].(domain.StateIcmsRecord), true
}

func (c *Catalog) stateIndex(name string) int {
	for i, opt := range c.States {
		rec, ok := opt.(domain.StateIcmsRecord)
		if ok && domain.SameState(rec.State, name) {
			return i
		}
	}
	return -1
}

// AddState appends a new state record
func (c *Catalog) AddState(rec domain.StateIcmsRecord) error {
	rec.State = domain.NormalizeStateName(rec.State)
	if err := validateState(rec); err != nil {
		return err
	}
	if c.stateIndex(rec.State) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateState, rec.State)
	}
	c.States = append(c.States, rec)
	return nil
}

// UpdateState replaces the record stored under name. The record may rename
// the state as long as the new name is not taken by another entry.
func (c *Catalog) UpdateState(name string, rec domain.StateIcmsRecord) error {
	rec.State = domain.NormalizeStateName(rec.State)
	if err := validateState(rec); err != nil {
		return err
	}
	i := c.stateIndex(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrStateNotFound, name)
	}
	if j := c.stateIndex(rec.State); j >= 0 && j != i {
		return fmt.Errorf("%w: %s", ErrDuplicateState, rec.State)
	}
	c.States[i] = rec
	return nil
}

// RemoveState deletes a state record
func (c *Catalog) RemoveState(name string) error {
	i := c.stateIndex(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrStateNotFound, name)
	}
	c.States = append(c.States[:i], c.States[i+1:]...)
	return nil
}

// UpsertSegment inserts or replaces a segment row, matching names exactly
// but ignoring case
func (c *Catalog) UpsertSegment(regime domain.SegmentRegime, rec domain.SegmentTaxRecord) error {
	rec.SegmentName = strings.TrimSpace(rec.SegmentName)
	if err := validateSegment(rec); err != nil {
		return err
	}
	table, err := c.table(regime)
	if err != nil {
		return err
	}
	for i := range *table {
		if strings.EqualFold((*table)[i].SegmentName, rec.SegmentName) {
			(*table)[i] = rec
			return nil
		}
	}
	*table = append(*table, rec)
	return nil
}

// RemoveSegment deletes a segment row
func (c *Catalog) RemoveSegment(regime domain.SegmentRegime, name string) error {
	table, err := c.table(regime)
	if err != nil {
		return err
	}
	for i := range *table {
		if strings.EqualFold((*table)[i].SegmentName, strings.TrimSpace(name)) {
			*table = append((*table)[:i], (*table)[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s (%s)", ErrSegmentNotFound, name, regime.DisplayName())
}

// SegmentNames lists every segment name of both tables, presumed first,
// without duplicates
func (c *Catalog) SegmentNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, table := range [][]domain.SegmentTaxRecord{c.Presumed, c.Real} {
		for _, rec := range table {
			key := strings.ToLower(rec.SegmentName)
			if seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, rec.SegmentName)
		}
	}
	return names
}

func (c *Catalog) table(regime domain.SegmentRegime) (*[]domain.SegmentTaxRecord, error) {
	switch regime {
	case domain.SegmentPresumed:
		return &c.Presumed, nil
	case domain.SegmentReal:
		return &c.Real, nil
	default:
		return nil, fmt.Errorf("unknown segment regime %q", regime)
	}
}

// Validate checks every record of the catalog
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for i, opt := range c.States {
		rec, ok := opt.(domain.StateIcmsRecord)
		if !ok {
			continue
		}
		if err := validateState(rec); err != nil {
			return fmt.Errorf("state %d validation failed: %w", i, err)
		}
		key := strings.ToLower(domain.NormalizeStateName(rec.State))
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateState, rec.State)
		}
		seen[key] = true
	}
	for _, regime := range []domain.SegmentRegime{domain.SegmentPresumed, domain.SegmentReal} {
		table, _ := c.table(regime)
		for _, rec := range *table {
			if err := validateSegment(rec); err != nil {
				return fmt.Errorf("%s segment %q validation failed: %w", regime.DisplayName(), rec.SegmentName, err)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the catalog
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		States:   make([]domain.StateOption, len(c.States)),
		Presumed: append([]domain.SegmentTaxRecord(nil), c.Presumed...),
		Real:     append([]domain.SegmentTaxRecord(nil), c.Real...),
	}
	for i, opt := range c.States {
		if rec, ok := opt.(domain.StateIcmsRecord); ok && rec.IncentivePercent != nil {
			v := *rec.IncentivePercent
			rec.IncentivePercent = &v
			out.States[i] = rec
			continue
		}
		out.States[i] = opt
	}
	return out
}

func validateState(rec domain.StateIcmsRecord) error {
	if rec.State == "" {
		return fmt.Errorf("state name is required")
	}
	if rec.State == domain.SeparatorLabel {
		return fmt.Errorf("state name %q is reserved", rec.State)
	}
	if err := checkPercent("ICMS rate", rec.RatePercent); err != nil {
		return err
	}
	if rec.IncentivePercent != nil {
		if err := checkPercent("incentive rate", *rec.IncentivePercent); err != nil {
			return err
		}
	}
	return nil
}

func validateSegment(rec domain.SegmentTaxRecord) error {
	if rec.SegmentName == "" {
		return fmt.Errorf("segment name is required")
	}
	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"PIS", rec.PIS},
		{"COFINS", rec.COFINS},
		{"IRPJ", rec.IncomeTaxRate},
		{"IRPJ presumption", rec.IncomeTaxPresumptionRate},
		{"CSLL", rec.SocialContributionRate},
		{"CSLL presumption", rec.SocialContributionPresumptionRate},
	}
	for _, r := range rates {
		if err := checkPercent(r.name, r.value); err != nil {
			return err
		}
	}
	return nil
}

func checkPercent(name string, v decimal.Decimal) error {
	if v.LessThan(decimal.Zero) || v.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%s must be between 0 and 100, got %s", name, v.String())
	}
	return nil
}

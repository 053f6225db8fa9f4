package catalog

import (
	"github.com/rgehrsitz/fiscalpro/internal/domain"
)

// File is the serialized form of a catalog
type File struct {
	States   []StateEntry              `yaml:"states" json:"states"`
	Presumed []domain.SegmentTaxRecord `yaml:"lucro_presumido" json:"lucroPresumido"`
	Real     []domain.SegmentTaxRecord `yaml:"lucro_real" json:"lucroReal"`
}

// StateEntry is one serialized state list entry. Separator entries carry no
// record fields.
type StateEntry struct {
	Separator              bool `yaml:"separator,omitempty" json:"separator,omitempty"`
	domain.StateIcmsRecord `yaml:",inline"`
}

// ToFile converts the catalog into its serialized form
func (c *Catalog) ToFile() File {
	f := File{
		States:   make([]StateEntry, 0, len(c.States)),
		Presumed: c.Presumed,
		Real:     c.Real,
	}
	for _, opt := range c.States {
		switch o := opt.(type) {
		case domain.StateIcmsRecord:
			f.States = append(f.States, StateEntry{StateIcmsRecord: o})
		case domain.Separator:
			f.States = append(f.States, StateEntry{Separator: true})
		}
	}
	return f
}

// FromFile builds a catalog from its serialized form and validates it
func FromFile(f File) (*Catalog, error) {
	c := &Catalog{
		States:   make([]domain.StateOption, 0, len(f.States)),
		Presumed: f.Presumed,
		Real:     f.Real,
	}
	for _, e := range f.States {
		if e.Separator {
			c.States = append(c.States, domain.Separator{})
			continue
		}
		rec := e.StateIcmsRecord
		rec.State = domain.NormalizeStateName(rec.State)
		c.States = append(c.States, rec)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

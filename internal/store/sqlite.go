package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rgehrsitz/fiscalpro/internal/catalog"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the catalog in a SQLite database. Rates are stored as
// decimal text so no precision is lost.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens or creates the database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases alive between calls
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshot (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		saved_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS states (
		position INTEGER PRIMARY KEY,
		separator INTEGER NOT NULL DEFAULT 0,
		state TEXT NOT NULL DEFAULT '',
		rate TEXT NOT NULL DEFAULT '0',
		incentive TEXT
	);

	CREATE TABLE IF NOT EXISTS segments (
		regime TEXT NOT NULL,
		position INTEGER NOT NULL,
		segment TEXT NOT NULL,
		pis TEXT NOT NULL,
		cofins TEXT NOT NULL,
		irpj TEXT NOT NULL,
		irpj_presumption TEXT NOT NULL,
		csll TEXT NOT NULL,
		csll_presumption TEXT NOT NULL,
		PRIMARY KEY (regime, position)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the last saved snapshot, or the default catalog if nothing was
// ever saved
func (s *SQLiteStore) Load(ctx context.Context) (*catalog.Catalog, error) {
	var savedAt string
	err := s.db.QueryRowContext(ctx, `SELECT saved_at FROM snapshot WHERE id = 1`).Scan(&savedAt)
	if err == sql.ErrNoRows {
		return catalog.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	c := &catalog.Catalog{}
	if c.States, err = s.loadStates(ctx); err != nil {
		return nil, err
	}
	if c.Presumed, err = s.loadSegments(ctx, domain.SegmentPresumed); err != nil {
		return nil, err
	}
	if c.Real, err = s.loadSegments(ctx, domain.SegmentReal); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("stored catalog is invalid: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) loadStates(ctx context.Context) ([]domain.StateOption, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT separator, state, rate, incentive FROM states ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query states: %w", err)
	}
	defer rows.Close()

	var states []domain.StateOption
	for rows.Next() {
		var (
			separator bool
			name      string
			rate      string
			incentive sql.NullString
		)
		if err := rows.Scan(&separator, &name, &rate, &incentive); err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		if separator {
			states = append(states, domain.Separator{})
			continue
		}
		rec := domain.StateIcmsRecord{State: name}
		if rec.RatePercent, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("state %s has invalid rate %q: %w", name, rate, err)
		}
		if incentive.Valid {
			v, err := decimal.NewFromString(incentive.String)
			if err != nil {
				return nil, fmt.Errorf("state %s has invalid incentive %q: %w", name, incentive.String, err)
			}
			rec.IncentivePercent = &v
		}
		states = append(states, rec)
	}
	return states, rows.Err()
}

func (s *SQLiteStore) loadSegments(ctx context.Context, regime domain.SegmentRegime) ([]domain.SegmentTaxRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT segment, pis, cofins, irpj, irpj_presumption, csll, csll_presumption
		FROM segments WHERE regime = ? ORDER BY position`, string(regime))
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	var out []domain.SegmentTaxRecord
	for rows.Next() {
		var name string
		var raw [6]string
		if err := rows.Scan(&name, &raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &raw[5]); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		var vals [6]decimal.Decimal
		for i, r := range raw {
			if vals[i], err = decimal.NewFromString(r); err != nil {
				return nil, fmt.Errorf("segment %s has invalid rate %q: %w", name, r, err)
			}
		}
		out = append(out, domain.SegmentTaxRecord{
			SegmentName:                       name,
			PIS:                               vals[0],
			COFINS:                            vals[1],
			IncomeTaxRate:                     vals[2],
			IncomeTaxPresumptionRate:          vals[3],
			SocialContributionRate:            vals[4],
			SocialContributionPresumptionRate: vals[5],
		})
	}
	return out, rows.Err()
}

// Save replaces the stored snapshot inside a single transaction
func (s *SQLiteStore) Save(ctx context.Context, c *catalog.Catalog) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid catalog: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM states`, `DELETE FROM segments`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
	}

	for i, opt := range c.States {
		var err error
		switch o := opt.(type) {
		case domain.Separator:
			_, err = tx.ExecContext(ctx, `INSERT INTO states (position, separator) VALUES (?, 1)`, i)
		case domain.StateIcmsRecord:
			var incentive sql.NullString
			if o.IncentivePercent != nil {
				incentive = sql.NullString{String: o.IncentivePercent.String(), Valid: true}
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO states (position, separator, state, rate, incentive) VALUES (?, 0, ?, ?, ?)`,
				i, o.State, o.RatePercent.String(), incentive)
		}
		if err != nil {
			return fmt.Errorf("failed to insert state %d: %w", i, err)
		}
	}

	tables := map[domain.SegmentRegime][]domain.SegmentTaxRecord{
		domain.SegmentPresumed: c.Presumed,
		domain.SegmentReal:     c.Real,
	}
	for regime, rows := range tables {
		for i, r := range rows {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO segments (regime, position, segment, pis, cofins, irpj, irpj_presumption, csll, csll_presumption)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				string(regime), i, r.SegmentName,
				r.PIS.String(), r.COFINS.String(),
				r.IncomeTaxRate.String(), r.IncomeTaxPresumptionRate.String(),
				r.SocialContributionRate.String(), r.SocialContributionPresumptionRate.String())
			if err != nil {
				return fmt.Errorf("failed to insert segment %s: %w", r.SegmentName, err)
			}
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshot (id, saved_at) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at`,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to stamp snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Package calibration implements the offline Calibration Harness: it runs
// the scoring pipeline's pre-normalization stages over a historical span of
// (chart, day) pairs, stores the raw DTI/HQS samples in a sqlite database,
// and derives per-meter percentile tables and ballast values from them.
package calibration

import (
	"database/sql"
	"fmt"
	"sort"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS samples (
  meter_id    TEXT NOT NULL,
  chart_hash  INTEGER NOT NULL,
  sample_date TEXT NOT NULL,
  dti_raw     REAL NOT NULL,
  hqs_raw     REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_samples_meter ON samples(meter_id);

CREATE TABLE IF NOT EXISTS percentiles (
  meter_id TEXT NOT NULL,
  kind     TEXT NOT NULL CHECK(kind IN ('dti','hqs')),
  value    REAL NOT NULL,
  ord      INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_percentiles_meter_kind_ord ON percentiles(meter_id, kind, ord);
`

// Store wraps the sqlite-backed raw-sample and percentile-table storage for
// the Calibration Harness.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if absent) the sqlite database at path and
// ensures its schema exists.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("calibration: opening store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("calibration: creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertSample records one (meter, chart, day) raw DTI/HQS observation.
func (s *Store) InsertSample(meterID string, chartHash uint64, sampleDate string, dtiRaw, hqsRaw float64) error {
	_, err := s.db.Exec(
		`INSERT INTO samples (meter_id, chart_hash, sample_date, dti_raw, hqs_raw) VALUES (?, ?, ?, ?, ?)`,
		meterID, int64(chartHash), sampleDate, dtiRaw, hqsRaw,
	)
	return err
}

// SampleSeries returns every raw (dti, hqs) pair recorded for a meter, in
// insertion order.
func (s *Store) SampleSeries(meterID string) (dti []float64, hqs []float64, err error) {
	rows, err := s.db.Query(`SELECT dti_raw, hqs_raw FROM samples WHERE meter_id = ?`, meterID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d, h float64
		if err := rows.Scan(&d, &h); err != nil {
			return nil, nil, err
		}
		dti = append(dti, d)
		hqs = append(hqs, h)
	}
	return dti, hqs, rows.Err()
}

// PairedHQS returns the (chart_hash, sample_date) -> hqs_raw map for a
// meter, keyed for joining against another meter's samples when computing
// cross-meter correlation.
func (s *Store) PairedHQS(meterID string) (map[string]float64, error) {
	rows, err := s.db.Query(`SELECT chart_hash, sample_date, hqs_raw FROM samples WHERE meter_id = ?`, meterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var chartHash int64
		var date string
		var hqs float64
		if err := rows.Scan(&chartHash, &date, &hqs); err != nil {
			return nil, err
		}
		out[fmt.Sprintf("%d|%s", chartHash, date)] = hqs
	}
	return out, rows.Err()
}

// ReplacePercentiles atomically rewrites the sorted percentile table for
// (meterID, kind).
func (s *Store) ReplacePercentiles(meterID, kind string, values []float64) error {
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM percentiles WHERE meter_id = ? AND kind = ?`, meterID, kind); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO percentiles (meter_id, kind, value, ord) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, v := range sorted {
		if _, err := stmt.Exec(meterID, kind, v, i); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// LoadPercentiles returns the stored sorted-ascending percentile table for
// (meterID, kind).
func (s *Store) LoadPercentiles(meterID, kind string) ([]float64, error) {
	rows, err := s.db.Query(
		`SELECT value FROM percentiles WHERE meter_id = ? AND kind = ? ORDER BY ord ASC`,
		meterID, kind,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

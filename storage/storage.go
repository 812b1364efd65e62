// Package storage loads the star-schema tables into Postgres and reads
// back the joined vaccine-usage star for the cube builder.
package storage

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/opendata-cz/cubepipe/tabular"
	"github.com/opendata-cz/cubepipe/transform"
)

//go:embed schema.sql
var schemaSQL string

//go:embed constraints.sql
var constraintsSQL string

// Drop order matters before the constraints exist only for symmetry
// with the insert order; facts go first so reruns on a constrained
// schema never trip a foreign key.
var dropOrder = []string{
	"fact_covid_cases",
	"fact_vaccine_usage",
	"dim_dates",
	"dim_districts",
	"dim_vaccination_stations",
	"dim_vaccines",
}

// Loader owns the database connection for the load stage.
type Loader struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// Open connects to Postgres.
func Open(dsn string, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return &Loader{db: db, logger: logger}, nil
}

// Close releases the connection.
func (l *Loader) Close() error {
	return l.db.Close()
}

// Load recreates the six tables from the CSVs in tablesDir and applies
// the primary and foreign keys afterwards, so bulk inserts run
// unconstrained.
func (l *Loader) Load(ctx context.Context, tablesDir string) error {
	if err := CheckTables(tablesDir); err != nil {
		return err
	}

	for _, table := range dropOrder {
		if _, err := l.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	for _, stmt := range splitStatements(schemaSQL) {
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}

	if err := l.insertAll(ctx, tablesDir); err != nil {
		return err
	}

	for _, stmt := range splitStatements(constraintsSQL) {
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply constraints: %w", err)
		}
	}

	l.logger.Info("data insertion and table alteration completed")
	return nil
}

func (l *Loader) insertAll(ctx context.Context, tablesDir string) error {
	factCases, err := tabular.ReadFile[transform.FactCovidCase](filepath.Join(tablesDir, transform.FactCasesFile))
	if err != nil {
		return err
	}
	if err := l.insert(ctx, "fact_covid_cases", insertFactCases, factCases); err != nil {
		return err
	}

	factUsage, err := tabular.ReadFile[transform.FactVaccineUsage](filepath.Join(tablesDir, transform.FactUsageFile))
	if err != nil {
		return err
	}
	if err := l.insert(ctx, "fact_vaccine_usage", insertFactUsage, factUsage); err != nil {
		return err
	}

	dates, err := tabular.ReadFile[transform.DimDate](filepath.Join(tablesDir, transform.DimDatesFile))
	if err != nil {
		return err
	}
	if err := l.insert(ctx, "dim_dates", insertDimDates, dates); err != nil {
		return err
	}

	districts, err := tabular.ReadFile[transform.DimDistrict](filepath.Join(tablesDir, transform.DimDistrictsFile))
	if err != nil {
		return err
	}
	if err := l.insert(ctx, "dim_districts", insertDimDistricts, districtRows(districts)); err != nil {
		return err
	}

	stations, err := tabular.ReadFile[transform.DimStation](filepath.Join(tablesDir, transform.DimStationsFile))
	if err != nil {
		return err
	}
	if err := l.insert(ctx, "dim_vaccination_stations", insertDimStations, stationRows(stations)); err != nil {
		return err
	}

	vaccines, err := tabular.ReadFile[transform.DimVaccine](filepath.Join(tablesDir, transform.DimVaccinesFile))
	if err != nil {
		return err
	}
	return l.insert(ctx, "dim_vaccines", insertDimVaccines, vaccines)
}

func (l *Loader) insert(ctx context.Context, table, query string, rows any) error {
	if _, err := l.db.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	l.logger.Info("table loaded", "table", table)
	return nil
}

// CheckTables verifies that every star-schema CSV is present in
// tablesDir.
func CheckTables(tablesDir string) error {
	matches, err := doublestar.Glob(os.DirFS(tablesDir), "*.csv")
	if err != nil {
		return fmt.Errorf("scan %s: %w", tablesDir, err)
	}
	present := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		present[m] = struct{}{}
	}
	for _, want := range []string{
		transform.DimDatesFile,
		transform.DimDistrictsFile,
		transform.DimStationsFile,
		transform.DimVaccinesFile,
		transform.FactCasesFile,
		transform.FactUsageFile,
	} {
		if _, ok := present[want]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingTable, want)
		}
	}
	return nil
}

func splitStatements(script string) []string {
	var stmts []string
	for _, s := range strings.Split(script, ";") {
		if s = strings.TrimSpace(s); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

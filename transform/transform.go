package transform

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/opendata-cz/cubepipe/source"
	"github.com/opendata-cz/cubepipe/tabular"
)

// Transformer turns the raw datasets into the star-schema table CSVs.
type Transformer struct {
	logger *slog.Logger
}

// NewTransformer returns a Transformer.
func NewTransformer(logger *slog.Logger) *Transformer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transformer{logger: logger}
}

// Run reads the datasets directory and writes the six tables plus the
// two temporary join tables under tablesDir.
func (t *Transformer) Run(datasetsDir, tablesDir string) error {
	districts, err := tabular.ReadFile[source.DistrictRow](filepath.Join(datasetsDir, source.DistrictsFile))
	if err != nil {
		return err
	}
	regions, err := tabular.ReadFile[source.RegionRow](filepath.Join(datasetsDir, source.RegionsFile))
	if err != nil {
		return err
	}
	population, err := tabular.ReadFile[source.PopulationRow](filepath.Join(datasetsDir, source.PopulationFile))
	if err != nil {
		return err
	}
	vaccines, err := tabular.ReadFile[source.VaccineRow](filepath.Join(datasetsDir, source.VaccinesFile))
	if err != nil {
		return err
	}
	stations, err := tabular.ReadFile[StationRecord](filepath.Join(datasetsDir, source.VaccinationStationsFile))
	if err != nil {
		return err
	}
	caseRecords, err := tabular.ReadFile[CovidCaseRecord](filepath.Join(datasetsDir, source.CovidCasesFile))
	if err != nil {
		return err
	}
	usageRecords, err := tabular.ReadFile[UsageRecord](filepath.Join(datasetsDir, source.VaccineUsageFile))
	if err != nil {
		return err
	}

	dimDistricts, tempDistricts := BuildDimDistricts(districts, regions, population)
	dimVaccines := BuildDimVaccines(vaccines)
	dimStations, tempStations := BuildDimStations(stations)

	cases, err := BuildFactCovidCases(caseRecords)
	if err != nil {
		return fmt.Errorf("build fact_covid_cases: %w", err)
	}
	usage := BuildFactVaccineUsage(usageRecords, tempDistricts, tempStations)

	dimDates, factCases, factUsage, err := BuildDimDates(cases, usage)
	if err != nil {
		return fmt.Errorf("build dim_dates: %w", err)
	}

	tempDir := filepath.Join(tablesDir, TempDirName)
	if err := writeTable(t.logger, filepath.Join(tablesDir, DimDistrictsFile), dimDistricts); err != nil {
		return err
	}
	if err := writeTable(t.logger, filepath.Join(tablesDir, DimVaccinesFile), dimVaccines); err != nil {
		return err
	}
	if err := writeTable(t.logger, filepath.Join(tablesDir, DimStationsFile), dimStations); err != nil {
		return err
	}
	if err := writeTable(t.logger, filepath.Join(tablesDir, DimDatesFile), dimDates); err != nil {
		return err
	}
	if err := writeTable(t.logger, filepath.Join(tablesDir, FactCasesFile), factCases); err != nil {
		return err
	}
	if err := writeTable(t.logger, filepath.Join(tablesDir, FactUsageFile), factUsage); err != nil {
		return err
	}
	if err := writeTable(t.logger, filepath.Join(tempDir, TempUsageDistrictFile), tempDistricts); err != nil {
		return err
	}
	return writeTable(t.logger, filepath.Join(tempDir, TempUsageStationFile), tempStations)
}

func writeTable[T any](logger *slog.Logger, path string, rows []T) error {
	if err := tabular.WriteFile(path, rows); err != nil {
		return err
	}
	logger.Info("table saved", "file", path, "rows", len(rows))
	return nil
}

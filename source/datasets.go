// Package source downloads and scrapes the public datasets the pipeline
// is built on: ministry-of-health CSVs, the CZSO population workbook,
// and three Wikipedia tables.
package source

// Dataset file names inside the datasets directory.
const (
	CovidCasesFile          = "covid_cases_dataset.csv"
	VaccinationStationsFile = "vaccination_stations_dataset.csv"
	VaccineUsageFile        = "vaccine_usage_dataset.csv"
	PopulationFile          = "population_dataset.csv"
	RegionsFile             = "regions_dataset.csv"
	DistrictsFile           = "districts_dataset.csv"
	VaccinesFile            = "vaccine_dataset.csv"
)

// PopulationRow is one district of the CZSO population workbook.
type PopulationRow struct {
	District   string `csv:"district"`
	Population string `csv:"population"`
}

// RegionRow is one region scraped from the CZ-NUTS wiki table.
type RegionRow struct {
	Code   string `csv:"code"`
	Region string `csv:"region"`
}

// DistrictRow is one district scraped from the district list, with the
// LAU 1 code looked up on the district's own page.
type DistrictRow struct {
	Code     string `csv:"code"`
	District string `csv:"district"`
	Region   string `csv:"region"`
}

// VaccineRow is one vaccine scraped from the vaccine overview table.
type VaccineRow struct {
	Vaccine     string `csv:"vaccine"`
	Origin      string `csv:"country of origin"`
	Technology  string `csv:"technology"`
	StorageTemp string `csv:"storage temperature"`
}

// Package transform builds the six star-schema tables from the raw
// datasets: four dimensions, two facts, and the two temporary join
// tables the vaccine-usage fact is assembled from.
package transform

// Table file names inside the tables directory.
const (
	DimDatesFile     = "dim_dates.csv"
	DimDistrictsFile = "dim_districts.csv"
	DimStationsFile  = "dim_vaccination_stations.csv"
	DimVaccinesFile  = "dim_vaccines.csv"
	FactCasesFile    = "fact_covid_cases.csv"
	FactUsageFile    = "fact_vaccine_usage.csv"

	TempDirName           = "temp"
	TempUsageDistrictFile = "temp_usage_districts.csv"
	TempUsageStationFile  = "temp_usage_stations.csv"
)

// DimDate is one row of dim_dates.
type DimDate struct {
	DateID    int    `csv:"date_id" db:"date_id"`
	Date      string `csv:"date" db:"date"`
	Year      int    `csv:"year" db:"year"`
	Month     int    `csv:"month" db:"month"`
	MonthName string `csv:"month_name" db:"month_name"`
	Day       int    `csv:"day" db:"day"`
	DayOfWeek string `csv:"day_of_week" db:"day_of_week"`
}

// DimDistrict is one row of dim_districts. Population stays textual
// until load; the source workbook occasionally leaves it blank.
type DimDistrict struct {
	DistrictID   int    `csv:"district_id" db:"district_id"`
	DistrictName string `csv:"district_name" db:"district_name"`
	DistrictCode string `csv:"district_code" db:"district_code"`
	RegionName   string `csv:"region_name" db:"region_name"`
	RegionCode   string `csv:"region_code" db:"region_code"`
	Population   string `csv:"population" db:"population"`
}

// DimStation is one row of dim_vaccination_stations.
type DimStation struct {
	StationID         int    `csv:"station_id" db:"station_id"`
	StationCode       string `csv:"station_code" db:"station_code"`
	StationName       string `csv:"station_name" db:"station_name"`
	StationAddress    string `csv:"station_address" db:"station_address"`
	OperationalStatus string `csv:"operational_status" db:"operational_status"`
	MinimalCapacity   string `csv:"minimal_capacity" db:"minimal_capacity"`
	Accessibility     int    `csv:"accessibility" db:"accessibility"`
}

// DimVaccine is one row of dim_vaccines.
type DimVaccine struct {
	VaccineID    int    `csv:"vaccine_id" db:"vaccine_id"`
	VaccineName  string `csv:"vaccine_name" db:"vaccine_name"`
	Manufacturer string `csv:"manufacturer" db:"manufacturer"`
	Origin       string `csv:"origin" db:"origin"`
	Technology   string `csv:"technology" db:"technology"`
	StorageTemp  string `csv:"storage_temp" db:"storage_temp"`
}

// FactCovidCase is one row of fact_covid_cases.
type FactCovidCase struct {
	DateRef              int     `csv:"date_ref" db:"date_ref"`
	DistrictRef          int     `csv:"district_ref" db:"district_ref"`
	TotalCases           int     `csv:"total_cases" db:"total_cases"`
	TotalCured           int     `csv:"total_cured" db:"total_cured"`
	TotalDeaths          int     `csv:"total_deaths" db:"total_deaths"`
	IncreaseCases        int     `csv:"increase_cases" db:"increase_cases"`
	PercentIncreaseCases float64 `csv:"percent_increase_cases" db:"percent_increase_cases"`
}

// FactVaccineUsage is one row of fact_vaccine_usage.
type FactVaccineUsage struct {
	DateRef           int `csv:"date_ref" db:"date_ref"`
	StationRef        int `csv:"station_ref" db:"station_ref"`
	DistrictRef       int `csv:"district_ref" db:"district_ref"`
	VaccineRef        int `csv:"vaccine_ref" db:"vaccine_ref"`
	UsedAmpules       int `csv:"used_ampules" db:"used_ampules"`
	SpoiledAmpules    int `csv:"spoiled_ampules" db:"spoiled_ampules"`
	AdministeredDoses int `csv:"administered_doses" db:"administered_doses"`
	InvalidDoses      int `csv:"invalid_doses" db:"invalid_doses"`
}

// TempUsageDistrict links district surrogate keys to LAU codes for the
// vaccine-usage join.
type TempUsageDistrict struct {
	DistrictID   int    `csv:"district_id"`
	DistrictCode string `csv:"district_code"`
}

// TempUsageStation links station surrogate keys to station codes and
// the district the station sits in.
type TempUsageStation struct {
	StationID    int    `csv:"station_id"`
	StationCode  string `csv:"station_code"`
	DistrictCode string `csv:"district_code"`
}

// CaseWithDate is a fact_covid_cases row before the date dimension
// replaces its date with a reference.
type CaseWithDate struct {
	Date string
	Fact FactCovidCase
}

// UsageWithDate is a fact_vaccine_usage row before the date dimension
// replaces its date with a reference.
type UsageWithDate struct {
	Date string
	Fact FactVaccineUsage
}

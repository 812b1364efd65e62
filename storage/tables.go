package storage

import (
	"strconv"
	"strings"

	"github.com/opendata-cz/cubepipe/transform"
)

const (
	insertDimDates = `INSERT INTO dim_dates
		(date_id, date, year, month, month_name, day, day_of_week)
		VALUES (:date_id, :date, :year, :month, :month_name, :day, :day_of_week)`

	insertDimDistricts = `INSERT INTO dim_districts
		(district_id, district_name, district_code, region_name, region_code, population)
		VALUES (:district_id, :district_name, :district_code, :region_name, :region_code, :population)`

	insertDimStations = `INSERT INTO dim_vaccination_stations
		(station_id, station_code, station_name, station_address, operational_status, minimal_capacity, accessibility)
		VALUES (:station_id, :station_code, :station_name, :station_address, :operational_status, :minimal_capacity, :accessibility)`

	insertDimVaccines = `INSERT INTO dim_vaccines
		(vaccine_id, vaccine_name, manufacturer, origin, technology, storage_temp)
		VALUES (:vaccine_id, :vaccine_name, :manufacturer, :origin, :technology, :storage_temp)`

	insertFactCases = `INSERT INTO fact_covid_cases
		(date_ref, district_ref, total_cases, total_cured, total_deaths, increase_cases, percent_increase_cases)
		VALUES (:date_ref, :district_ref, :total_cases, :total_cured, :total_deaths, :increase_cases, :percent_increase_cases)`

	insertFactUsage = `INSERT INTO fact_vaccine_usage
		(date_ref, station_ref, district_ref, vaccine_ref, used_ampules, spoiled_ampules, administered_doses, invalid_doses)
		VALUES (:date_ref, :station_ref, :district_ref, :vaccine_ref, :used_ampules, :spoiled_ampules, :administered_doses, :invalid_doses)`
)

// districtInsert carries a dim_districts row with the population parsed
// into the FLOAT column type. Blank populations become NULL.
type districtInsert struct {
	DistrictID   int      `db:"district_id"`
	DistrictName string   `db:"district_name"`
	DistrictCode string   `db:"district_code"`
	RegionName   string   `db:"region_name"`
	RegionCode   string   `db:"region_code"`
	Population   *float64 `db:"population"`
}

// stationInsert carries a dim_vaccination_stations row with the status
// and capacity fields parsed into their column types.
type stationInsert struct {
	StationID         int    `db:"station_id"`
	StationCode       string `db:"station_code"`
	StationName       string `db:"station_name"`
	StationAddress    string `db:"station_address"`
	OperationalStatus *bool  `db:"operational_status"`
	MinimalCapacity   *int   `db:"minimal_capacity"`
	Accessibility     bool   `db:"accessibility"`
}

func districtRows(districts []transform.DimDistrict) []districtInsert {
	rows := make([]districtInsert, len(districts))
	for i, d := range districts {
		rows[i] = districtInsert{
			DistrictID:   d.DistrictID,
			DistrictName: d.DistrictName,
			DistrictCode: d.DistrictCode,
			RegionName:   d.RegionName,
			RegionCode:   d.RegionCode,
			Population:   parseFloat(d.Population),
		}
	}
	return rows
}

func stationRows(stations []transform.DimStation) []stationInsert {
	rows := make([]stationInsert, len(stations))
	for i, s := range stations {
		rows[i] = stationInsert{
			StationID:         s.StationID,
			StationCode:       s.StationCode,
			StationName:       s.StationName,
			StationAddress:    s.StationAddress,
			OperationalStatus: parseBool(s.OperationalStatus),
			MinimalCapacity:   parseInt(s.MinimalCapacity),
			Accessibility:     s.Accessibility != 0,
		}
	}
	return rows
}

func parseFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseInt(s string) *int {
	f := parseFloat(s)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func parseBool(s string) *bool {
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return nil
	}
	return &b
}

package storage

import (
	"context"
	"fmt"
)

// UsageStarRow is one fact_vaccine_usage row joined to its four
// dimensions, the shape the cube builder consumes.
type UsageStarRow struct {
	DateID            int    `db:"date_id"`
	Year              int    `db:"year"`
	Month             int    `db:"month"`
	Day               int    `db:"day"`
	DistrictID        int    `db:"district_id"`
	DistrictName      string `db:"district_name"`
	StationID         int    `db:"station_id"`
	StationName       string `db:"station_name"`
	VaccineID         int    `db:"vaccine_id"`
	VaccineName       string `db:"vaccine_name"`
	UsedAmpules       int    `db:"used_ampules"`
	SpoiledAmpules    int    `db:"spoiled_ampules"`
	AdministeredDoses int    `db:"administered_doses"`
	InvalidDoses      int    `db:"invalid_doses"`
}

const usageStarQuery = `SELECT
		d.date_id, d.year, d.month, d.day,
		di.district_id, di.district_name,
		s.station_id, s.station_name,
		v.vaccine_id, v.vaccine_name,
		f.used_ampules, f.spoiled_ampules, f.administered_doses, f.invalid_doses
	FROM fact_vaccine_usage f
	JOIN dim_dates d ON d.date_id = f.date_ref
	JOIN dim_districts di ON di.district_id = f.district_ref
	JOIN dim_vaccination_stations s ON s.station_id = f.station_ref
	JOIN dim_vaccines v ON v.vaccine_id = f.vaccine_ref
	ORDER BY d.date_id, di.district_id, s.station_id, v.vaccine_id`

// FetchUsageStar reads the vaccine-usage star back out of the database.
func (l *Loader) FetchUsageStar(ctx context.Context) ([]UsageStarRow, error) {
	var rows []UsageStarRow
	if err := l.db.SelectContext(ctx, &rows, usageStarQuery); err != nil {
		return nil, fmt.Errorf("fetch vaccine usage star: %w", err)
	}
	return rows, nil
}

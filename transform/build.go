package transform

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/opendata-cz/cubepipe/source"
)

// The facts cover the two weeks starting 2022-01-01. The covid-cases
// builder also reads 2021-12-31 so the increase on the first day can be
// computed, then drops that day again.
const (
	windowStart = "2022-01-01"
	windowDays  = 14
	seedDate    = "2021-12-31"
)

// vaccineNameRe splits a scraped vaccine cell into name and
// manufacturer. Cells come as "Name (maker)", "maker (Name) detail" or
// "maker: Name".
var vaccineNameRe = regexp.MustCompile(`(\w+ \w+ )?\((.+)\)(.+)?|(.+):(.+)`)

// manufacturerCodes maps a usage-dataset manufacturer to its vaccine
// dimension key.
var manufacturerCodes = map[string]int{
	"Pfizer":            1,
	"Moderna":           2,
	"AstraZeneca":       3,
	"Gam-COVID-Vac":     5,
	"Sinovac":           6,
	"Sinopharm":         7,
	"Covaxin":           8,
	"Convidicea":        9,
	"ЭпиВакКорона":      10,
	"Johnson & Johnson": 11,
	"CoviVac":           12,
	"RBD-Dimer":         13,
	"WIBP-Cor":          14,
	"QazCovid-in":       15,
}

// BuildDimDistricts joins the scraped districts with the region table
// and the population workbook. Regions without a district of their own
// (Prague) get a synthetic district row carrying the region's name and
// a code derived from the region code. Districts whose region is not in
// the region table are dropped.
func BuildDimDistricts(districts []source.DistrictRow, regions []source.RegionRow, population []source.PopulationRow) ([]DimDistrict, []TempUsageDistrict) {
	sorted := make([]source.DistrictRow, len(districts))
	copy(sorted, districts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	populationByDistrict := make(map[string]string, len(population))
	for _, p := range population {
		populationByDistrict[p.District] = p.Population
	}

	var rows []DimDistrict
	for _, region := range regions {
		matched := false
		for _, d := range sorted {
			if d.Region != region.Region {
				continue
			}
			matched = true
			rows = append(rows, DimDistrict{
				DistrictName: d.District,
				DistrictCode: d.Code,
				RegionName:   region.Region,
				RegionCode:   region.Code,
				Population:   populationByDistrict[d.District],
			})
		}
		if !matched {
			rows = append(rows, DimDistrict{
				DistrictName: region.Region,
				DistrictCode: region.Code + "0",
				RegionName:   region.Region,
				RegionCode:   region.Code,
				Population:   populationByDistrict[region.Region],
			})
		}
	}

	temp := make([]TempUsageDistrict, len(rows))
	for i := range rows {
		rows[i].DistrictID = i + 1
		temp[i] = TempUsageDistrict{DistrictID: rows[i].DistrictID, DistrictCode: rows[i].DistrictCode}
	}
	return rows, temp
}

// BuildDimVaccines splits each scraped vaccine cell into name and
// manufacturer.
func BuildDimVaccines(vaccines []source.VaccineRow) []DimVaccine {
	rows := make([]DimVaccine, 0, len(vaccines))
	for i, v := range vaccines {
		name, manufacturer := splitVaccineName(v.Vaccine)
		rows = append(rows, DimVaccine{
			VaccineID:    i + 1,
			VaccineName:  name,
			Manufacturer: manufacturer,
			Origin:       v.Origin,
			Technology:   v.Technology,
			StorageTemp:  v.StorageTemp,
		})
	}
	return rows
}

func splitVaccineName(cell string) (name, manufacturer string) {
	m := vaccineNameRe.FindStringSubmatch(cell)
	first, rest, _ := strings.Cut(cell, " ")

	pick := func(candidates ...string) string {
		for _, c := range candidates {
			if strings.TrimSpace(c) != "" {
				return strings.TrimSpace(c)
			}
		}
		return ""
	}

	if m == nil {
		return pick(first), pick(rest)
	}
	name = pick(m[2], m[4], first)
	manufacturer = pick(m[3], m[5], m[1], rest)
	return name, manufacturer
}

// BuildDimStations orders the stations by their source code and assigns
// surrogate keys, also producing the station join table.
func BuildDimStations(records []StationRecord) ([]DimStation, []TempUsageStation) {
	sorted := make([]StationRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StationCode < sorted[j].StationCode })

	rows := make([]DimStation, len(sorted))
	temp := make([]TempUsageStation, len(sorted))
	for i, r := range sorted {
		rows[i] = DimStation{
			StationID:         i + 1,
			StationCode:       r.StationCode,
			StationName:       r.StationName,
			StationAddress:    r.StationAddress,
			OperationalStatus: r.OperationalStatus,
			MinimalCapacity:   r.MinimalCapacity,
			Accessibility:     parseFlag(r.Accessibility),
		}
		temp[i] = TempUsageStation{
			StationID:    rows[i].StationID,
			StationCode:  r.StationCode,
			DistrictCode: r.DistrictCode,
		}
	}
	return rows, temp
}

// BuildFactCovidCases windows the cases dataset, assigns district
// references from the sorted distinct LAU codes, and derives the daily
// increase by differencing against the previous day's row for the same
// district. The seed day rows exist only for that difference and are
// dropped from the output.
func BuildFactCovidCases(records []CovidCaseRecord) ([]CaseWithDate, error) {
	window := caseWindow()

	var selected []CovidCaseRecord
	for _, r := range records {
		if _, ok := window[r.Date]; ok && r.DistrictLAU != "" {
			selected = append(selected, r)
		}
	}

	codes := distinctSorted(selected)
	refByCode := make(map[string]int, len(codes))
	for i, c := range codes {
		refByCode[c] = i + 1
	}
	numDistricts := len(codes)
	if numDistricts == 0 {
		return nil, nil
	}

	totals := make([]int, len(selected))
	rows := make([]CaseWithDate, 0, len(selected))
	for i, r := range selected {
		totalCases, err := atoiLoose(r.TotalCases)
		if err != nil {
			return nil, fmt.Errorf("row %d: total cases: %w", i, err)
		}
		totalCured, err := atoiLoose(r.TotalCured)
		if err != nil {
			return nil, fmt.Errorf("row %d: total cured: %w", i, err)
		}
		totalDeaths, err := atoiLoose(r.TotalDeaths)
		if err != nil {
			return nil, fmt.Errorf("row %d: total deaths: %w", i, err)
		}
		totals[i] = totalCases

		date := czechDate(r.Date)
		if r.Date == seedDate {
			continue
		}
		if i < numDistricts {
			return nil, fmt.Errorf("row %d (%s): no previous-day row to difference against", i, r.Date)
		}
		increase := totalCases - totals[i-numDistricts]
		percent := 0.0
		if totalCases != 0 {
			percent = math.Round(float64(increase)/float64(totalCases)*100*1e4) / 1e4
		}
		rows = append(rows, CaseWithDate{
			Date: date,
			Fact: FactCovidCase{
				DistrictRef:          refByCode[r.DistrictLAU],
				TotalCases:           totalCases,
				TotalCured:           totalCured,
				TotalDeaths:          totalDeaths,
				IncreaseCases:        increase,
				PercentIncreaseCases: percent,
			},
		})
	}
	return rows, nil
}

// BuildFactVaccineUsage joins the usage dataset with the district and
// station join tables, windows it, and encodes manufacturers. Rows
// without dose counts are dropped.
func BuildFactVaccineUsage(records []UsageRecord, tempDistricts []TempUsageDistrict, tempStations []TempUsageStation) []UsageWithDate {
	window := usageWindow()

	usageByStation := make(map[string][]UsageRecord)
	for _, r := range records {
		usageByStation[r.StationCode] = append(usageByStation[r.StationCode], r)
	}

	var rows []UsageWithDate
	for _, d := range tempDistricts {
		for _, s := range tempStations {
			if s.DistrictCode != d.DistrictCode {
				continue
			}
			for _, u := range usageByStation[s.StationCode] {
				if _, ok := window[u.Date]; !ok {
					continue
				}
				administered, err1 := atoiLoose(u.AdministeredDoses)
				invalid, err2 := atoiLoose(u.InvalidDoses)
				if u.AdministeredDoses == "" || u.InvalidDoses == "" || err1 != nil || err2 != nil {
					continue
				}
				used, _ := atoiLoose(u.UsedAmpules)
				spoiled, _ := atoiLoose(u.SpoiledAmpules)
				rows = append(rows, UsageWithDate{
					Date: czechDate(u.Date),
					Fact: FactVaccineUsage{
						StationRef:        s.StationID,
						DistrictRef:       d.DistrictID,
						VaccineRef:        manufacturerCodes[u.Manufacturer],
						UsedAmpules:       used,
						SpoiledAmpules:    spoiled,
						AdministeredDoses: administered,
						InvalidDoses:      invalid,
					},
				})
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// BuildDimDates collects the distinct dates of both facts, assigns date
// keys in first-seen order, and rewrites the facts to reference them.
// The returned dimension and facts are ordered by date.
func BuildDimDates(cases []CaseWithDate, usage []UsageWithDate) ([]DimDate, []FactCovidCase, []FactVaccineUsage, error) {
	var dates []string
	seen := make(map[string]int)
	for _, c := range cases {
		if _, ok := seen[c.Date]; !ok {
			seen[c.Date] = len(dates) + 1
			dates = append(dates, c.Date)
		}
	}
	for _, u := range usage {
		if _, ok := seen[u.Date]; !ok {
			seen[u.Date] = len(dates) + 1
			dates = append(dates, u.Date)
		}
	}

	sortedDates := make([]string, len(dates))
	copy(sortedDates, dates)
	sort.Strings(sortedDates)

	dim := make([]DimDate, 0, len(sortedDates))
	for _, d := range sortedDates {
		t, err := time.Parse("2.1.2006", d)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parse date %q: %w", d, err)
		}
		dim = append(dim, DimDate{
			DateID:    seen[d],
			Date:      d,
			Year:      t.Year(),
			Month:     int(t.Month()),
			MonthName: t.Month().String(),
			Day:       t.Day(),
			DayOfWeek: t.Weekday().String(),
		})
	}

	var outCases []FactCovidCase
	var outUsage []FactVaccineUsage
	for _, d := range sortedDates {
		id := seen[d]
		for _, c := range cases {
			if c.Date == d {
				fact := c.Fact
				fact.DateRef = id
				outCases = append(outCases, fact)
			}
		}
		for _, u := range usage {
			if u.Date == d {
				fact := u.Fact
				fact.DateRef = id
				outUsage = append(outUsage, fact)
			}
		}
	}
	return dim, outCases, outUsage, nil
}

func caseWindow() map[string]struct{} {
	w := usageWindow()
	w[seedDate] = struct{}{}
	return w
}

func usageWindow() map[string]struct{} {
	w := make(map[string]struct{}, windowDays)
	start, _ := time.Parse("2006-01-02", windowStart)
	for i := 0; i < windowDays; i++ {
		w[start.AddDate(0, 0, i).Format("2006-01-02")] = struct{}{}
	}
	return w
}

// czechDate rewrites an ISO date as day.month.year.
func czechDate(s string) string {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return s
	}
	return parts[2] + "." + parts[1] + "." + parts[0]
}

func distinctSorted(records []CovidCaseRecord) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, r := range records {
		if _, ok := seen[r.DistrictLAU]; !ok {
			seen[r.DistrictLAU] = struct{}{}
			codes = append(codes, r.DistrictLAU)
		}
	}
	sort.Strings(codes)
	return codes
}

// atoiLoose parses integers that may be serialized with a decimal part.
func atoiLoose(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return int(f), nil
}

// parseFlag reads a boolean-ish cell as 0 or 1, defaulting to 0.
func parseFlag(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1.0", "true", "t", "ano":
		return 1
	default:
		return 0
	}
}

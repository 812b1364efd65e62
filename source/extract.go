package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"github.com/opendata-cz/cubepipe/config"
	"github.com/opendata-cz/cubepipe/tabular"
)

// footnoteRe strips wiki footnote markers like [1] from cell text.
var footnoteRe = regexp.MustCompile(`\[\w+\]`)

// Extractor downloads all source datasets into the datasets directory.
type Extractor struct {
	fetcher *Fetcher
	sources config.SourcesConfig
	logger  *slog.Logger
}

// NewExtractor returns an Extractor using the given fetcher and source URLs.
func NewExtractor(fetcher *Fetcher, sources config.SourcesConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{fetcher: fetcher, sources: sources, logger: logger}
}

// ExtractAll downloads all seven datasets.
func (e *Extractor) ExtractAll(ctx context.Context, datasetsDir string) error {
	if err := os.MkdirAll(datasetsDir, 0755); err != nil {
		return fmt.Errorf("create datasets dir: %w", err)
	}

	downloads := []struct {
		url  string
		file string
	}{
		{e.sources.CovidCasesCSV, CovidCasesFile},
		{e.sources.VaccinationStationsCSV, VaccinationStationsFile},
		{e.sources.VaccineUsageCSV, VaccineUsageFile},
	}
	for _, d := range downloads {
		if err := e.DownloadCSV(ctx, d.url, filepath.Join(datasetsDir, d.file)); err != nil {
			return err
		}
	}

	if err := e.ExtractPopulation(ctx, filepath.Join(datasetsDir, PopulationFile)); err != nil {
		return err
	}
	if err := e.ExtractRegions(ctx, filepath.Join(datasetsDir, RegionsFile)); err != nil {
		return err
	}
	if err := e.ExtractDistricts(ctx, filepath.Join(datasetsDir, DistrictsFile)); err != nil {
		return err
	}
	if err := e.ExtractVaccines(ctx, filepath.Join(datasetsDir, VaccinesFile)); err != nil {
		return err
	}
	return nil
}

// DownloadCSV saves a remote CSV verbatim.
func (e *Extractor) DownloadCSV(ctx context.Context, url, output string) error {
	data, err := e.fetcher.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	e.logger.Info("dataset saved", "file", output)
	return nil
}

// ExtractPopulation reads the district population workbook.
func (e *Extractor) ExtractPopulation(ctx context.Context, output string) error {
	data, err := e.fetcher.Get(ctx, e.sources.PopulationXLSX)
	if err != nil {
		return err
	}
	rows, err := parsePopulation(data)
	if err != nil {
		return fmt.Errorf("parse population workbook: %w", err)
	}
	if err := tabular.WriteFile(output, rows); err != nil {
		return err
	}
	e.logger.Info("dataset saved", "file", output, "rows", len(rows))
	return nil
}

// parsePopulation pulls the district rows out of the workbook. The
// district block spans spreadsheet rows 19 through 108; region summary
// rows inside the block end with "kraj" and are skipped.
func parsePopulation(data []byte) ([]PopulationRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var rows []PopulationRow
	for i := 18; i < 108 && i < len(cells); i++ {
		if len(cells[i]) < 2 {
			continue
		}
		name := strings.TrimSpace(cells[i][0])
		if strings.HasSuffix(name, "kraj") {
			continue
		}
		rows = append(rows, PopulationRow{District: name, Population: strings.TrimSpace(cells[i][1])})
	}
	return rows, nil
}

// ExtractRegions scrapes the region code table from the CZ-NUTS page.
func (e *Extractor) ExtractRegions(ctx context.Context, output string) error {
	doc, err := e.fetcher.GetDocument(ctx, e.sources.RegionsPage)
	if err != nil {
		return err
	}
	rows := parseRegions(doc)
	if len(rows) == 0 {
		return fmt.Errorf("no regions found on %s", e.sources.RegionsPage)
	}
	if err := tabular.WriteFile(output, rows); err != nil {
		return err
	}
	e.logger.Info("dataset saved", "file", output, "rows", len(rows))
	return nil
}

// parseRegions reads the first wikitable. The first two rows are
// headers and the last is a summary; the region name and its NUTS code
// are the table's last two columns.
func parseRegions(doc *goquery.Document) []RegionRow {
	var rows []RegionRow
	trs := doc.Find("table.wikitable").First().Find("tr")
	trs.Each(func(i int, tr *goquery.Selection) {
		if i < 2 || i == trs.Length()-1 {
			return
		}
		tds := tr.Find("td")
		if tds.Length() < 2 {
			return
		}
		rows = append(rows, RegionRow{
			Region: strings.TrimSpace(tds.Eq(tds.Length() - 2).Text()),
			Code:   strings.TrimSpace(tds.Eq(tds.Length() - 1).Text()),
		})
	})
	return rows
}

// ExtractDistricts scrapes the district list and follows each district's
// page to pick up its LAU 1 code.
func (e *Extractor) ExtractDistricts(ctx context.Context, output string) error {
	doc, err := e.fetcher.GetDocument(ctx, e.sources.DistrictsPage)
	if err != nil {
		return err
	}

	entries := parseDistrictIndex(doc)
	if len(entries) == 0 {
		return fmt.Errorf("no districts found on %s", e.sources.DistrictsPage)
	}

	rows := make([]DistrictRow, 0, len(entries))
	for _, entry := range entries {
		page, err := e.fetcher.GetDocument(ctx, e.sources.WikiBase+entry.href)
		if err != nil {
			return err
		}
		code, ok := parseDistrictLAU(page)
		if !ok {
			return fmt.Errorf("no LAU 1 code on page of district %s", entry.name)
		}
		rows = append(rows, DistrictRow{Code: code, District: entry.name, Region: entry.region})
	}

	if err := tabular.WriteFile(output, rows); err != nil {
		return err
	}
	e.logger.Info("dataset saved", "file", output, "rows", len(rows))
	return nil
}

type districtEntry struct {
	name   string
	region string
	href   string
}

// parseDistrictIndex reads the first table of the district list page.
// The first cell holds "Okres <name>" with a link to the district page;
// the seventh holds the region name.
func parseDistrictIndex(doc *goquery.Document) []districtEntry {
	var entries []districtEntry
	doc.Find("table").First().Find("tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 7 {
			return
		}
		full := strings.TrimSpace(tds.Eq(0).Text())
		_, name, found := strings.Cut(full, " ")
		if !found {
			return
		}
		href, ok := tds.Eq(0).Find("a").First().Attr("href")
		if !ok {
			return
		}
		entries = append(entries, districtEntry{
			name:   strings.TrimSpace(name),
			region: strings.TrimSpace(tds.Eq(6).Text()),
			href:   href,
		})
	})
	return entries
}

// parseDistrictLAU finds the LAU 1 row in the district's infobox.
func parseDistrictLAU(doc *goquery.Document) (string, bool) {
	var code string
	var found bool
	doc.Find("table").First().Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.Find("td, th")
		if cells.Length() == 2 && strings.TrimSpace(cells.Eq(0).Text()) == "LAU 1" {
			code = strings.TrimSpace(cells.Eq(1).Text())
			found = true
			return false
		}
		return true
	})
	return code, found
}

// ExtractVaccines scrapes the vaccine overview table.
func (e *Extractor) ExtractVaccines(ctx context.Context, output string) error {
	doc, err := e.fetcher.GetDocument(ctx, e.sources.VaccinesPage)
	if err != nil {
		return err
	}
	rows := parseVaccines(doc)
	if len(rows) == 0 {
		return fmt.Errorf("no vaccines found on %s", e.sources.VaccinesPage)
	}
	if err := tabular.WriteFile(output, rows); err != nil {
		return err
	}
	e.logger.Info("dataset saved", "file", output, "rows", len(rows))
	return nil
}

// parseVaccines reads the fourth table on the page. Footnote markers
// and embedded newlines are stripped from the name and technology cells.
func parseVaccines(doc *goquery.Document) []VaccineRow {
	var rows []VaccineRow
	doc.Find("table").Eq(3).Find("tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 4 {
			return
		}
		rows = append(rows, VaccineRow{
			Vaccine:     cleanCell(tds.Eq(0).Text()),
			Origin:      strings.TrimSpace(firstLine(tds.Eq(1).Text())),
			Technology:  cleanCell(tds.Eq(2).Text()),
			StorageTemp: strings.TrimSpace(firstLine(tds.Eq(3).Text())),
		})
	})
	return rows
}

func cleanCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(footnoteRe.ReplaceAllString(s, ""))
}

// firstLine mirrors reading only the cell's leading text node, before
// any nested markup.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

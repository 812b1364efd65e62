// Package catalog builds the DCAT description of the published
// vaccine-usage dataset and runs the fixed catalog reports.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/opendata-cz/cubepipe/config"
	"github.com/opendata-cz/cubepipe/export"
	"github.com/opendata-cz/cubepipe/rdf"
	"github.com/opendata-cz/cubepipe/vocabulary/core"
	"github.com/opendata-cz/cubepipe/vocabulary/dcat"
)

// Namespace holds the catalog's own resource IRIs.
const Namespace = "https://opendata.cz/cubepipe/resources/"

// Catalog resources.
var (
	CatalogResource     = rdf.IRI(Namespace + "Catalog")
	VaccineUsageDataset = rdf.IRI(Namespace + "VaccineUsageDataset")
	CSVDistribution     = rdf.IRI(Namespace + "VaccineUsageDatasetCSV")
	TTLDistribution     = rdf.IRI(Namespace + "VaccineUsageDatasetTTL")
	Creator             = rdf.IRI(Namespace + "Creator")
)

// Published file locations.
const (
	csvDownloadURL = "https://opendata.cz/cubepipe/files/fact_vaccine_usage.csv"
	ttlDownloadURL = "https://opendata.cz/cubepipe/files/data_cube.ttl"
	licenseURL     = "https://creativecommons.org/licenses/by/4.0/"
)

const datasetTitle = "Usage of different types of COVID vaccines by vaccination stations " +
	"in each district of the Czech Republic in the period between 1.1.2022 and 14.1.2022"

// Builder assembles the catalog graph.
type Builder struct {
	author config.AuthorConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewBuilder returns a builder crediting the given author.
func NewBuilder(author config.AuthorConfig, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{author: author, logger: logger, now: time.Now}
}

// Build assembles the full catalog graph.
func (b *Builder) Build() *rdf.Graph {
	g := rdf.NewGraph()
	b.addCreator(g)
	b.addCatalog(g)
	b.addDataset(g)
	b.addDistributions(g)
	b.logger.Info("data catalog assembled", "triples", g.Len())
	return g
}

// WriteTurtle serializes the graph to path.
func WriteTurtle(path string, g *rdf.Graph) error {
	w := export.NewWriter()
	w.Bind("cube-r", Namespace)
	w.Bind("eurovoc", dcat.EuroVocNamespace)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(w.Turtle(g)), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

func (b *Builder) addCreator(g *rdf.Graph) {
	g.Add(Creator, rdf.IRI(core.RDFType), rdf.IRI(core.FOAFPerson))
	g.Add(Creator, rdf.IRI(core.FOAFGivenName), rdf.LangLiteral(b.author.Name, "en"))
	g.Add(Creator, rdf.IRI(core.FOAFMbox), rdf.IRI("mailto:"+b.author.Email))
}

func (b *Builder) addCatalog(g *rdf.Graph) {
	g.Add(CatalogResource, rdf.IRI(core.RDFType), rdf.IRI(dcat.Catalog))
	g.Add(CatalogResource, rdf.IRI(dcat.PropDataset), VaccineUsageDataset)
	g.Add(CatalogResource, rdf.IRI(core.DCPublisher), Creator)
	g.Add(CatalogResource, rdf.IRI(core.DCTitle), rdf.LangLiteral("COVID vaccine usage data catalog", "en"))
}

func (b *Builder) addDataset(g *rdf.Graph) {
	ds := VaccineUsageDataset
	g.Add(ds, rdf.IRI(core.RDFType), rdf.IRI(dcat.Dataset))
	g.Add(ds, rdf.IRI(dcat.PropDistribution), CSVDistribution)
	g.Add(ds, rdf.IRI(dcat.PropDistribution), TTLDistribution)

	now := b.now().Format("2006-01-02T15:04:05")
	g.Add(ds, rdf.IRI(core.DCPublisher), Creator)
	g.Add(ds, rdf.IRI(core.DCCreator), Creator)
	g.Add(ds, rdf.IRI(core.DCIssued), rdf.TypedLiteral(now, core.XSDDateTime))
	g.Add(ds, rdf.IRI(core.DCModified), rdf.TypedLiteral(now, core.XSDDateTime))

	contact := rdf.Blank("contact-point")
	g.Add(ds, rdf.IRI(dcat.PropContactPoint), contact)
	g.Add(contact, rdf.IRI(core.RDFType), rdf.IRI(dcat.VCardIndividual))
	g.Add(contact, rdf.IRI(dcat.VCardFN), rdf.LangLiteral(b.author.Name, "en"))
	g.Add(contact, rdf.IRI(dcat.VCardHasEmail), rdf.IRI("mailto:"+b.author.Email))

	g.Add(ds, rdf.IRI(core.DCTitle), rdf.LangLiteral(datasetTitle, "en"))
	g.Add(ds, rdf.IRI(core.DCDescription), rdf.LangLiteral(
		"This dataset consists of data on the number of used and spoiled ampules and the number "+
			"of administered and invalid doses of different types of COVID vaccines by each vaccination "+
			"station (which there is data for) in each district of the Czech Republic for every day "+
			"between 1.1.2022 and 14.1.2022.", "en"))
	for _, kw := range []string{"COVID-19", "coronavirus", "vaccination", "vaccine"} {
		g.Add(ds, rdf.IRI(dcat.PropKeyword), rdf.LangLiteral(kw, "en"))
	}
	// EuroVoc: disease prevention, vaccine, vaccination, coronavirus disease.
	for _, theme := range []string{"1854", "4635", "4636", "c_814bb9e4"} {
		g.Add(ds, rdf.IRI(dcat.PropTheme), rdf.IRI(dcat.EuroVocNamespace+theme))
	}
	g.Add(ds, rdf.IRI(core.DCSpatial), rdf.IRI(dcat.EUAuthorityNamespace+"country/CZE"))

	period := rdf.Blank("period-of-time")
	g.Add(ds, rdf.IRI(core.DCTemporal), period)
	g.Add(period, rdf.IRI(core.RDFType), rdf.IRI(core.DCPeriodOfTime))
	g.Add(period, rdf.IRI(dcat.PropStartDate), rdf.TypedLiteral("2022-01-01", core.XSDDate))
	g.Add(period, rdf.IRI(dcat.PropEndDate), rdf.TypedLiteral("2022-01-14", core.XSDDate))

	g.Add(ds, rdf.IRI(core.DCLicense), rdf.TypedLiteral(licenseURL, core.XSDAnyURI))
	g.Add(ds, rdf.IRI(core.DCAccessRights), rdf.IRI(dcat.EUAuthorityNamespace+"access-right/PUBLIC"))
}

func (b *Builder) addDistributions(g *rdf.Graph) {
	distributions := []struct {
		dist      rdf.Term
		download  string
		format    string
		mediaType string
		byteSize  string
		label     string
		service   rdf.Term
	}{
		{CSVDistribution, csvDownloadURL, "file-type/CSV",
			"https://www.iana.org/assignments/media-types/text/csv", "29547",
			"CSV Distribution of '" + datasetTitle + "' Dataset",
			rdf.Blank("csv-access-service")},
		{TTLDistribution, ttlDownloadURL, "file-type/RDF_TURTLE",
			"https://www.iana.org/assignments/media-types/text/turtle", "309614",
			"RDF Turtle Distribution of '" + datasetTitle + "' Dataset",
			rdf.Blank("ttl-access-service")},
	}
	for _, d := range distributions {
		g.Add(d.dist, rdf.IRI(core.RDFType), rdf.IRI(dcat.Distribution))
		g.Add(d.dist, rdf.IRI(dcat.PropDownloadURL), rdf.IRI(d.download))
		g.Add(d.dist, rdf.IRI(core.DCFormat), rdf.IRI(dcat.EUAuthorityNamespace+d.format))
		g.Add(d.dist, rdf.IRI(dcat.PropMediaType), rdf.IRI(d.mediaType))
		g.Add(d.dist, rdf.IRI(dcat.PropByteSize), rdf.TypedLiteral(d.byteSize, core.XSDNonNegativeInteger))

		g.Add(d.dist, rdf.IRI(dcat.PropAccessService), d.service)
		g.Add(d.service, rdf.IRI(core.RDFType), rdf.IRI(dcat.DataService))
		g.Add(d.service, rdf.IRI(core.DCType), rdf.IRI("http://purl.org/dc/dcmitype/Dataset"))
		g.Add(d.service, rdf.IRI(dcat.PropEndpointURL), rdf.IRI(d.download))
		g.Add(d.service, rdf.IRI(dcat.PropServesDataset), VaccineUsageDataset)

		g.Add(d.dist, rdf.IRI(core.DCTitle), rdf.LangLiteral(d.label, "en"))
		g.Add(d.dist, rdf.IRI(core.DCAccrualPeriodicity), rdf.IRI(dcat.EUAuthorityNamespace+"frequency/WEEKLY"))
		g.Add(d.dist, rdf.IRI(core.DCLicense), rdf.TypedLiteral(licenseURL, core.XSDAnyURI))
		g.Add(d.dist, rdf.IRI(core.DCAccessRights), rdf.IRI(dcat.EUAuthorityNamespace+"access-right/PUBLIC"))
	}
}

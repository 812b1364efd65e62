// Package cube builds the vaccine-usage RDF Data Cube from the joined
// star-schema rows: SKOS code lists for the four dimensions, the data
// structure definition with its station slice key, the dataset with its
// Prague slice, and one observation per fact row.
package cube

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/opendata-cz/cubepipe/config"
	"github.com/opendata-cz/cubepipe/export"
	"github.com/opendata-cz/cubepipe/rdf"
	"github.com/opendata-cz/cubepipe/storage"
	"github.com/opendata-cz/cubepipe/vocabulary/core"
	"github.com/opendata-cz/cubepipe/vocabulary/qb"
	"github.com/opendata-cz/cubepipe/vocabulary/sdmx"
	"github.com/opendata-cz/cubepipe/vocabulary/skos"
)

// Project namespaces for the cube's own terms and resources.
const (
	OntologyNamespace = "https://opendata.cz/cubepipe/ontology#"
	ResourceNamespace = "https://opendata.cz/cubepipe/resources/"
)

// Dimension and measure property IRIs.
var (
	DimDate     = rdf.IRI(OntologyNamespace + "date")
	DimDistrict = rdf.IRI(OntologyNamespace + "district")
	DimStation  = rdf.IRI(OntologyNamespace + "station")
	DimVaccine  = rdf.IRI(OntologyNamespace + "vaccine")

	MeasureUsedAmpules       = rdf.IRI(OntologyNamespace + "used_ampules")
	MeasureSpoiledAmpules    = rdf.IRI(OntologyNamespace + "spoiled_ampules")
	MeasureAdministeredDoses = rdf.IRI(OntologyNamespace + "administered_doses")
	MeasureInvalidDoses      = rdf.IRI(OntologyNamespace + "invalid_doses")
)

// Structural resource IRIs.
var (
	Structure    = rdf.IRI(OntologyNamespace + "structure")
	SliceStation = rdf.IRI(OntologyNamespace + "slice_station")
	SlicePrague  = rdf.IRI(OntologyNamespace + "slice_prague")
	DataSet      = rdf.IRI(ResourceNamespace + "dataCubeInstance")
)

// The Prague slice fixes these dimension values; observations matching
// all three attach to the slice instead of carrying them directly.
const (
	pragueDateID     = 15
	pragueDistrictID = 1
	pragueVaccineID  = 1
)

// Builder assembles the data cube graph.
type Builder struct {
	author config.AuthorConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewBuilder returns a builder stamping documents with the given author.
func NewBuilder(author config.AuthorConfig, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{author: author, logger: logger, now: time.Now}
}

// Build assembles the full cube graph from the joined usage rows.
func (b *Builder) Build(rows []storage.UsageStarRow) *rdf.Graph {
	g := rdf.NewGraph()

	b.addConceptSchemes(g)
	b.addConceptClasses(g)
	b.addConcepts(g, rows)
	b.addDimensions(g)
	b.addMeasures(g)
	b.addStructure(g)
	b.addDataSet(g)
	b.addObservations(g, rows)

	b.logger.Info("data cube assembled", "observations", len(rows), "triples", g.Len())
	return g
}

// WriteTurtle serializes the graph to path with the cube prefixes bound.
func WriteTurtle(path string, g *rdf.Graph) error {
	w := export.NewWriter()
	w.Bind("cube", OntologyNamespace)
	w.Bind("cube-r", ResourceNamespace)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(w.Turtle(g)), 0o644); err != nil {
		return fmt.Errorf("write cube: %w", err)
	}
	return nil
}

type schemeSpec struct {
	name  string
	label string
	note  string
}

var schemes = []schemeSpec{
	{"date", "Date", "This code list provides a list of dates that records are available for."},
	{"district", "District", "This code list provides a list of districts in the Czech Republic."},
	{"station", "Station", "This code list provides a list of vaccination stations in the Czech Republic for which there is data."},
	{"vaccine", "Vaccine", "This code list provides a list of COVID vaccines."},
}

func (b *Builder) addConceptSchemes(g *rdf.Graph) {
	for _, s := range schemes {
		scheme := rdf.IRI(sdmx.CodeNamespace + s.name)
		g.Add(scheme, rdf.IRI(core.RDFType), rdf.IRI(skos.ConceptScheme))
		g.Add(scheme, rdf.IRI(skos.PropPrefLabel), rdf.LangLiteral(s.label, "en"))
		g.Add(scheme, rdf.IRI(core.RDFSLabel), rdf.LangLiteral(s.label, "en"))
		g.Add(scheme, rdf.IRI(skos.PropNote), rdf.LangLiteral(s.note, "en"))
		g.Add(scheme, rdf.IRI(core.RDFSSeeAlso), rdf.IRI(ResourceNamespace+s.label))
	}
}

func (b *Builder) addConceptClasses(g *rdf.Graph) {
	for _, s := range schemes {
		class := rdf.IRI(sdmx.CodeNamespace + s.label)
		g.Add(class, rdf.IRI(core.RDFType), rdf.IRI(core.RDFSClass))
		g.Add(class, rdf.IRI(core.RDFType), rdf.IRI(core.OWLClass))
		g.Add(class, rdf.IRI(core.RDFSSubClassOf), rdf.IRI(skos.Concept))
		g.Add(class, rdf.IRI(core.RDFSLabel), rdf.LangLiteral(s.label, "en"))
		g.Add(class, rdf.IRI(skos.PropPrefLabel), rdf.LangLiteral(s.label, "en"))
		g.Add(class, rdf.IRI(core.RDFSSeeAlso), rdf.IRI(ResourceNamespace+s.name))
	}
}

func (b *Builder) addConcepts(g *rdf.Graph, rows []storage.UsageStarRow) {
	seenDate := make(map[int]struct{})
	seenDistrict := make(map[int]struct{})
	seenStation := make(map[int]struct{})
	seenVaccine := make(map[int]struct{})

	for _, row := range rows {
		if _, ok := seenDate[row.DateID]; !ok {
			seenDate[row.DateID] = struct{}{}
			label := fmt.Sprintf("%d-%02d-%02d", row.Year, row.Month, row.Day)
			addConcept(g, dateConcept(row.DateID), "date", "Date",
				rdf.TypedLiteral(label, core.XSDDate))
		}
		if _, ok := seenDistrict[row.DistrictID]; !ok {
			seenDistrict[row.DistrictID] = struct{}{}
			addConcept(g, districtConcept(row.DistrictID), "district", "District",
				rdf.LangLiteral(row.DistrictName, "cs"))
		}
		if _, ok := seenStation[row.StationID]; !ok {
			seenStation[row.StationID] = struct{}{}
			addConcept(g, stationConcept(row.StationID), "station", "Station",
				rdf.LangLiteral(row.StationName, "cs"))
		}
		if _, ok := seenVaccine[row.VaccineID]; !ok {
			seenVaccine[row.VaccineID] = struct{}{}
			addConcept(g, vaccineConcept(row.VaccineID), "vaccine", "Vaccine",
				rdf.LangLiteral(row.VaccineName, "en"))
		}
	}
}

func addConcept(g *rdf.Graph, concept rdf.Term, scheme, class string, label rdf.Term) {
	schemeIRI := rdf.IRI(sdmx.CodeNamespace + scheme)
	g.Add(concept, rdf.IRI(core.RDFType), rdf.IRI(skos.Concept))
	g.Add(concept, rdf.IRI(core.RDFType), rdf.IRI(sdmx.CodeNamespace+class))
	g.Add(concept, rdf.IRI(skos.PropTopConceptOf), schemeIRI)
	g.Add(concept, rdf.IRI(skos.PropPrefLabel), label)
	g.Add(concept, rdf.IRI(skos.PropInScheme), schemeIRI)
}

func (b *Builder) addDimensions(g *rdf.Graph) {
	dims := []struct {
		prop  rdf.Term
		label string
		super string
		class string
	}{
		{DimDate, "Date", sdmx.ClassDate, sdmx.ClassDate},
		{DimDistrict, "District", sdmx.ClassDistrict, sdmx.ClassDistrict},
		{DimStation, "Station", sdmx.ConceptStation, sdmx.ClassStation},
		{DimVaccine, "Vaccine", sdmx.ClassVaccine, sdmx.ClassVaccine},
	}
	for _, d := range dims {
		g.Add(d.prop, rdf.IRI(core.RDFType), rdf.IRI(core.RDFProperty))
		g.Add(d.prop, rdf.IRI(core.RDFType), rdf.IRI(qb.DimensionProperty))
		g.Add(d.prop, rdf.IRI(core.RDFSLabel), rdf.LangLiteral(d.label, "en"))
		g.Add(d.prop, rdf.IRI(core.RDFSSubPropertyOf), rdf.IRI(d.super))
		g.Add(d.prop, rdf.IRI(core.RDFSRange), rdf.IRI(d.class))
		g.Add(d.prop, rdf.IRI(qb.PropCodeList), rdf.IRI(sdmx.CodeNamespace+lower(d.label)))
	}
}

func (b *Builder) addMeasures(g *rdf.Graph) {
	measures := []struct {
		prop  rdf.Term
		label string
	}{
		{MeasureUsedAmpules, "Total vaccine ampules used"},
		{MeasureSpoiledAmpules, "Total vaccine ampules spoiled"},
		{MeasureAdministeredDoses, "Total administered doses"},
		{MeasureInvalidDoses, "Total invalid doses"},
	}
	for _, m := range measures {
		g.Add(m.prop, rdf.IRI(core.RDFType), rdf.IRI(core.RDFProperty))
		g.Add(m.prop, rdf.IRI(core.RDFType), rdf.IRI(qb.MeasureProperty))
		g.Add(m.prop, rdf.IRI(core.RDFSLabel), rdf.LangLiteral(m.label, "en"))
		g.Add(m.prop, rdf.IRI(core.RDFSRange), rdf.IRI(core.XSDInt))
		g.Add(m.prop, rdf.IRI(core.RDFSSubPropertyOf), rdf.IRI(sdmx.ObsValue))
	}
}

func (b *Builder) addStructure(g *rdf.Graph) {
	g.Add(SliceStation, rdf.IRI(core.RDFType), rdf.IRI(qb.SliceKey))
	g.Add(SliceStation, rdf.IRI(core.RDFSLabel), rdf.LangLiteral("Slice by station", "en"))
	g.Add(SliceStation, rdf.IRI(core.RDFSComment),
		rdf.LangLiteral("This slice groups stations together, fixing date, district, and vaccine values", "en"))
	g.Add(SliceStation, rdf.IRI(qb.PropComponentProperty), DimDate)
	g.Add(SliceStation, rdf.IRI(qb.PropComponentProperty), DimDistrict)
	g.Add(SliceStation, rdf.IRI(qb.PropComponentProperty), DimVaccine)

	g.Add(Structure, rdf.IRI(core.RDFType), rdf.IRI(qb.DataStructureDefinition))

	dims := []rdf.Term{DimDate, DimDistrict, DimStation, DimVaccine}
	for i, dim := range dims {
		component := rdf.Blank(fmt.Sprintf("component-dim-%d", i+1))
		g.Add(Structure, rdf.IRI(qb.PropComponent), component)
		g.Add(component, rdf.IRI(qb.PropDimension), dim)
		g.Add(component, rdf.IRI(qb.PropOrder), rdf.TypedLiteral(strconv.Itoa(i+1), core.XSDInteger))

		// The station dimension varies inside a slice; the others
		// attach at slice level.
		if dim != DimStation {
			g.Add(component, rdf.IRI(qb.PropComponentAttachment), rdf.IRI(qb.Slice))
		}
	}

	measures := []rdf.Term{MeasureUsedAmpules, MeasureSpoiledAmpules, MeasureAdministeredDoses, MeasureInvalidDoses}
	for i, measure := range measures {
		component := rdf.Blank(fmt.Sprintf("component-measure-%d", i+1))
		g.Add(Structure, rdf.IRI(qb.PropComponent), component)
		g.Add(component, rdf.IRI(qb.PropMeasure), measure)
	}

	g.Add(Structure, rdf.IRI(qb.PropSliceKey), SliceStation)
}

func (b *Builder) addDataSet(g *rdf.Graph) {
	g.Add(SlicePrague, rdf.IRI(core.RDFType), rdf.IRI(qb.Slice))
	g.Add(SlicePrague, rdf.IRI(qb.PropSliceStructure), SliceStation)
	g.Add(SlicePrague, DimDate, dateConcept(pragueDateID))
	g.Add(SlicePrague, DimDistrict, districtConcept(pragueDistrictID))
	g.Add(SlicePrague, DimVaccine, vaccineConcept(pragueVaccineID))

	g.Add(DataSet, rdf.IRI(core.RDFType), rdf.IRI(qb.DataSet))
	g.Add(DataSet, rdf.IRI(qb.PropStructure), Structure)
	g.Add(DataSet, rdf.IRI(qb.PropSlice), SlicePrague)

	title := "COVID vaccine usage in the Czech Republic"
	description := "This data cube consists of data regarding the usage of COVID vaccines " +
		"by vaccination stations in different districts in the Czech Republic in the last 14 days, " +
		"or if no such data is available, in the time period between 1.1.2022 and 14.1.2022"
	today := b.now().Format("2006-01-02")

	g.Add(DataSet, rdf.IRI(core.DCTitle), rdf.LangLiteral(title, "en"))
	g.Add(DataSet, rdf.IRI(core.RDFSLabel), rdf.LangLiteral(title, "en"))
	g.Add(DataSet, rdf.IRI(core.DCDescription), rdf.LangLiteral(description, "en"))
	g.Add(DataSet, rdf.IRI(core.RDFSComment), rdf.LangLiteral(description, "en"))
	g.Add(DataSet, rdf.IRI(core.DCIssued), rdf.TypedLiteral(today, core.XSDDate))
	g.Add(DataSet, rdf.IRI(core.DCModified), rdf.TypedLiteral(today, core.XSDDate))
	g.Add(DataSet, rdf.IRI(core.DCPublisher), rdf.LangLiteral(b.author.Name, "en"))
	g.Add(DataSet, rdf.IRI(core.DCLicense),
		rdf.TypedLiteral("https://creativecommons.org/licenses/by/4.0/", core.XSDAnyURI))
}

func (b *Builder) addObservations(g *rdf.Graph, rows []storage.UsageStarRow) {
	typeIRI := rdf.IRI(core.RDFType)
	for i, row := range rows {
		obs := rdf.IRI(fmt.Sprintf("%sobservation-%03d", ResourceNamespace, i))

		g.Add(obs, typeIRI, rdf.IRI(qb.Observation))
		g.Add(obs, rdf.IRI(qb.PropDataSet), DataSet)

		g.Add(obs, DimStation, stationConcept(row.StationID))

		if row.DateID == pragueDateID && row.DistrictID == pragueDistrictID && row.VaccineID == pragueVaccineID {
			g.Add(SlicePrague, rdf.IRI(qb.PropObservation), obs)
		} else {
			g.Add(obs, DimDate, dateConcept(row.DateID))
			g.Add(obs, DimDistrict, districtConcept(row.DistrictID))
			g.Add(obs, DimVaccine, vaccineConcept(row.VaccineID))
		}

		g.Add(obs, MeasureUsedAmpules, intLiteral(row.UsedAmpules))
		g.Add(obs, MeasureSpoiledAmpules, intLiteral(row.SpoiledAmpules))
		g.Add(obs, MeasureAdministeredDoses, intLiteral(row.AdministeredDoses))
		g.Add(obs, MeasureInvalidDoses, intLiteral(row.InvalidDoses))
	}
}

func dateConcept(id int) rdf.Term {
	return rdf.IRI(fmt.Sprintf("%sdate/%d", ResourceNamespace, id))
}

func districtConcept(id int) rdf.Term {
	return rdf.IRI(fmt.Sprintf("%sdistrict/%d", ResourceNamespace, id))
}

func stationConcept(id int) rdf.Term {
	return rdf.IRI(fmt.Sprintf("%sstation/%d", ResourceNamespace, id))
}

func vaccineConcept(id int) rdf.Term {
	return rdf.IRI(fmt.Sprintf("%svaccine/%d", ResourceNamespace, id))
}

func intLiteral(n int) rdf.Term {
	return rdf.TypedLiteral(strconv.Itoa(n), core.XSDInt)
}

func lower(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

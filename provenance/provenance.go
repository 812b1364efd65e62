// Package provenance builds the PROV-O document describing how the
// pipeline's tables, cube, and downstream visualizations were produced
// from the public source datasets.
package provenance

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/opendata-cz/cubepipe/config"
	"github.com/opendata-cz/cubepipe/export"
	"github.com/opendata-cz/cubepipe/rdf"
	"github.com/opendata-cz/cubepipe/vocabulary/core"
	"github.com/opendata-cz/cubepipe/vocabulary/provo"
)

// Namespace holds the document's own resource IRIs.
const Namespace = "https://opendata.cz/cubepipe#"

// Source dataset and webpage entities.
var (
	CovidCasesDataset          = rdf.IRI(Namespace + "CovidCasesDataset")
	VaccinationStationsDataset = rdf.IRI(Namespace + "VaccinationStationsDataset")
	VaccineUsageDataset        = rdf.IRI(Namespace + "VaccineUsageDataset")
	PopulationDataset          = rdf.IRI(Namespace + "PopulationDataset")
	RegionsWebpage             = rdf.IRI(Namespace + "RegionsWebpage")
	DistrictsWebpage           = rdf.IRI(Namespace + "DistrictsWebpage")
	VaccinesWebpage            = rdf.IRI(Namespace + "VaccinesWebpage")
)

// Generated table, cube, and visualization entities.
var (
	DimDates               = rdf.IRI(Namespace + "DimDates")
	DimDistricts           = rdf.IRI(Namespace + "DimDistricts")
	DimVaccinationStations = rdf.IRI(Namespace + "DimVaccinationStations")
	DimVaccines            = rdf.IRI(Namespace + "DimVaccines")
	TempUsageDistricts     = rdf.IRI(Namespace + "TempUsageDistricts")
	TempUsageStations      = rdf.IRI(Namespace + "TempUsageStations")
	FactCovidCases         = rdf.IRI(Namespace + "FactCovidCases")
	FactVaccineUsage       = rdf.IRI(Namespace + "FactVaccineUsage")
	DataCube               = rdf.IRI(Namespace + "DataCube")

	DosesVisualization       = rdf.IRI(Namespace + "AdministeredInvalidDosesVisualization")
	CasesDeathsVisualization = rdf.IRI(Namespace + "CasesDeathsVisualization")
)

// Agents.
var (
	PipelineAgent          = rdf.IRI(Namespace + "Cubepipe")
	VisualizationAgent     = rdf.IRI(Namespace + "Tableau")
	Author                 = rdf.IRI(Namespace + "Author")
	Wikipedia              = rdf.IRI(Namespace + "Wikipedia")
	CzechStatisticalOffice = rdf.IRI(Namespace + "CzechStatisticalOffice")
	CzechMinistryOfHealth  = rdf.IRI(Namespace + "CzechMinistryOfHealth")
)

// Activities and the qualified association.
var (
	PipelineActivity      = rdf.IRI(Namespace + "PipelineActivity")
	DataCubeActivity      = rdf.IRI(Namespace + "DataCubeActivity")
	BarGraphActivity      = rdf.IRI(Namespace + "BarGraphVisualizationActivity")
	ScatterplotActivity   = rdf.IRI(Namespace + "ScatterplotVisualizationActivity")
	ProgrammerAssociation = rdf.IRI(Namespace + "ProgrammerAssociation")
	Programmer            = rdf.IRI(Namespace + "Programmer")
)

// Builder assembles the provenance graph.
type Builder struct {
	author  config.AuthorConfig
	sources config.SourcesConfig
	logger  *slog.Logger
}

// NewBuilder returns a builder describing the given pipeline operator and
// source locations.
func NewBuilder(author config.AuthorConfig, sources config.SourcesConfig, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{author: author, sources: sources, logger: logger}
}

// Build assembles the full provenance graph.
func (b *Builder) Build() *rdf.Graph {
	g := rdf.NewGraph()
	b.addEntities(g)
	b.addAgents(g)
	b.addActivities(g)
	b.logger.Info("provenance document assembled", "triples", g.Len())
	return g
}

// WriteTurtle serializes the graph to path.
func WriteTurtle(path string, g *rdf.Graph) error {
	w := export.NewWriter()
	w.Bind("", Namespace)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(w.Turtle(g)), 0o644); err != nil {
		return fmt.Errorf("write provenance document: %w", err)
	}
	return nil
}

func (b *Builder) addEntities(g *rdf.Graph) {
	sources := []struct {
		entity   rdf.Term
		agent    rdf.Term
		location string
	}{
		{CovidCasesDataset, CzechMinistryOfHealth, b.sources.CovidCasesCSV},
		{VaccinationStationsDataset, CzechMinistryOfHealth, b.sources.VaccinationStationsCSV},
		{VaccineUsageDataset, CzechMinistryOfHealth, b.sources.VaccineUsageCSV},
		{PopulationDataset, CzechStatisticalOffice, b.sources.PopulationXLSX},
		{RegionsWebpage, Wikipedia, b.sources.RegionsPage},
		{DistrictsWebpage, Wikipedia, b.sources.DistrictsPage},
		{VaccinesWebpage, Wikipedia, b.sources.VaccinesPage},
	}
	for _, s := range sources {
		g.Add(s.entity, rdf.IRI(core.RDFType), rdf.IRI(provo.Entity))
		g.Add(s.entity, rdf.IRI(provo.PropWasAttributedTo), s.agent)
		g.Add(s.entity, rdf.IRI(provo.PropAtLocation), rdf.TypedLiteral(s.location, core.XSDAnyURI))
	}

	tables := []struct {
		entity  rdf.Term
		derived []rdf.Term
		primary []rdf.Term
	}{
		{DimDistricts, []rdf.Term{DistrictsWebpage, RegionsWebpage}, []rdf.Term{PopulationDataset}},
		{DimVaccines, []rdf.Term{VaccinesWebpage}, nil},
		{DimVaccinationStations, nil, []rdf.Term{VaccinationStationsDataset}},
		{DimDates, []rdf.Term{FactCovidCases, FactVaccineUsage}, nil},
		{TempUsageDistricts, []rdf.Term{DimDistricts}, nil},
		{TempUsageStations, []rdf.Term{DimVaccinationStations}, nil},
		{FactCovidCases, nil, []rdf.Term{CovidCasesDataset}},
		{FactVaccineUsage, []rdf.Term{TempUsageDistricts, TempUsageStations}, []rdf.Term{VaccineUsageDataset}},
	}
	for _, tbl := range tables {
		g.Add(tbl.entity, rdf.IRI(core.RDFType), rdf.IRI(provo.Entity))
		g.Add(tbl.entity, rdf.IRI(provo.PropWasGeneratedBy), PipelineActivity)
		g.Add(tbl.entity, rdf.IRI(provo.PropWasAttributedTo), Author)
		for _, d := range tbl.derived {
			g.Add(tbl.entity, rdf.IRI(provo.PropWasDerivedFrom), d)
		}
		for _, p := range tbl.primary {
			g.Add(tbl.entity, rdf.IRI(provo.PropHadPrimarySource), p)
		}
	}

	g.Add(DataCube, rdf.IRI(core.RDFType), rdf.IRI(provo.Entity))
	g.Add(DataCube, rdf.IRI(provo.PropWasGeneratedBy), DataCubeActivity)
	g.Add(DataCube, rdf.IRI(provo.PropWasAttributedTo), Author)
	for _, d := range []rdf.Term{FactVaccineUsage, DimDates, DimDistricts, DimVaccinationStations, DimVaccines} {
		g.Add(DataCube, rdf.IRI(provo.PropWasDerivedFrom), d)
	}

	g.Add(DosesVisualization, rdf.IRI(core.RDFType), rdf.IRI(provo.Entity))
	g.Add(DosesVisualization, rdf.IRI(provo.PropWasGeneratedBy), BarGraphActivity)
	g.Add(DosesVisualization, rdf.IRI(provo.PropWasAttributedTo), Author)
	for _, d := range []rdf.Term{FactVaccineUsage, DimDates, DimDistricts, DimVaccinationStations} {
		g.Add(DosesVisualization, rdf.IRI(provo.PropWasDerivedFrom), d)
	}

	g.Add(CasesDeathsVisualization, rdf.IRI(core.RDFType), rdf.IRI(provo.Entity))
	g.Add(CasesDeathsVisualization, rdf.IRI(provo.PropWasGeneratedBy), ScatterplotActivity)
	g.Add(CasesDeathsVisualization, rdf.IRI(provo.PropWasAttributedTo), Author)
	g.Add(CasesDeathsVisualization, rdf.IRI(provo.PropWasDerivedFrom), FactCovidCases)
	g.Add(CasesDeathsVisualization, rdf.IRI(provo.PropWasDerivedFrom), DimDistricts)
}

func (b *Builder) addAgents(g *rdf.Graph) {
	typeIRI := rdf.IRI(core.RDFType)

	g.Add(PipelineAgent, typeIRI, rdf.IRI(provo.SoftwareAgent))
	g.Add(PipelineAgent, typeIRI, rdf.IRI(provo.Agent))
	g.Add(PipelineAgent, rdf.IRI(provo.PropActedOnBehalfOf), Author)
	g.Add(PipelineAgent, rdf.IRI(core.FOAFName), rdf.LangLiteral("cubepipe", "en"))

	g.Add(VisualizationAgent, typeIRI, rdf.IRI(provo.SoftwareAgent))
	g.Add(VisualizationAgent, typeIRI, rdf.IRI(provo.Agent))
	g.Add(VisualizationAgent, rdf.IRI(provo.PropActedOnBehalfOf), Author)
	g.Add(VisualizationAgent, rdf.IRI(core.FOAFName), rdf.LangLiteral("Tableau", "en"))

	g.Add(Author, typeIRI, rdf.IRI(provo.Person))
	g.Add(Author, typeIRI, rdf.IRI(provo.Agent))
	g.Add(Author, rdf.IRI(core.FOAFGivenName), rdf.LangLiteral(b.author.Name, "en"))
	g.Add(Author, rdf.IRI(core.FOAFMbox), rdf.IRI("mailto:"+b.author.Email))

	organizations := []struct {
		agent    rdf.Term
		names    []rdf.Term
		homepage string
	}{
		{Wikipedia,
			[]rdf.Term{rdf.LangLiteral("Wikipedia, The Free Encyclopedia", "en")},
			"https://en.wikipedia.org/wiki/Main_Page"},
		{CzechStatisticalOffice,
			[]rdf.Term{rdf.LangLiteral("Czech Statistical Office", "en"), rdf.LangLiteral("Český statistický úřad", "cs")},
			"https://www.czso.cz/"},
		{CzechMinistryOfHealth,
			[]rdf.Term{rdf.LangLiteral("Ministry of Health of the Czech Republic", "en"), rdf.LangLiteral("Ministerstvo zdravotnictví České Republiky", "cs")},
			"https://mzd.gov.cz/"},
	}
	for _, org := range organizations {
		g.Add(org.agent, typeIRI, rdf.IRI(provo.Organization))
		g.Add(org.agent, typeIRI, rdf.IRI(provo.Agent))
		for _, name := range org.names {
			g.Add(org.agent, rdf.IRI(core.FOAFName), name)
		}
		g.Add(org.agent, rdf.IRI(core.FOAFHomepage), rdf.TypedLiteral(org.homepage, core.XSDAnyURI))
	}
}

func (b *Builder) addActivities(g *rdf.Graph) {
	typeIRI := rdf.IRI(core.RDFType)
	used := rdf.IRI(provo.PropUsed)

	g.Add(PipelineActivity, typeIRI, rdf.IRI(provo.Activity))
	g.Add(PipelineActivity, rdf.IRI(provo.PropWasAssociatedWith), PipelineAgent)
	for _, src := range []rdf.Term{
		CovidCasesDataset, VaccinationStationsDataset, VaccineUsageDataset,
		PopulationDataset, RegionsWebpage, DistrictsWebpage, VaccinesWebpage,
	} {
		g.Add(PipelineActivity, used, src)
	}

	g.Add(DataCubeActivity, typeIRI, rdf.IRI(provo.Activity))
	g.Add(DataCubeActivity, rdf.IRI(provo.PropWasAssociatedWith), Author)
	g.Add(DataCubeActivity, rdf.IRI(provo.PropQualifiedAssociation), ProgrammerAssociation)
	g.Add(DataCubeActivity, rdf.IRI(provo.PropWasInformedBy), PipelineActivity)
	for _, e := range []rdf.Term{FactVaccineUsage, DimDates, DimVaccinationStations, DimDistricts, DimVaccines} {
		g.Add(DataCubeActivity, used, e)
	}

	g.Add(ProgrammerAssociation, typeIRI, rdf.IRI(provo.Association))
	g.Add(ProgrammerAssociation, rdf.IRI(provo.PropAgent), Author)
	g.Add(ProgrammerAssociation, rdf.IRI(provo.PropHadRole), Programmer)
	g.Add(Programmer, typeIRI, rdf.IRI(provo.Role))

	g.Add(BarGraphActivity, typeIRI, rdf.IRI(provo.Activity))
	g.Add(BarGraphActivity, rdf.IRI(provo.PropWasAssociatedWith), VisualizationAgent)
	g.Add(BarGraphActivity, rdf.IRI(provo.PropWasInformedBy), PipelineActivity)
	for _, e := range []rdf.Term{FactVaccineUsage, DimDates, DimDistricts, DimVaccinationStations} {
		g.Add(BarGraphActivity, used, e)
	}

	g.Add(ScatterplotActivity, typeIRI, rdf.IRI(provo.Activity))
	g.Add(ScatterplotActivity, rdf.IRI(provo.PropWasAssociatedWith), VisualizationAgent)
	g.Add(ScatterplotActivity, rdf.IRI(provo.PropWasInformedBy), PipelineActivity)
	g.Add(ScatterplotActivity, used, FactCovidCases)
	g.Add(ScatterplotActivity, used, DimDistricts)
}

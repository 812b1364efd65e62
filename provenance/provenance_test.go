package provenance

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-cz/cubepipe/config"
	"github.com/opendata-cz/cubepipe/rdf"
	"github.com/opendata-cz/cubepipe/vocabulary/core"
	"github.com/opendata-cz/cubepipe/vocabulary/provo"
)

func testGraph() *rdf.Graph {
	cfg := config.DefaultConfig()
	b := NewBuilder(
		config.AuthorConfig{Name: "Test Operator", Email: "test@example.org"},
		cfg.Sources,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return b.Build()
}

func TestSourceEntities(t *testing.T) {
	g := testGraph()
	cfg := config.DefaultConfig()

	require.True(t, g.HasType(CovidCasesDataset, rdf.IRI(provo.Entity)))
	assert.True(t, g.Has(CovidCasesDataset, rdf.IRI(provo.PropWasAttributedTo), CzechMinistryOfHealth))
	assert.True(t, g.Has(CovidCasesDataset, rdf.IRI(provo.PropAtLocation),
		rdf.TypedLiteral(cfg.Sources.CovidCasesCSV, core.XSDAnyURI)))

	assert.True(t, g.Has(PopulationDataset, rdf.IRI(provo.PropWasAttributedTo), CzechStatisticalOffice))
	assert.True(t, g.Has(RegionsWebpage, rdf.IRI(provo.PropWasAttributedTo), Wikipedia))
}

func TestTableDerivations(t *testing.T) {
	g := testGraph()

	assert.True(t, g.Has(DimDistricts, rdf.IRI(provo.PropWasGeneratedBy), PipelineActivity))
	assert.True(t, g.Has(DimDistricts, rdf.IRI(provo.PropWasDerivedFrom), RegionsWebpage))
	assert.True(t, g.Has(DimDistricts, rdf.IRI(provo.PropHadPrimarySource), PopulationDataset))

	assert.True(t, g.Has(FactVaccineUsage, rdf.IRI(provo.PropHadPrimarySource), VaccineUsageDataset))
	assert.True(t, g.Has(FactVaccineUsage, rdf.IRI(provo.PropWasDerivedFrom), TempUsageStations))

	for _, d := range []rdf.Term{FactVaccineUsage, DimDates, DimDistricts, DimVaccinationStations, DimVaccines} {
		assert.True(t, g.Has(DataCube, rdf.IRI(provo.PropWasDerivedFrom), d), d.Value)
	}
}

func TestAgents(t *testing.T) {
	g := testGraph()

	require.True(t, g.HasType(PipelineAgent, rdf.IRI(provo.SoftwareAgent)))
	assert.True(t, g.Has(PipelineAgent, rdf.IRI(provo.PropActedOnBehalfOf), Author))

	require.True(t, g.HasType(Author, rdf.IRI(provo.Person)))
	assert.True(t, g.Has(Author, rdf.IRI(core.FOAFGivenName), rdf.LangLiteral("Test Operator", "en")))
	assert.True(t, g.Has(Author, rdf.IRI(core.FOAFMbox), rdf.IRI("mailto:test@example.org")))

	assert.True(t, g.HasType(CzechMinistryOfHealth, rdf.IRI(provo.Organization)))
}

func TestActivities(t *testing.T) {
	g := testGraph()

	// The pipeline activity used every source.
	assert.Len(t, g.Objects(PipelineActivity, rdf.IRI(provo.PropUsed)), 7)

	assert.True(t, g.Has(DataCubeActivity, rdf.IRI(provo.PropWasInformedBy), PipelineActivity))
	assert.True(t, g.Has(DataCubeActivity, rdf.IRI(provo.PropQualifiedAssociation), ProgrammerAssociation))
	assert.True(t, g.Has(ProgrammerAssociation, rdf.IRI(provo.PropAgent), Author))
	assert.True(t, g.Has(ProgrammerAssociation, rdf.IRI(provo.PropHadRole), Programmer))
	assert.True(t, g.HasType(Programmer, rdf.IRI(provo.Role)))

	assert.True(t, g.Has(BarGraphActivity, rdf.IRI(provo.PropWasAssociatedWith), VisualizationAgent))
	assert.True(t, g.Has(ScatterplotActivity, rdf.IRI(provo.PropUsed), FactCovidCases))
}

func TestWriteTurtle(t *testing.T) {
	g := testGraph()
	path := filepath.Join(t.TempDir(), "provenance_document.ttl")
	require.NoError(t, WriteTurtle(path, g))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@prefix : <"+Namespace+"> .")
	assert.Contains(t, string(data), "prov:wasGeneratedBy")
}

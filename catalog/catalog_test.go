package catalog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-cz/cubepipe/config"
	"github.com/opendata-cz/cubepipe/rdf"
	"github.com/opendata-cz/cubepipe/vocabulary/core"
	"github.com/opendata-cz/cubepipe/vocabulary/dcat"
)

func testBuilder() *Builder {
	b := NewBuilder(
		config.AuthorConfig{Name: "Test Operator", Email: "test@example.org"},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	b.now = func() time.Time {
		return time.Date(2022, time.March, 10, 16, 0, 0, 0, time.UTC)
	}
	return b
}

func TestBuildCatalog(t *testing.T) {
	g := testBuilder().Build()

	require.True(t, g.HasType(CatalogResource, rdf.IRI(dcat.Catalog)))
	assert.True(t, g.Has(CatalogResource, rdf.IRI(dcat.PropDataset), VaccineUsageDataset))
	assert.True(t, g.Has(CatalogResource, rdf.IRI(core.DCPublisher), Creator))

	require.True(t, g.HasType(VaccineUsageDataset, rdf.IRI(dcat.Dataset)))
	assert.Len(t, g.Objects(VaccineUsageDataset, rdf.IRI(dcat.PropDistribution)), 2)
	assert.Len(t, g.Objects(VaccineUsageDataset, rdf.IRI(dcat.PropKeyword)), 4)
	assert.Len(t, g.Objects(VaccineUsageDataset, rdf.IRI(dcat.PropTheme)), 4)
	assert.True(t, g.Has(VaccineUsageDataset, rdf.IRI(core.DCSpatial),
		rdf.IRI(dcat.EUAuthorityNamespace+"country/CZE")))
	assert.True(t, g.Has(VaccineUsageDataset, rdf.IRI(core.DCIssued),
		rdf.TypedLiteral("2022-03-10T16:00:00", core.XSDDateTime)))

	require.True(t, g.HasType(Creator, rdf.IRI(core.FOAFPerson)))
	assert.True(t, g.Has(Creator, rdf.IRI(core.FOAFMbox), rdf.IRI("mailto:test@example.org")))
}

func TestContactPointAndPeriod(t *testing.T) {
	g := testBuilder().Build()

	contact := g.Object(VaccineUsageDataset, rdf.IRI(dcat.PropContactPoint))
	require.False(t, contact.Zero())
	assert.True(t, g.HasType(contact, rdf.IRI(dcat.VCardIndividual)))
	assert.True(t, g.Has(contact, rdf.IRI(dcat.VCardFN), rdf.LangLiteral("Test Operator", "en")))

	period := g.Object(VaccineUsageDataset, rdf.IRI(core.DCTemporal))
	require.False(t, period.Zero())
	assert.True(t, g.HasType(period, rdf.IRI(core.DCPeriodOfTime)))
	assert.True(t, g.Has(period, rdf.IRI(dcat.PropStartDate), rdf.TypedLiteral("2022-01-01", core.XSDDate)))
	assert.True(t, g.Has(period, rdf.IRI(dcat.PropEndDate), rdf.TypedLiteral("2022-01-14", core.XSDDate)))
}

func TestDistributions(t *testing.T) {
	g := testBuilder().Build()

	for _, dist := range []rdf.Term{CSVDistribution, TTLDistribution} {
		require.True(t, g.HasType(dist, rdf.IRI(dcat.Distribution)), dist.Value)
		assert.True(t, g.HasAny(dist, rdf.IRI(dcat.PropDownloadURL)), dist.Value)
		assert.True(t, g.HasAny(dist, rdf.IRI(core.DCFormat)), dist.Value)

		service := g.Object(dist, rdf.IRI(dcat.PropAccessService))
		require.False(t, service.Zero(), dist.Value)
		assert.True(t, g.HasType(service, rdf.IRI(dcat.DataService)))
		assert.True(t, g.Has(service, rdf.IRI(dcat.PropServesDataset), VaccineUsageDataset))
	}
	assert.True(t, g.Has(CSVDistribution, rdf.IRI(core.DCFormat),
		rdf.IRI(dcat.EUAuthorityNamespace+"file-type/CSV")))
	assert.True(t, g.Has(TTLDistribution, rdf.IRI(core.DCFormat),
		rdf.IRI(dcat.EUAuthorityNamespace+"file-type/RDF_TURTLE")))
}

func TestDatasetFormats(t *testing.T) {
	g := testBuilder().Build()

	formats := DatasetFormats(g)
	require.Len(t, formats, 2)
	assert.Equal(t, VaccineUsageDataset.Value, formats[0].Dataset)
	assert.Equal(t, dcat.EUAuthorityNamespace+"file-type/CSV", formats[0].Format)
	assert.Equal(t, dcat.EUAuthorityNamespace+"file-type/RDF_TURTLE", formats[1].Format)
}

func TestRecentCreators(t *testing.T) {
	g := testBuilder().Build() // issued 2022-03-10

	assert.Equal(t, []string{Creator.Value},
		RecentCreators(g, time.Date(2022, time.April, 5, 0, 0, 0, 0, time.UTC)))
	assert.Empty(t, RecentCreators(g, time.Date(2022, time.June, 5, 0, 0, 0, 0, time.UTC)))

	// January looks back to December.
	gDec := testBuilder()
	gDec.now = func() time.Time {
		return time.Date(2021, time.December, 20, 12, 0, 0, 0, time.UTC)
	}
	assert.Equal(t, []string{Creator.Value},
		RecentCreators(gDec.Build(), time.Date(2022, time.January, 2, 0, 0, 0, 0, time.UTC)))
}

func TestWriteTurtle(t *testing.T) {
	g := testBuilder().Build()
	path := filepath.Join(t.TempDir(), "data_catalog.ttl")
	require.NoError(t, WriteTurtle(path, g))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dcat:Distribution")
	assert.Contains(t, string(data), "eurovoc:4636")
}

package cube

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
	"github.com/opendata-cz/cubepipe/integrity"
	"github.com/opendata-cz/cubepipe/rdf"
	"github.com/opendata-cz/cubepipe/storage"
	"github.com/opendata-cz/cubepipe/vocabulary/core"
	"github.com/opendata-cz/cubepipe/vocabulary/qb"
	"github.com/opendata-cz/cubepipe/vocabulary/sdmx"
	"github.com/opendata-cz/cubepipe/vocabulary/skos"
)

func testBuilder() *Builder {
	b := NewBuilder(
		config.AuthorConfig{Name: "Test Operator", Email: "test@example.org"},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	b.now = func() time.Time {
		return time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC)
	}
	return b
}

func testRows() []storage.UsageStarRow {
	return []storage.UsageStarRow{
		{
			DateID: 1, Year: 2022, Month: 1, Day: 3,
			DistrictID: 1, DistrictName: "Hlavní město Praha",
			StationID: 1, StationName: "Nemocnice Na Bulovce",
			VaccineID: 1, VaccineName: "Comirnaty",
			UsedAmpules: 10, SpoiledAmpules: 1, AdministeredDoses: 55, InvalidDoses: 2,
		},
		{
			DateID: 1, Year: 2022, Month: 1, Day: 3,
			DistrictID: 2, DistrictName: "Benešov",
			StationID: 2, StationName: "Nemocnice Rudolfa a Stefanie",
			VaccineID: 2, VaccineName: "Spikevax",
			UsedAmpules: 4, SpoiledAmpules: 0, AdministeredDoses: 20, InvalidDoses: 0,
		},
	}
}

func TestBuildStructure(t *testing.T) {
	g := testBuilder().Build(testRows())

	require.True(t, g.HasType(Structure, rdf.IRI(qb.DataStructureDefinition)))
	assert.Len(t, g.Objects(Structure, rdf.IRI(qb.PropComponent)), 8)
	assert.True(t, g.Has(Structure, rdf.IRI(qb.PropSliceKey), SliceStation))
	assert.True(t, g.HasType(SliceStation, rdf.IRI(qb.SliceKey)))

	for _, dim := range []rdf.Term{DimDate, DimDistrict, DimStation, DimVaccine} {
		assert.True(t, g.HasType(dim, rdf.IRI(qb.DimensionProperty)), dim.Value)
		assert.True(t, g.HasAny(dim, rdf.IRI(core.RDFSRange)), dim.Value)
		assert.True(t, g.HasAny(dim, rdf.IRI(qb.PropCodeList)), dim.Value)
	}
	for _, m := range []rdf.Term{MeasureUsedAmpules, MeasureSpoiledAmpules, MeasureAdministeredDoses, MeasureInvalidDoses} {
		assert.True(t, g.HasType(m, rdf.IRI(qb.MeasureProperty)), m.Value)
		assert.True(t, g.Has(m, rdf.IRI(core.RDFSSubPropertyOf), rdf.IRI(sdmx.ObsValue)), m.Value)
	}
}

func TestBuildConcepts(t *testing.T) {
	g := testBuilder().Build(testRows())

	// Two rows share date_id 1, so exactly one date concept exists.
	date := dateConcept(1)
	assert.True(t, g.HasType(date, rdf.IRI(skos.Concept)))
	assert.True(t, g.Has(date, rdf.IRI(skos.PropPrefLabel), rdf.TypedLiteral("2022-01-03", core.XSDDate)))
	assert.True(t, g.Has(date, rdf.IRI(skos.PropInScheme), rdf.IRI(sdmx.CodeDate)))
	assert.Len(t, g.Subjects(rdf.IRI(skos.PropInScheme), rdf.IRI(sdmx.CodeDate)), 1)

	district := districtConcept(2)
	assert.True(t, g.Has(district, rdf.IRI(skos.PropPrefLabel), rdf.LangLiteral("Benešov", "cs")))
	vaccine := vaccineConcept(2)
	assert.True(t, g.Has(vaccine, rdf.IRI(skos.PropPrefLabel), rdf.LangLiteral("Spikevax", "en")))
}

func TestBuildObservations(t *testing.T) {
	g := testBuilder().Build(testRows())

	obs := rdf.IRI(ResourceNamespace + "observation-000")
	require.True(t, g.HasType(obs, rdf.IRI(qb.Observation)))
	assert.True(t, g.Has(obs, rdf.IRI(qb.PropDataSet), DataSet))
	assert.True(t, g.Has(obs, DimDate, dateConcept(1)))
	assert.True(t, g.Has(obs, DimDistrict, districtConcept(1)))
	assert.True(t, g.Has(obs, DimStation, stationConcept(1)))
	assert.True(t, g.Has(obs, DimVaccine, vaccineConcept(1)))
	assert.True(t, g.Has(obs, MeasureUsedAmpules, rdf.TypedLiteral("10", core.XSDInt)))
	assert.True(t, g.Has(obs, MeasureAdministeredDoses, rdf.TypedLiteral("55", core.XSDInt)))

	obs1 := rdf.IRI(ResourceNamespace + "observation-001")
	assert.True(t, g.Has(obs1, MeasureSpoiledAmpules, rdf.TypedLiteral("0", core.XSDInt)))
}

func TestPragueSliceDiversion(t *testing.T) {
	rows := []storage.UsageStarRow{{
		DateID: 15, Year: 2022, Month: 1, Day: 14,
		DistrictID: 1, DistrictName: "Hlavní město Praha",
		StationID: 7, StationName: "Fakultní nemocnice v Motole",
		VaccineID: 1, VaccineName: "Comirnaty",
		UsedAmpules: 3, SpoiledAmpules: 0, AdministeredDoses: 18, InvalidDoses: 1,
	}}
	g := testBuilder().Build(rows)

	obs := rdf.IRI(ResourceNamespace + "observation-000")
	assert.True(t, g.Has(SlicePrague, rdf.IRI(qb.PropObservation), obs))
	assert.True(t, g.Has(obs, DimStation, stationConcept(7)))
	assert.False(t, g.HasAny(obs, DimDate))
	assert.False(t, g.HasAny(obs, DimDistrict))
	assert.False(t, g.HasAny(obs, DimVaccine))
	assert.True(t, g.Has(obs, rdf.IRI(qb.PropDataSet), DataSet))

	// The slice itself fixes the diverted dimension values.
	assert.True(t, g.Has(SlicePrague, DimDate, dateConcept(15)))
	assert.True(t, g.Has(SlicePrague, DimDistrict, districtConcept(1)))
	assert.True(t, g.Has(SlicePrague, DimVaccine, vaccineConcept(1)))
	assert.True(t, g.Has(SlicePrague, rdf.IRI(qb.PropSliceStructure), SliceStation))
}

func TestDataSetMetadata(t *testing.T) {
	g := testBuilder().Build(testRows())

	require.True(t, g.HasType(DataSet, rdf.IRI(qb.DataSet)))
	assert.True(t, g.Has(DataSet, rdf.IRI(qb.PropStructure), Structure))
	assert.True(t, g.Has(DataSet, rdf.IRI(qb.PropSlice), SlicePrague))
	assert.True(t, g.Has(DataSet, rdf.IRI(core.DCIssued), rdf.TypedLiteral("2022-02-01", core.XSDDate)))
	assert.True(t, g.Has(DataSet, rdf.IRI(core.DCPublisher), rdf.LangLiteral("Test Operator", "en")))
}

func TestBuiltCubePassesValidation(t *testing.T) {
	rows := append(testRows(), storage.UsageStarRow{
		DateID: 15, Year: 2022, Month: 1, Day: 14,
		DistrictID: 1, DistrictName: "Hlavní město Praha",
		StationID: 1, StationName: "Nemocnice Na Bulovce",
		VaccineID: 1, VaccineName: "Comirnaty",
		UsedAmpules: 2, SpoiledAmpules: 0, AdministeredDoses: 11, InvalidDoses: 0,
	})
	g := testBuilder().Build(rows)

	v := integrity.NewValidator(slog.New(slog.NewTextHandler(io.Discard, nil)))
	report := v.Validate(g)
	for _, id := range report.Violations() {
		t.Errorf("constraint violated: %s", id)
	}
	assert.True(t, report.Passed())
}

func TestWriteTurtle(t *testing.T) {
	g := testBuilder().Build(testRows())
	path := filepath.Join(t.TempDir(), "out", "data_cube.ttl")
	require.NoError(t, WriteTurtle(path, g))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@prefix cube: <"+OntologyNamespace+"> .")
	assert.Contains(t, string(data), "observation-000")
}

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-cz/cubepipe/transform"
)

var tableFiles = []string{
	transform.DimDatesFile,
	transform.DimDistrictsFile,
	transform.DimStationsFile,
	transform.DimVaccinesFile,
	transform.FactCasesFile,
	transform.FactUsageFile,
}

func TestCheckTables(t *testing.T) {
	dir := t.TempDir()
	for _, name := range tableFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("a,b\n"), 0o644))
	}
	require.NoError(t, CheckTables(dir))
}

func TestCheckTablesMissing(t *testing.T) {
	dir := t.TempDir()
	for _, name := range tableFiles[:len(tableFiles)-1] {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("a,b\n"), 0o644))
	}
	err := CheckTables(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingTable))
	assert.Contains(t, err.Error(), transform.FactUsageFile)
}

func TestSplitStatements(t *testing.T) {
	assert.Len(t, splitStatements(schemaSQL), 6)
	assert.Len(t, splitStatements(constraintsSQL), 6)
	for _, stmt := range splitStatements(schemaSQL) {
		assert.Contains(t, stmt, "CREATE TABLE")
	}
}

func TestDistrictRows(t *testing.T) {
	rows := districtRows([]transform.DimDistrict{
		{DistrictID: 1, DistrictName: "Hlavní město Praha", DistrictCode: "CZ0100", RegionName: "Hlavní město Praha", RegionCode: "CZ010", Population: "1275406.0"},
		{DistrictID: 2, DistrictName: "Benešov", DistrictCode: "CZ0201", RegionName: "Středočeský kraj", RegionCode: "CZ020", Population: ""},
	})
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Population)
	assert.InDelta(t, 1275406.0, *rows[0].Population, 1e-9)
	assert.Nil(t, rows[1].Population)
}

func TestStationRows(t *testing.T) {
	rows := stationRows([]transform.DimStation{
		{StationID: 1, StationCode: "CZ-001", OperationalStatus: "True", MinimalCapacity: "100", Accessibility: 1},
		{StationID: 2, StationCode: "CZ-002", OperationalStatus: "", MinimalCapacity: "", Accessibility: 0},
	})
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].OperationalStatus)
	assert.True(t, *rows[0].OperationalStatus)
	require.NotNil(t, rows[0].MinimalCapacity)
	assert.Equal(t, 100, *rows[0].MinimalCapacity)
	assert.True(t, rows[0].Accessibility)

	assert.Nil(t, rows[1].OperationalStatus)
	assert.Nil(t, rows[1].MinimalCapacity)
	assert.False(t, rows[1].Accessibility)
}

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeDataset(t *testing.T, dir, file, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
}

func TestLoader_LoadCSV(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "clinical_trials.csv",
		"disease,molecule,phase,sponsor\nOncology,Pembrolizumab,Phase 3,Merck\n")

	l := NewLoader(dir, nil)
	tb := l.Load(ClinicalTrials)

	require.Equal(t, 1, tb.Len())
	assert.Equal(t, "Merck", tb.Rows[0][3])
}

func TestLoader_MissingFileIsEmptyTable(t *testing.T) {
	l := NewLoader(t.TempDir(), nil)
	tb := l.Load(IQVIAMarket)
	assert.True(t, tb.Empty())
	assert.False(t, tb.HasColumn("country"))
}

func TestLoader_UnknownNameIsEmptyTable(t *testing.T) {
	l := NewLoader(t.TempDir(), nil)
	assert.True(t, l.Load("no_such_dataset").Empty())
}

func TestLoader_CorruptFileIsEmptyTable(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "patents.csv", "molecule,status\n\"unterminated,Active\n")

	l := NewLoader(dir, nil)
	// LazyQuotes tolerates most damage; a dataset that still parses is fine,
	// the contract is only that Load never returns an error.
	_ = l.Load(Patents)
}

func TestLoader_LoadXLSX(t *testing.T) {
	dir := t.TempDir()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("trade")
	require.NoError(t, err)
	header := sheet.AddRow()
	for _, c := range []string{"country", "trade_value_usd_mn", "partner_country"} {
		header.AddCell().Value = c
	}
	row := sheet.AddRow()
	for _, c := range []string{"India", "42.5", "US"} {
		row.AddCell().Value = c
	}
	require.NoError(t, f.Save(filepath.Join(dir, "exim_trade.xlsx")))

	manifest := Manifest{
		EXIMTrade: {File: "exim_trade.xlsx", Columns: []string{"country", "trade_value_usd_mn", "partner_country"}},
	}
	l := NewLoader(dir, manifest)
	tb := l.Load(EXIMTrade)

	require.Equal(t, 1, tb.Len())
	assert.InDelta(t, 42.5, tb.SumFloat("trade_value_usd_mn"), 1e-9)
}

func TestLoader_Verify(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "clinical_trials.csv",
		"disease,molecule,phase,sponsor\n")
	writeDataset(t, dir, "patents.csv",
		"molecule,jurisdiction\n") // missing status, assignee

	l := NewLoader(dir, nil)

	assert.NoError(t, l.Verify(ClinicalTrials))

	err := l.Verify(Patents)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")

	assert.Error(t, l.Verify(IQVIAMarket), "missing file fails Verify loudly")
	assert.Error(t, l.Verify("no_such_dataset"))
}

func TestLoader_Names(t *testing.T) {
	l := NewLoader(t.TempDir(), nil)
	assert.Equal(t, []string{ClinicalTrials, EXIMTrade, IQVIAMarket, Patents}, l.Names())
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datasets.yaml")
	content := []byte(`
datasets:
  clinical_trials:
    file: trials.xlsx
    columns: [disease, molecule, phase, sponsor]
  iqvia_market:
    file: market.csv
    columns: [country, disease]
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.Equal(t, "trials.xlsx", m[ClinicalTrials].File)
	assert.Equal(t, []string{"country", "disease"}, m[IQVIAMarket].Columns)
}

func TestLoadManifest_Errors(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datasets: {}\n"), 0o644))
	_, err = LoadManifest(path)
	assert.Error(t, err)
}

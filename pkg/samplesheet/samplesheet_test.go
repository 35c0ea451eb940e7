package samplesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/filesystem"
	"github.com/arthur-debert/scirnap/pkg/types"
)

func writeFile(t *testing.T, fs types.FS, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll("/sheets", 0755))
	require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
}

func TestLoadBarcodes(t *testing.T) {
	fs := filesystem.NewMemory()
	writeFile(t, fs, "/sheets/filelist.csv", "Lane,Barcode,SampleName\n1,ACGT,liver\n1, TTGA ,kidney\n2,,blank\n")

	got, err := LoadBarcodes(fs, "/sheets/filelist.csv")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ACGT": "liver", "TTGA": "kidney"}, got)
}

func TestLoadBarcodesMissingColumn(t *testing.T) {
	fs := filesystem.NewMemory()
	writeFile(t, fs, "/sheets/bad.csv", "Barcode,Name\nACGT,liver\n")

	_, err := LoadBarcodes(fs, "/sheets/bad.csv")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoad(t *testing.T) {
	fs := filesystem.NewMemory()
	writeFile(t, fs, "/sheets/rename.yaml", "/data/a.bam: liver\n/data/c.bam: kidney\n")
	writeFile(t, fs, "/sheets/filelist.csv", "Barcode,SampleName\nACGT,liver\n")

	yamlMap, err := Load(fs, "/sheets/rename.yaml")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"/data/a.bam": "liver", "/data/c.bam": "kidney"}, yamlMap)

	csvMap, err := Load(fs, "/sheets/filelist.csv")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ACGT": "liver"}, csvMap)

	_, err = Load(fs, "/sheets/missing.yml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestGroupByBarcode(t *testing.T) {
	files := []string{
		"/data/L1.ACGT.sorted.bam",
		"/data/L1.ACGT_summary.txt",
		"/data/L2.TTGA.sorted.bam",
		"/data/L2.ACGT.sorted.bam",
		"/data/L1.TTGA.sorted.bam",
		"/data/L3.CCCC.sorted.bam",
		"/data/nodots",
	}
	barcodes := map[string]string{"ACGT": "liver", "TTGA": "kidney"}

	g, err := GroupByBarcode(files, barcodes)
	require.NoError(t, err)

	assert.Equal(t, []types.Unit{
		{"/data/L1.ACGT.sorted.bam", "/data/L2.ACGT.sorted.bam"},
		{"/data/L2.TTGA.sorted.bam", "/data/L1.TTGA.sorted.bam"},
	}, g.Units)
	assert.Equal(t, map[string]string{
		"/data/L1.ACGT.sorted.bam": "liver",
		"/data/L2.TTGA.sorted.bam": "kidney",
	}, g.RenameMap)
	assert.Equal(t, []string{"/data/L3.CCCC.sorted.bam"}, g.Unpaired)
}

func TestGroupByBarcodeLookupMiss(t *testing.T) {
	files := []string{"/data/L1.GGGG.bam", "/data/L2.GGGG.bam"}

	_, err := GroupByBarcode(files, map[string]string{"ACGT": "liver"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLookupMiss))
	assert.Equal(t, "GGGG", errors.GetErrorDetails(err)["key"])
}

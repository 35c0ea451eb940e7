package naming_test

import (
	"testing"
	"time"

	"github.com/arthur-debert/scirnap/pkg/naming"
	"github.com/stretchr/testify/assert"
)

func TestOutputPath(t *testing.T) {
	runDate := time.Date(2020, time.November, 3, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name   string
		outDir string
		tool   string
		input  string
		want   string
	}{
		{"fastqc", "/out", "FASTQC", "/data/sample1.fq", "/out/FASTQC-03112020_sample1.fq"},
		{"trailing slash on out dir", "/out/", "HISAT2", "/data/s.fq.gz", "/out/HISAT2-03112020_s.fq.gz"},
		{"relative dirs", "data/hisat2", "CUTADAPT", "data/fastq/a.fq.gz", "data/hisat2/CUTADAPT-03112020_a.fq.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, naming.OutputPath(tt.outDir, tt.tool, runDate, tt.input))
		})
	}
}

func TestReplaceSuffix(t *testing.T) {
	assert.Equal(t, "genes.bed", naming.ReplaceSuffix("genes.gtf", ".gtf", ".bed"))
	assert.Equal(t, "/o/GTF2BED-01012020_genes.bed", naming.ReplaceSuffix("/o/GTF2BED-01012020_genes.gtf", ".gtf", ".bed"))
	assert.Equal(t, "genes.gff.bed", naming.ReplaceSuffix("genes.gff", ".gtf", ".bed"), "append when suffix absent")
	assert.Equal(t, "genes.bed", naming.ReplaceSuffix("genes", "", ".bed"))
}

func TestTrimExtensions(t *testing.T) {
	assert.Equal(t, "HISAT2-01012020_s1", naming.TrimExtensions("HISAT2-01012020_s1.merged.bam", 2))
	assert.Equal(t, "a.b", naming.TrimExtensions("a.b.c", 1))
	assert.Equal(t, "plain", naming.TrimExtensions("plain", 2))
	assert.Equal(t, "x", naming.TrimExtensions("x.bam", 2))
}

func TestStemAndBase(t *testing.T) {
	assert.Equal(t, "sample1", naming.Stem("/data/sample1.sorted.bam"))
	assert.Equal(t, "run1", naming.BaseName("/data/run1/"))
	assert.Equal(t, "noext", naming.Stem("noext"))
}

package scirnap

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/executor/testutil"
	"github.com/arthur-debert/scirnap/pkg/filesystem"
	fixtures "github.com/arthur-debert/scirnap/pkg/testutil"
)

var fixedNow = time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)

// execute runs the root command with args and returns its output
func execute(t *testing.T, env runEnv, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	if env.now == nil {
		env.now = func() time.Time { return fixedNow }
	}
	root := newRootCmd(env)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunDryRun(t *testing.T) {
	data := fixtures.DataDir(t, "sample1.fq.gz", "sample2.fq.gz", "readme.txt")
	outDir := t.TempDir()
	runner := testutil.NewMockRunner()

	out, err := execute(t, runEnv{runner: runner},
		"run", "cutadapt",
		"--data-dir", data,
		"--output-dir", outDir,
		"--params=-a AACCGGTT",
		"--dry-run",
		"--threads", "2",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "CUTADAPT ran over 2 file(s)")
	assert.Contains(t, out, "DRY RUN")

	logPath := filepath.Join(outDir, "CUTADAPT_logfile-01022024-103000.txt")
	log := fixtures.ReadFile(t, logPath)
	assert.Contains(t, log, "# Param str: -a AACCGGTT\n")
	assert.Contains(t, log, "-o "+filepath.Join(outDir, "CUTADAPT-01022024_sample1.fq.gz"))
	assert.Contains(t, log, "sample2.fq.gz")
	assert.NotContains(t, log, "readme.txt")

	runner.AssertNotCalled(t, "Run", mock.Anything)
}

func TestRunExecutes(t *testing.T) {
	data := fixtures.DataDir(t, "a.bam", "b.bam")
	runner := testutil.NewMockRunner()
	runner.On("Run", "featureCounts --version").Return([]byte("v2.0.6"), nil)
	runner.On("Run", mock.Anything).Return([]byte(""), nil)

	_, err := execute(t, runEnv{runner: runner},
		"run", "featurecounts",
		"--data-dir", data,
		"--gtf", "/ref/genes.gtf",
	)
	require.NoError(t, err)

	cmds := runner.Commands()
	require.Len(t, cmds, 2)
	assert.Contains(t, cmds[1], "-a /ref/genes.gtf")
	assert.Contains(t, cmds[1], filepath.Join(data, "a.bam"))
	assert.Contains(t, cmds[1], filepath.Join(data, "b.bam"))
}

func TestRunPoolByBarcode(t *testing.T) {
	data := fixtures.DataDir(t, "L1.ACGT.bam", "L2.ACGT.bam", "L1.TTGA.bam", "L2.TTGA.bam")
	sheet := fixtures.CreateFile(t, t.TempDir(), "filelist.csv", "Barcode,SampleName\nACGT,liver\nTTGA,kidney\n")
	outDir := t.TempDir()

	_, err := execute(t, runEnv{runner: testutil.NewMockRunner()},
		"run", "pool",
		"--data-dir", data,
		"--output-dir", outDir,
		"--group-by-barcode", sheet,
		"--dry-run",
	)
	require.NoError(t, err)

	logs, err := filepath.Glob(filepath.Join(outDir, "BAMPOOL_logfile-*.txt"))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	content := fixtures.ReadFile(t, logs[0])
	assert.Contains(t, content, "merge "+filepath.Join(outDir, "liver.merged.bam"))
	assert.Contains(t, content, "merge "+filepath.Join(outDir, "kidney.merged.bam"))
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"unknown tool", []string{"run", "bowtie", "--data-dir", "/tmp"}, errors.ErrUnknownTool},
		{"missing data dir flag", []string{"run", "fastqc"}, errors.ErrConfigInvalid},
		{"data dir does not exist", []string{"run", "fastqc", "--data-dir", "/nonexistent/scirnap"}, errors.ErrDataDirMissing},
		{"invalid mode", []string{"run", "hisat2", "--data-dir", "/tmp", "--mode", "x"}, errors.ErrConfigInvalid},
		{"featurecounts without gtf", []string{"run", "featurecounts", "--data-dir", "/tmp"}, errors.ErrConfigInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--output-dir", t.TempDir(), "--dry-run")
			_, err := execute(t, runEnv{runner: testutil.NewMockRunner()}, args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err), "got %v", err)
		})
	}
}

func TestRunMissingDataDirWithDefaultOutputDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := execute(t, runEnv{runner: testutil.NewMockRunner()},
		"run", "fastqc", "--data-dir", missing, "--dry-run")
	require.Error(t, err)
	assert.Equal(t, errors.ErrDataDirMissing, errors.GetErrorCode(err), "got %v", err)

	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr), "data directory must not be created")
}

func TestRunWarningsReachApplicationLog(t *testing.T) {
	data := fixtures.DataDir(t, "a.fq")
	runner := testutil.NewMockRunner()
	runner.On("Run", mock.Anything).Return(nil, stderrors.New("exit status 127"))

	_, err := execute(t, runEnv{runner: runner},
		"run", "fastqc", "--data-dir", data, "--output-dir", t.TempDir())
	require.NoError(t, err, "tool failures are warnings")

	appLog := fixtures.ReadFile(t, filepath.Join(os.Getenv("XDG_STATE_HOME"), "scirnap", "scirnap.log"))
	assert.Contains(t, appLog, "The version of your program could not be determined")
	assert.Contains(t, appLog, "Command exited with an error")
	assert.Contains(t, appLog, `"level":"warn"`)
}

func TestToolsCmd(t *testing.T) {
	out, err := execute(t, runEnv{}, "tools")
	require.NoError(t, err)
	for _, name := range []string{"cutadapt", "fastqc", "featurecounts", "stringtie", "hisat2", "pool", "sort", "gtf2bed"} {
		assert.Contains(t, out, name)
	}
}

func TestSummariseCmd(t *testing.T) {
	outDir := t.TempDir()
	fixtures.CreateFile(t, outDir, "H2_s1_summary.txt", "88.10% overall alignment rate\n")

	out, err := execute(t, runEnv{}, "summarise", "--output-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 alignment rate(s)")

	assert.Equal(t, "H2_s1_summary.txt\t88.10\n", fixtures.ReadFile(t, filepath.Join(outDir, "alignment_rates.tsv")))
}

func TestGenConfigCmd(t *testing.T) {
	out, err := execute(t, runEnv{}, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "[tools.hisat2]")
	assert.Contains(t, out, "# threads = 1")

	out, err = execute(t, runEnv{}, "genconfig", "--effective")
	require.NoError(t, err)
	assert.Contains(t, out, "threads = 1")
	assert.False(t, strings.Contains(out, "# threads"))
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, runEnv{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "scirnap version dev")
}

func TestNoCommand(t *testing.T) {
	_, err := execute(t, runEnv{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
}

func TestFlagOverrides(t *testing.T) {
	cmd := newRunCmd(&globalOptions{}, runEnv{})
	require.NoError(t, cmd.ParseFlags([]string{"--data-dir", "/d", "--gtf", "/g.gtf", "-t", "4"}))

	assert.Equal(t, map[string]interface{}{
		"data_dir":            "/d",
		"threads":             "4",
		"tools.stringtie.gtf": "/g.gtf",
	}, flagOverrides(cmd, "stringtie"))
}

func TestRunToolMemoryFS(t *testing.T) {
	fs := filesystem.NewMemory()
	fixtures.MemoryDataDir(t, fs, "/data", "genes.gtf")

	_, err := execute(t, runEnv{fs: fs, runner: testutil.NewMockRunner()},
		"run", "gtf2bed", "--data-dir", "/data", "--output-dir", "/out", "--dry-run")
	require.NoError(t, err)

	content, err := fs.ReadFile("/out/GTF2BED_logfile-01022024-103000.txt")
	require.NoError(t, err)
	assert.Contains(t, string(content), "gtf2bed /data/genes.gtf > /out/GTF2BED-01022024_genes.bed\t01/02/2024 10:30:00\tdry-run")
}

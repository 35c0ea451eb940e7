package runlog_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/filesystem"
	"github.com/arthur-debert/scirnap/pkg/runlog"
	"github.com/arthur-debert/scirnap/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.Date(2021, time.March, 4, 13, 5, 9, 0, time.UTC)

func fixedNow() time.Time { return fixed }

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "CUTADAPT_logfile-04032021-130509.txt", runlog.DefaultName("CUTADAPT", fixed))
}

func TestSinkWritesHeaderAndRecords(t *testing.T) {
	fsys := filesystem.NewMemory()
	path := "/out/logs/run.txt"

	sink, err := runlog.Open(path, runlog.Options{FS: fsys, Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, path, sink.Path())

	require.NoError(t, sink.WriteVersion("cutadapt 3.4\n"))
	require.NoError(t, sink.WriteParams([]types.Param{
		{Key: "Param str", Value: "-q 20"},
		{Key: "Single or paired", Value: "s"},
	}))
	require.NoError(t, sink.Record("cutadapt -q 20 -o out a.fq", false))
	require.NoError(t, sink.Record("cutadapt -q 20 -o out b.fq", true))
	require.NoError(t, sink.Close())

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	want := strings.Join([]string{
		"# program version: cutadapt 3.4",
		"# Param str: -q 20",
		"# Single or paired: s",
		"cutadapt -q 20 -o out a.fq\t04/03/2021 13:05:09",
		"cutadapt -q 20 -o out b.fq\t04/03/2021 13:05:09\tdry-run",
		"",
	}, "\n")
	assert.Equal(t, want, string(data))
}

func TestSinkAppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.txt")
	fsys := filesystem.NewOS()

	for i := 0; i < 2; i++ {
		sink, err := runlog.Open(path, runlog.Options{FS: fsys, Now: fixedNow})
		require.NoError(t, err)
		require.NoError(t, sink.Record(types.Command(fmt.Sprintf("echo %d", i)), false))
		require.NoError(t, sink.Close())
	}

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestSinkClosedFailsDeterministically(t *testing.T) {
	sink, err := runlog.Open("/run.txt", runlog.Options{FS: filesystem.NewMemory()})
	require.NoError(t, err)

	require.NoError(t, sink.Close())
	assert.True(t, sink.Closed())
	assert.NoError(t, sink.Close(), "second close is a no-op")

	err = sink.Record("echo late", false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLogClosed))

	err = sink.WriteVersion("v1")
	assert.True(t, errors.IsErrorCode(err, errors.ErrLogClosed))
}

func TestSinkConcurrentRecordsStayWhole(t *testing.T) {
	fsys := filesystem.NewMemory()
	sink, err := runlog.Open("/run.txt", runlog.Options{FS: fsys, Now: fixedNow})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, sink.Record(types.Command(fmt.Sprintf("tool --input sample%02d.fq", i)), false))
		}(i)
	}
	wg.Wait()
	require.NoError(t, sink.Close())

	data, err := fsys.ReadFile("/run.txt")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 50)
	for _, line := range lines {
		assert.Regexp(t, `^tool --input sample\d{2}\.fq\t04/03/2021 13:05:09$`, line)
	}
}

package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/synnheal/stepcalc/internal/model"
)

func sampleReports() []m.Report {
	return []m.Report{
		{
			Source: "problems/basic.yaml",
			Problem: m.Problem{
				ID:        "square",
				Input:     "x^2 + 2*x + 1",
				Operation: m.OperationDerivative,
				Expect:    "2*x + 2",
				Source:    "problems/basic.yaml",
			},
			Status: m.Solved,
			Solution: &m.Solution{
				Steps: []m.Step{
					{Description: "Initial expression", Expression: "x^2 + 2*x + 1"},
					{Description: "Simplify", Expression: "2*x + 2"},
				},
				FinalResult: "2*x + 2",
			},
		},
		{
			Source: "problems/basic.yaml",
			Problem: m.Problem{
				ID:        "linear",
				Input:     "2*x + y = 10",
				Operation: m.OperationLinear,
				Source:    "problems/basic.yaml",
			},
			Status: m.Solved,
			Solution: &m.Solution{
				Steps:       []m.Step{{Description: "Initial equation", Expression: "2*x + y = 10"}},
				FinalResult: "x = 5.00, y = 0.00",
				Variables:   map[string]float64{"x": 5, "y": 0},
			},
		},
		{
			Source:  "problems/basic.yaml",
			Problem: m.Problem{ID: "broken", Input: "2*x +", Source: "problems/basic.yaml"},
			Status:  m.Failed,
			Error:   "syntax error: unexpected end of input",
		},
	}
}

func TestReportStore_SaveAndLoad(t *testing.T) {
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))
	store := NewReportStore()

	require.NoError(t, store.SaveReports(dir, sampleReports()))

	loaded, err := store.LoadReports(dir)
	require.NoError(t, err)
	assert.Equal(t, sampleReports(), loaded)

	entries, err := os.ReadDir(string(dir))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ReportsFileName, entries[0].Name())
}

func TestReportStore_SaveReplaces(t *testing.T) {
	dir := m.Path(t.TempDir())
	store := NewReportStore()

	require.NoError(t, store.SaveReports(dir, sampleReports()))
	require.NoError(t, store.SaveReports(dir, sampleReports()[:1]))

	loaded, err := store.LoadReports(dir)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestReportStore_LoadErrors(t *testing.T) {
	store := NewReportStore()

	t.Run("missing", func(t *testing.T) {
		_, err := store.LoadReports(m.Path(t.TempDir()))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("newer version", func(t *testing.T) {
		dir := t.TempDir()
		writeTestFile(t, filepath.Join(dir, ReportsFileName), "version: 99\nreports: []\n")

		_, err := store.LoadReports(m.Path(dir))
		require.ErrorIs(t, err, ErrReportVersion)
	})
}

func TestReportStore_ShardDirs(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "shard_1"))
	mustMkdir(t, filepath.Join(root, "shard_0"))
	mustMkdir(t, filepath.Join(root, "other"))
	writeTestFile(t, filepath.Join(root, "shard_file"), "")

	shards, err := NewReportStore().ShardDirs(m.Path(root))
	require.NoError(t, err)
	assert.Equal(t, []m.Path{ShardDir(m.Path(root), 0), ShardDir(m.Path(root), 1)}, shards)
}

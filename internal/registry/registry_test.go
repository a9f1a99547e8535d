package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/tncutoffs/internal/records"
)

func TestDatasets_Complete(t *testing.T) {
	datasets := Datasets()
	require.Len(t, datasets, 22)

	seen := map[string]bool{}
	for _, ds := range datasets {
		assert.NotEmpty(t, ds.Label)
		assert.True(t, strings.HasSuffix(ds.File, ".pdf"), "file %q", ds.File)
		assert.False(t, seen[ds.File], "duplicate file %q", ds.File)
		seen[ds.File] = true

		assert.True(t, strings.HasPrefix(ds.Round, "Round"), "round %q", ds.Round)
		assert.Contains(t, []string{
			records.QuotaReserved, records.QuotaExSrvc, records.QuotaPWD,
			records.QuotaSports, records.QuotaGovt, records.QuotaMgmt,
		}, ds.Quota)
	}
}

func TestDatasets_QuotaCoverage(t *testing.T) {
	byQuota := map[string]int{}
	for _, ds := range Datasets() {
		byQuota[ds.Quota]++
	}

	assert.Equal(t, 5, byQuota[records.QuotaReserved])
	assert.Equal(t, 1, byQuota[records.QuotaExSrvc])
	assert.Equal(t, 1, byQuota[records.QuotaPWD])
	assert.Equal(t, 1, byQuota[records.QuotaSports])
	assert.Equal(t, 7, byQuota[records.QuotaGovt])
	assert.Equal(t, 7, byQuota[records.QuotaMgmt])
}

func TestStyles_RankAlwaysRetained(t *testing.T) {
	for _, ds := range Datasets() {
		keep := ds.Style.KeepColumns
		if keep == nil {
			keep = records.CommonColumns
		}
		assert.Contains(t, keep, records.ColRank, "dataset %q", ds.File)

		if ds.Style.SourceColumns != nil {
			assert.Contains(t, ds.Style.SourceColumns, records.ColRank, "dataset %q", ds.File)
		}
	}
}

func TestStyles_Sane(t *testing.T) {
	for _, ds := range Datasets() {
		s := ds.Style
		assert.GreaterOrEqual(t, s.StartPage, 1, "dataset %q", ds.File)
		assert.GreaterOrEqual(t, s.TableIndex, 0, "dataset %q", ds.File)
		assert.True(t, s.Lattice || s.Stream, "dataset %q has no detection mode", ds.File)
	}
}

func TestStyles_Round1TextExtraction(t *testing.T) {
	assert.True(t, StyleRound1Table0.ExtractCollegeFromText)
	assert.True(t, StyleRound1Table1.ExtractCollegeFromText)
	assert.Equal(t, 1, StyleRound1Table1.TableIndex)

	assert.False(t, StyleDefault.ExtractCollegeFromText)
	assert.Len(t, StyleDefault.SourceColumns, 9)
	assert.Len(t, StyleGovtDefault.SourceColumns, 10)
	assert.Len(t, StyleMgmtDefault.SourceColumns, 9)
	assert.Len(t, StyleRound5.SourceColumns, 7)
}

func TestStyleRound4_SkipsCoverPage(t *testing.T) {
	assert.Equal(t, 2, StyleRound4.StartPage)
}

package summary

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/tncutoffs/internal/records"
)

func masterRow(college string, rank float64, marks string) records.Record {
	return records.Record{
		Rank:        rank,
		TotalMarks:  marks,
		Community:   "BC",
		Category:    "Government Quota",
		Quota:       records.QuotaGovt,
		Year:        records.Year,
		Round:       "Round2",
		Course:      "MBBS",
		College:     college,
		CollegeType: "Government",
	}
}

func TestAggregate_Statistics(t *testing.T) {
	out := Aggregate([]records.Record{
		masterRow("Stanley Medical College", 100, "550.0"),
		masterRow("Stanley Medical College", 200, "560.0"),
	})
	require.Len(t, out, 1)

	r := out[0]
	assert.Equal(t, "Stanley Medical College", r.College)
	assert.Equal(t, 150.0, r.RankMean)
	assert.Equal(t, 70.711, r.RankStd)
	assert.Equal(t, 100.0, r.RankMin)
	assert.Equal(t, 200.0, r.RankMax)
	assert.Equal(t, 555.0, r.MarksMean)
	assert.Equal(t, 7.071, r.MarksStd)
	assert.Equal(t, 550.0, r.MarksMin)
	assert.Equal(t, 560.0, r.MarksMax)
	assert.Equal(t, records.Year, r.Year)
}

func TestAggregate_SingleObservationStdIsZero(t *testing.T) {
	out := Aggregate([]records.Record{
		masterRow("Stanley Medical College", 42, "512.25"),
	})
	require.Len(t, out, 1)

	assert.Equal(t, 0.0, out[0].RankStd)
	assert.Equal(t, 0.0, out[0].MarksStd)
	assert.Equal(t, 42.0, out[0].RankMean)
	assert.Equal(t, 512.25, out[0].MarksMean)
}

func TestAggregate_DropsUnparseableMarks(t *testing.T) {
	bad := masterRow("Stanley Medical College", 300, "AB")
	blank := masterRow("Stanley Medical College", 400, "  ")
	out := Aggregate([]records.Record{
		masterRow("Stanley Medical College", 100, "550.0"),
		bad,
		blank,
	})
	require.Len(t, out, 1)

	assert.Equal(t, 100.0, out[0].RankMax)
}

func TestAggregate_CommaInMarks(t *testing.T) {
	out := Aggregate([]records.Record{
		masterRow("C", 1, "1,234.5"),
	})
	require.Len(t, out, 1)
	assert.Equal(t, 1234.5, out[0].MarksMean)
}

func TestAggregate_KeyFieldsTrimmed(t *testing.T) {
	a := masterRow("Stanley Medical College", 100, "550.0")
	b := masterRow("  Stanley Medical College ", 200, "560.0")
	out := Aggregate([]records.Record{a, b})

	// Whitespace variants of the same key collapse into one group.
	require.Len(t, out, 1)
	assert.Equal(t, 150.0, out[0].RankMean)
}

func TestAggregate_EmptyKeyComponentsAreDistinct(t *testing.T) {
	withType := masterRow("C", 100, "550.0")
	withoutType := masterRow("C", 200, "560.0")
	withoutType.CollegeType = ""

	out := Aggregate([]records.Record{withType, withoutType})
	require.Len(t, out, 2)
}

func TestAggregate_DeterministicOrder(t *testing.T) {
	rows := []records.Record{
		masterRow("Zeta College", 1, "500.0"),
		masterRow("Alpha College", 2, "510.0"),
		masterRow("Mid College", 3, "520.0"),
	}
	out := Aggregate(rows)
	require.Len(t, out, 3)

	assert.Equal(t, "Alpha College", out[0].College)
	assert.Equal(t, "Mid College", out[1].College)
	assert.Equal(t, "Zeta College", out[2].College)

	// Shuffled input yields the same sequence.
	again := Aggregate([]records.Record{rows[2], rows[0], rows[1]})
	assert.Equal(t, out, again)
}

func TestAggregate_Rounding(t *testing.T) {
	out := Aggregate([]records.Record{
		masterRow("C", 1, "500.0"),
		masterRow("C", 2, "500.0"),
		masterRow("C", 3, "501.0"),
	})
	require.Len(t, out, 1)

	assert.Equal(t, 2.0, out[0].RankMean)
	assert.Equal(t, 500.333, out[0].MarksMean)
	assert.Equal(t, 0.577, out[0].MarksStd)
}

func TestAggregate_GroupCountInvariant(t *testing.T) {
	rows := []records.Record{
		masterRow("A", 1, "500.0"),
		masterRow("A", 2, "501.0"),
		masterRow("B", 3, "502.0"),
	}
	r4 := masterRow("A", 4, "503.0")
	r4.Round = "Round4"
	rows = append(rows, r4)

	out := Aggregate(rows)
	assert.Len(t, out, 3)
}

func TestWriteReadJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "tn_cutoffs.json")
	want := Aggregate([]records.Record{
		masterRow("Stanley Medical College", 100, "550.0"),
		masterRow("Stanley Medical College", 200, "560.0"),
	})

	require.NoError(t, WriteJSON(path, want))

	got, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadJSON_MissingFile(t *testing.T) {
	_, err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

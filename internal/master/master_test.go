package master

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/tncutoffs/internal/records"
)

func rec(round, quota, college, course, collegeType string) records.Record {
	return records.Record{
		Rank:        1,
		Quota:       quota,
		Year:        records.Year,
		Round:       round,
		Course:      course,
		College:     college,
		CollegeType: collegeType,
	}
}

func TestBuild_MajorityBackfill(t *testing.T) {
	rows := Build([][]records.Record{
		{
			rec("Round2", records.QuotaGovt, "Stanley Medical College", "MBBS", "Government"),
			rec("Round3", records.QuotaGovt, "Stanley Medical College", "MBBS", "Government"),
			rec("Round2", records.QuotaGovt, "Stanley Medical College", "BDS", "Government"),
		},
		{
			// Round1 rows carry only the college.
			rec("Round1", records.QuotaReserved, "Stanley Medical College", "", ""),
		},
	})

	require.Len(t, rows, 4)
	backfilled := rows[3]
	assert.Equal(t, "Round1", backfilled.Round)
	assert.Equal(t, "MBBS", backfilled.Course)
	assert.Equal(t, "Government", backfilled.CollegeType)
}

func TestBuild_LexicalTieBreak(t *testing.T) {
	rows := Build([][]records.Record{
		{
			rec("Round2", records.QuotaGovt, "Some Dental College", "MBBS", "Government"),
			rec("Round2", records.QuotaGovt, "Some Dental College", "BDS", "Government"),
			rec("Round1", records.QuotaReserved, "Some Dental College", "", ""),
		},
	})

	// Both pairs occur once; the lexically smaller course wins.
	require.Len(t, rows, 3)
	assert.Equal(t, "BDS", rows[2].Course)
}

func TestBuild_Round1ExcludedFromReference(t *testing.T) {
	rows := Build([][]records.Record{
		{
			// Round1 is the only source of a course for this college, so
			// nothing can be voted in.
			rec("Round1", records.QuotaGovt, "Lone College", "MBBS", "Government"),
			rec("Round2", records.QuotaGovt, "Lone College", "", ""),
		},
	})

	require.Len(t, rows, 2)
	assert.Empty(t, rows[1].Course)
	assert.Empty(t, rows[1].CollegeType)
}

func TestBuild_PartialBackfill(t *testing.T) {
	rows := Build([][]records.Record{
		{
			rec("Round2", records.QuotaGovt, "College X", "MBBS", "Government"),
			rec("Round3", records.QuotaGovt, "College X", "MBBS", "Government"),
			{
				Rank: 2, Quota: records.QuotaGovt, Year: records.Year,
				Round: "Round3", College: "College X",
				Course: "MBBS", CollegeType: "  ",
			},
		},
	})

	// Only the whitespace-blank college type is filled in.
	require.Len(t, rows, 3)
	assert.Equal(t, "MBBS", rows[2].Course)
	assert.Equal(t, "Government", rows[2].CollegeType)
}

func TestBuild_CategoryDefaults(t *testing.T) {
	govt := rec("Round2", records.QuotaGovt, "C", "MBBS", "Government")
	mgmt := rec("Round2", records.QuotaMgmt, "C", "MBBS", "Private")
	reserved := rec("Round2", records.QuotaReserved, "C", "MBBS", "Government")
	nanCat := rec("Round2", records.QuotaGovt, "C", "MBBS", "Government")
	nanCat.Category = "NaN"
	kept := rec("Round2", records.QuotaGovt, "C", "MBBS", "Government")
	kept.Category = "Armed Forces"

	rows := Build([][]records.Record{{govt, mgmt, reserved, nanCat, kept}})
	require.Len(t, rows, 5)

	assert.Equal(t, "Government Quota", rows[0].Category)
	assert.Equal(t, "Management Quota", rows[1].Category)
	assert.Equal(t, "Government Quota", rows[2].Category)
	assert.Equal(t, "Government Quota", rows[3].Category)
	assert.Equal(t, "Armed Forces", rows[4].Category)
}

func TestBuild_CanonicalCourses(t *testing.T) {
	cases := map[string]string{
		"* MBBS":        "MBBS",
		"*MBBS":         "MBBS",
		"* BDS":         "BDS",
		"AB1_ BDS":      "BDS",
		"X9_MBBS":       "MBBS",
		"MBBS":          "MBBS",
		"B.Sc. Nursing": "B.Sc. Nursing",
	}
	for raw, want := range cases {
		rows := Build([][]records.Record{{
			rec("Round2", records.QuotaGovt, "C", raw, "Government"),
		}})
		require.Len(t, rows, 1)
		assert.Equal(t, want, rows[0].Course, "raw course %q", raw)
	}
}

func TestBuild_ConcatenationOrder(t *testing.T) {
	rows := Build([][]records.Record{
		{rec("Round1", records.QuotaReserved, "A", "MBBS", "Government")},
		{rec("Round2", records.QuotaGovt, "B", "MBBS", "Government")},
		{rec("Round3", records.QuotaMgmt, "C", "MBBS", "Private")},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[0].College)
	assert.Equal(t, "B", rows[1].College)
	assert.Equal(t, "C", rows[2].College)
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Empty(t, Build([][]records.Record{{}, {}}))
}

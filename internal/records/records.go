// Package records defines the row types and domain constants shared by the
// allotment extraction pipeline.
package records

// Year is the admission year all parsed documents belong to.
const Year = 2025

// Quota labels as they appear in the document registry.
const (
	QuotaReserved = "7.5%"
	QuotaExSrvc   = "EXSRVC"
	QuotaPWD      = "PWD"
	QuotaSports   = "SPORTS"
	QuotaGovt     = "GOVT"
	QuotaMgmt     = "MGMT"
)

// Raw column names imposed on or read from source tables.
const (
	ColSNo             = "SNO"
	ColRank            = "RANK"
	ColARNo            = "ARNO"
	ColName            = "NAME"
	ColCommunity       = "COMMUNITY"
	ColTotalMarks      = "TOTAL MARKS"
	ColAllottedFrom    = "ALLOTTED FROM"
	ColAllottedTo      = "ALLOTTED TO"
	ColCollegeAllotted = "COLLEGE ALLOTTED"
	ColCategory        = "CATEGORY"
	ColStatus          = "Status"
)

// CommonColumns is the default keep-column set for styles that do not
// declare their own.
var CommonColumns = []string{ColRank, ColTotalMarks, ColCommunity, ColAllottedTo}

// Record is one allotment row. Extraction fills the raw fields (rank, marks,
// community, allotted-to, category) plus the attached metadata; the field
// splitter derives course, college and college type and clears AllottedTo.
type Record struct {
	Rank        float64 `json:"rank"`
	TotalMarks  string  `json:"total_marks,omitempty"`
	Community   string  `json:"community,omitempty"`
	AllottedTo  string  `json:"allotted_to,omitempty"`
	Category    string  `json:"category,omitempty"`
	Quota       string  `json:"quota"`
	Year        int     `json:"year"`
	Round       string  `json:"round"`
	Course      string  `json:"course,omitempty"`
	College     string  `json:"college,omitempty"`
	CollegeType string  `json:"college_type,omitempty"`
}

// Round1CollegeOnly reports whether a (round, quota) combination uses the
// Round1 layout whose allotted-to field carries only a college name. These
// documents never encode a course or a parenthetical college type.
func Round1CollegeOnly(round, quota string) bool {
	if round != "Round1" {
		return false
	}
	switch quota {
	case QuotaReserved, QuotaExSrvc, QuotaPWD, QuotaSports:
		return true
	}
	return false
}

// Package registry holds the per-document parsing configuration: the layout
// of every known allotment document, expressed as immutable ParseStyle values,
// and the static list of documents to process.
//
// Styles are pure data. The generic extractor in internal/extract consumes
// them; there is no per-document branching anywhere else in the pipeline.
package registry

import "github.com/a3tai/tncutoffs/internal/records"

// ParseStyle describes how one document lays out its allotment table.
type ParseStyle struct {
	// TableIndex selects which detected table on a page holds the data.
	TableIndex int

	// SourceColumns, when set, is imposed on the extracted table as its
	// column names. The table's column count must match exactly or the
	// page is skipped.
	SourceColumns []string

	// KeepColumns lists the columns to retain after renaming. When nil,
	// records.CommonColumns is used.
	KeepColumns []string

	// StartPage is the first physical page to scan, 1-based.
	StartPage int

	// Lattice and Stream select the table-detection mode.
	Lattice bool
	Stream  bool

	// ExtractCollegeFromText derives the allotted-to value from full-page
	// text when no table column carries it.
	ExtractCollegeFromText bool
}

// Styles for the known document layouts. Never mutated after definition.
var (
	// Round1 reserved-quota documents: the data table carries a COLLEGE
	// ALLOTTED column or none at all, with the college named in the page
	// body text.
	StyleRound1Table0 = ParseStyle{
		TableIndex:             0,
		KeepColumns:            []string{records.ColRank, records.ColTotalMarks, records.ColCommunity, records.ColCollegeAllotted},
		StartPage:              1,
		Lattice:                true,
		ExtractCollegeFromText: true,
	}

	// Same layout, but the data table is the second one on each page.
	StyleRound1Table1 = ParseStyle{
		TableIndex:             1,
		KeepColumns:            []string{records.ColRank, records.ColTotalMarks, records.ColCommunity, records.ColCollegeAllotted},
		StartPage:              1,
		Lattice:                true,
		ExtractCollegeFromText: true,
	}

	// Headerless nine-column layout used by most later reserved-quota rounds.
	StyleDefault = ParseStyle{
		TableIndex: 0,
		SourceColumns: []string{
			records.ColSNo, records.ColRank, records.ColARNo, records.ColName,
			records.ColCommunity, records.ColTotalMarks, records.ColAllottedFrom,
			records.ColAllottedTo, records.ColStatus,
		},
		StartPage: 1,
		Lattice:   true,
	}

	// Government-quota layout with an extra CATEGORY column.
	StyleGovtDefault = ParseStyle{
		TableIndex: 0,
		SourceColumns: []string{
			records.ColSNo, records.ColRank, records.ColARNo, records.ColName,
			records.ColCommunity, records.ColTotalMarks, records.ColAllottedFrom,
			records.ColAllottedTo, records.ColCategory, records.ColStatus,
		},
		KeepColumns: []string{records.ColRank, records.ColTotalMarks, records.ColCommunity, records.ColAllottedTo, records.ColCategory},
		StartPage:   1,
		Lattice:     true,
	}

	// Management-quota layout: no COMMUNITY column.
	StyleMgmtDefault = ParseStyle{
		TableIndex: 0,
		SourceColumns: []string{
			records.ColSNo, records.ColRank, records.ColARNo, records.ColName,
			records.ColTotalMarks, records.ColAllottedFrom, records.ColAllottedTo,
			records.ColCategory, records.ColStatus,
		},
		KeepColumns: []string{records.ColRank, records.ColTotalMarks, records.ColAllottedTo, records.ColCategory},
		StartPage:   1,
		Lattice:     true,
	}

	// Round 4 documents open with a cover page.
	StyleRound4 = ParseStyle{
		TableIndex: 0,
		SourceColumns: []string{
			records.ColSNo, records.ColRank, records.ColARNo, records.ColName,
			records.ColCommunity, records.ColTotalMarks, records.ColAllottedTo,
		},
		StartPage: 2,
		Lattice:   true,
	}

	// Seven-column layout used by rounds five onward.
	StyleRound5 = ParseStyle{
		TableIndex: 0,
		SourceColumns: []string{
			records.ColSNo, records.ColRank, records.ColARNo, records.ColName,
			records.ColCommunity, records.ColTotalMarks, records.ColAllottedTo,
		},
		StartPage: 1,
		Lattice:   true,
	}

	// Round1 government and management documents carry CATEGORY inline.
	StyleGovtRound1 = ParseStyle{
		TableIndex: 0,
		SourceColumns: []string{
			records.ColSNo, records.ColRank, records.ColARNo, records.ColName,
			records.ColCommunity, records.ColTotalMarks, records.ColAllottedTo,
			records.ColCategory,
		},
		KeepColumns: []string{records.ColRank, records.ColTotalMarks, records.ColCommunity, records.ColAllottedTo, records.ColCategory},
		StartPage:   1,
		Lattice:     true,
	}
)

// Dataset binds one source document to its round, quota and parse style.
type Dataset struct {
	Label string
	File  string
	Round string
	Style ParseStyle
	Quota string
}

// Datasets returns the full document registry in processing order. File names
// are relative to the configured documents directory.
func Datasets() []Dataset {
	return []Dataset{
		{"Reading Round1 7.5% Govt Quota Allotment", "7p5 reservation round 1.pdf", "Round1", StyleRound1Table0, records.QuotaReserved},
		{"Reading Round2 7.5% Govt Quota Allotment", "7p5 reservation round 2.pdf", "Round2", StyleDefault, records.QuotaReserved},
		{"Reading Round3 7.5% Govt Quota Allotment", "7p5 reservation round 3.pdf", "Round3", StyleDefault, records.QuotaReserved},
		{"Reading Round4 7.5% Govt Quota Allotment", "7p5 reservation round 4.pdf", "Round4", StyleRound4, records.QuotaReserved},
		{"Reading Round5 7.5% Govt Quota Allotment", "7p5 reservation round 5.pdf", "Round5", StyleRound5, records.QuotaReserved},
		{"Reading Round1 Ex-Servicemen Allotment", "exservicemen category round 1.pdf", "Round1", StyleRound1Table1, records.QuotaExSrvc},
		{"Reading Round1 PWD Allotment", "pwd category round 1.pdf", "Round1", StyleRound1Table1, records.QuotaPWD},
		{"Reading Round1 Sports Allotment", "sports category round 1.pdf", "Round1", StyleRound1Table1, records.QuotaSports},
		{"Reading Round1 Govt Quota Allotment", "govt round 1.pdf", "Round1", StyleGovtRound1, records.QuotaGovt},
		{"Reading Round2 Govt Quota Allotment", "govt round 2.pdf", "Round2", StyleGovtDefault, records.QuotaGovt},
		{"Reading Round3 Govt Quota Allotment", "govt round 3.pdf", "Round3", StyleGovtDefault, records.QuotaGovt},
		{"Reading Round4 Govt Quota Allotment", "govt round 4.pdf", "Round4", StyleRound4, records.QuotaGovt},
		{"Reading Round5 Govt Quota Allotment", "govt round 5.pdf", "Round5", StyleRound5, records.QuotaGovt},
		{"Reading Round6 Govt Quota Allotment", "govt round 6.pdf", "Round6", StyleRound5, records.QuotaGovt},
		{"Reading Round7 Govt Quota Allotment", "govt round 7.pdf", "Round7", StyleRound5, records.QuotaGovt},
		{"Reading Round1 Management Quota Allotment", "mgmt round 1.pdf", "Round1", StyleGovtRound1, records.QuotaMgmt},
		{"Reading Round2 Management Quota Allotment", "mgmt round 2.pdf", "Round2", StyleMgmtDefault, records.QuotaMgmt},
		{"Reading Round3 Management Quota Allotment", "mgmt round 3.pdf", "Round3", StyleMgmtDefault, records.QuotaMgmt},
		{"Reading Round4 Management Quota Allotment", "mgmt round 4.pdf", "Round4", StyleGovtRound1, records.QuotaMgmt},
		{"Reading Round5 Management Quota Allotment", "mgmt round 5.pdf", "Round5", StyleRound5, records.QuotaMgmt},
		{"Reading Round6 Management Quota Allotment", "mgmt round 6.pdf", "Round6", StyleRound5, records.QuotaMgmt},
		{"Reading Round7 Management Quota Allotment", "mgmt round 7.pdf", "Round7", StyleRound5, records.QuotaMgmt},
	}
}

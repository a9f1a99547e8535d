// Package extract turns pages of allotment documents into raw row batches,
// driven entirely by the declarative styles in internal/registry.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/a3tai/tncutoffs/internal/records"
	"github.com/a3tai/tncutoffs/internal/registry"
	"github.com/a3tai/tncutoffs/internal/tables"
)

// collegePattern recovers the allotted college from page body text in
// layouts whose table has no allotted-to column. The documents phrase it as
// "... ALLOTTED <college> ... JOIN ...".
var collegePattern = regexp.MustCompile(`ALLOTTED\s+(.*)\s+JOIN`)

// unknownCollege marks rows whose college could not be recovered from text.
const unknownCollege = "UNKNOWN"

// CollegeFromText extracts the allotted college name from full-page text,
// defaulting to the UNKNOWN marker on no match.
func CollegeFromText(text string) string {
	if m := collegePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return unknownCollege
}

// extractPageTable produces the raw rows of one page, or nil when the page
// holds no usable table. Every nil return here is a page-level skip, never
// an error: cover pages, layout drift on a single page and header-only
// tables are all expected.
func (p *Parser) extractPageTable(
	path string,
	page int,
	style registry.ParseStyle,
	round, quota, pageText string,
) ([]records.Record, error) {
	tbls, err := p.engine.DetectTables(path, page, tables.Mode{Lattice: style.Lattice, Stream: style.Stream})
	if err != nil {
		return nil, err
	}
	if len(tbls) == 0 || style.TableIndex >= len(tbls) {
		return nil, nil
	}
	tbl := tbls[style.TableIndex]

	header := make([]string, len(tbl.Header))
	if style.SourceColumns == nil {
		for i, h := range tbl.Header {
			header[i] = strings.TrimSpace(h)
		}
	} else {
		if len(tbl.Header) != len(style.SourceColumns) {
			return nil, nil
		}
		copy(header, style.SourceColumns)
	}

	keep := style.KeepColumns
	if keep == nil {
		keep = records.CommonColumns
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}
	kept := make(map[string]int, len(keep))
	for _, c := range keep {
		if i, ok := index[c]; ok {
			kept[c] = i
		}
	}
	if _, ok := kept[records.ColRank]; !ok {
		return nil, nil
	}

	cellOf := func(row []string, col string) (string, bool) {
		i, ok := kept[col]
		if !ok || i >= len(row) {
			return "", ok
		}
		return row[i], true
	}

	var out []records.Record
	for _, row := range tbl.Rows {
		rankRaw, _ := cellOf(row, records.ColRank)
		rankRaw = strings.TrimSpace(rankRaw)
		if rankRaw == "" {
			continue
		}
		rank, err := strconv.ParseFloat(strings.ReplaceAll(rankRaw, ",", ""), 64)
		if err != nil {
			// Not a data row; section headers and repeated column
			// titles land here.
			continue
		}

		rec := records.Record{
			Rank:  rank,
			Quota: quota,
			Year:  records.Year,
			Round: round,
		}
		if v, ok := cellOf(row, records.ColTotalMarks); ok {
			rec.TotalMarks = strings.TrimSpace(v)
		}
		if v, ok := cellOf(row, records.ColCommunity); ok {
			rec.Community = strings.TrimSpace(v)
		}
		if v, ok := cellOf(row, records.ColCategory); ok {
			rec.Category = v
		}

		// Allotted-to comes from the table when present, then from the
		// renamed college column, then from page text.
		if v, ok := cellOf(row, records.ColAllottedTo); ok {
			rec.AllottedTo = v
		} else if v, ok := cellOf(row, records.ColCollegeAllotted); ok {
			rec.AllottedTo = v
		} else if style.ExtractCollegeFromText {
			rec.AllottedTo = CollegeFromText(pageText)
		}

		out = append(out, rec)
	}

	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

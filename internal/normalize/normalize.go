// Package normalize splits the raw allotted-to text of each row into the
// structured course, college and college-type fields and cleans all text.
//
// The split is an ordered fallback chain, not a single pattern: newline
// split first, then the single-line "course (…) college" pattern, then a
// verbatim fallback. A pattern that does not match is never an error; the
// affected fields default to the empty string.
package normalize

import (
	"regexp"
	"strings"

	"github.com/a3tai/tncutoffs/internal/records"
)

var (
	newlineRun = regexp.MustCompile(`[\r\n]+`)
	multiSpace = regexp.MustCompile(`\s{2,}`)

	// singleLine splits "COURSE (...) COLLEGE, CITY" when the two parts
	// share one physical line. The lazy head deliberately stops at the
	// first closing parenthesis; a college name containing parentheses
	// mis-splits here and is repaired by the master builder's backfill.
	singleLine = regexp.MustCompile(`^(.*?\))\s+(.+)$`)

	// qualifier captures the parenthetical college type that prefixes
	// most non-Round1 course texts, e.g. "MBBS (Government)".
	qualifier = regexp.MustCompile(`^([^(]+?)\s*\(([^)]*)\)`)
)

// PostProcess derives course, college and college type for every row and
// normalizes whitespace in all text fields. It is a pure function and is
// idempotent: rows that have already been processed (allotted-to cleared)
// pass through unchanged.
func PostProcess(rows []records.Record) []records.Record {
	out := make([]records.Record, len(rows))
	for i, r := range rows {
		out[i] = splitRow(r)
	}
	return out
}

func splitRow(r records.Record) records.Record {
	collegeOnly := records.Round1CollegeOnly(r.Round, r.Quota)

	if r.AllottedTo != "" {
		r.Course, r.College = "", ""
		if collegeOnly {
			// These Round1 layouts put only the college in the
			// allotted-to field. No split is attempted.
			r.College = strings.TrimSpace(r.AllottedTo)
		} else {
			r.Course, r.College = splitAllotted(r.AllottedTo)
		}
		r.AllottedTo = ""
	}

	r.College = cleanText(r.College)
	r.Course = cleanText(r.Course)
	r.Category = cleanText(r.Category)

	if collegeOnly {
		// Repair rows where the verbatim text landed in the course
		// field during extraction.
		if r.College == "" && r.Course != "" {
			r.College = r.Course
		}
		r.Course = ""
		return r
	}

	if m := qualifier.FindStringSubmatch(r.Course); m != nil {
		r.Course = strings.TrimSpace(m[1])
		r.CollegeType = strings.TrimSpace(m[2])
	}
	return r
}

// splitAllotted separates course from college. Two-line values split on the
// first newline run; single-line values try the parenthesis pattern; failing
// both, the course keeps the whole text and the college keeps the original
// value untouched.
func splitAllotted(s string) (course, college string) {
	parts := newlineRun.Split(s, 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	if m := singleLine.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(parts[0]), s
}

// cleanText collapses line breaks and runs of whitespace to single spaces
// and trims the result.
func cleanText(s string) string {
	s = newlineRun.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

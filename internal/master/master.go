// Package master merges all per-document results into one dataset and
// repairs it: missing courses and college types are backfilled by a
// majority vote over rows where they are known, blank categories get quota-
// based defaults, and known course spelling variants are canonicalized.
package master

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/a3tai/tncutoffs/internal/records"
)

const (
	categoryGovt = "Government Quota"
	categoryMgmt = "Management Quota"
)

// Stray prefixes in front of the bare course names, left behind by cell
// assembly on some layouts.
var courseVariants = []struct {
	pattern *regexp.Regexp
	course  string
}{
	{regexp.MustCompile(`^\*\s*MBBS$`), "MBBS"},
	{regexp.MustCompile(`^\*\s*BDS$`), "BDS"},
	{regexp.MustCompile(`^[A-Za-z0-9]+_\s*MBBS$`), "MBBS"},
	{regexp.MustCompile(`^[A-Za-z0-9]+_\s*BDS$`), "BDS"},
}

// refEntry is the course/college-type pair chosen for one college.
type refEntry struct {
	course      string
	collegeType string
}

// Build concatenates all documents' rows in registration order and applies
// the backfill, category-default and canonicalization passes.
func Build(perDocument [][]records.Record) []records.Record {
	var rows []records.Record
	for _, doc := range perDocument {
		rows = append(rows, doc...)
	}

	ref := referenceTable(rows)

	for i := range rows {
		r := &rows[i]
		if strings.TrimSpace(r.Course) == "" {
			if e, ok := ref[r.College]; ok {
				r.Course = e.course
			}
		}
		if strings.TrimSpace(r.CollegeType) == "" {
			if e, ok := ref[r.College]; ok {
				r.CollegeType = e.collegeType
			}
		}
		if blankCategory(r.Category) {
			if r.Quota == records.QuotaMgmt {
				r.Category = categoryMgmt
			} else {
				r.Category = categoryGovt
			}
		}
	}

	logEmptyCategories(rows)

	for i := range rows {
		rows[i].Course = canonicalCourse(strings.TrimSpace(rows[i].Course))
	}

	logPrivateColleges(rows)
	return rows
}

// referenceTable builds the backfill lookup: for every college, the
// (course, college type) pair observed most often among non-Round1 rows
// where at least one of the two is known. Ties break to the pair that sorts
// first, so the result is independent of document processing order.
func referenceTable(rows []records.Record) map[string]refEntry {
	counts := make(map[string]map[refEntry]int)
	for _, r := range rows {
		if r.Round == "Round1" {
			continue
		}
		if r.Course == "" && r.CollegeType == "" {
			continue
		}
		e := refEntry{course: r.Course, collegeType: r.CollegeType}
		if counts[r.College] == nil {
			counts[r.College] = make(map[refEntry]int)
		}
		counts[r.College][e]++
	}

	ref := make(map[string]refEntry, len(counts))
	for college, pairs := range counts {
		var best refEntry
		bestCount := -1
		for e, n := range pairs {
			if n > bestCount || (n == bestCount && lessEntry(e, best)) {
				best, bestCount = e, n
			}
		}
		ref[college] = best
	}
	return ref
}

func lessEntry(a, b refEntry) bool {
	if a.course != b.course {
		return a.course < b.course
	}
	return a.collegeType < b.collegeType
}

// blankCategory reports whether a category value counts as missing. The
// literal "nan" appears in blobs cached by earlier schema versions.
func blankCategory(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "nan")
}

func canonicalCourse(course string) string {
	for _, v := range courseVariants {
		if v.pattern.MatchString(course) {
			return v.course
		}
	}
	return course
}

// logEmptyCategories tallies rows that still have no category by
// (round, quota). Diagnostic only.
func logEmptyCategories(rows []records.Record) {
	tally := make(map[string]int)
	for _, r := range rows {
		if blankCategory(r.Category) {
			tally[fmt.Sprintf("%s/%s", r.Round, r.Quota)]++
		}
	}
	if len(tally) == 0 {
		return
	}
	log.Printf("rows with empty CATEGORY by round/quota:")
	for _, k := range sortedKeys(tally) {
		log.Printf("  %s: %d", k, tally[k])
	}
}

// logPrivateColleges tallies rows whose college type resolved to Private by
// (round, quota). Diagnostic only.
func logPrivateColleges(rows []records.Record) {
	tally := make(map[string]int)
	for _, r := range rows {
		if r.CollegeType == "Private" {
			tally[fmt.Sprintf("%s/%s", r.Round, r.Quota)]++
		}
	}
	if len(tally) == 0 {
		return
	}
	log.Printf("Private college rows by round/quota:")
	for _, k := range sortedKeys(tally) {
		log.Printf("  %s: %d", k, tally[k])
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

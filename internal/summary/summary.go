// Package summary reduces the master dataset into one statistical record
// per (college, course, college type, quota, community, category, round,
// year) combination.
package summary

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/a3tai/tncutoffs/internal/records"
)

// GroupKey is the 8-field grouping key. Empty strings are valid, distinct
// key components.
type GroupKey struct {
	College     string `json:"college"`
	Course      string `json:"course"`
	CollegeType string `json:"college_type"`
	Quota       string `json:"quota"`
	Community   string `json:"community"`
	Category    string `json:"category"`
	Round       string `json:"round"`
	Year        int    `json:"year"`
}

// Record is one summary row: the group key plus descriptive statistics of
// rank and cutoff marks across the group, rounded to 3 decimal places.
type Record struct {
	GroupKey
	RankMean  float64 `json:"rank_mean"`
	RankStd   float64 `json:"rank_std"`
	RankMin   float64 `json:"rank_min"`
	RankMax   float64 `json:"rank_max"`
	MarksMean float64 `json:"marks_mean"`
	MarksStd  float64 `json:"marks_std"`
	MarksMin  float64 `json:"marks_min"`
	MarksMax  float64 `json:"marks_max"`
}

// Aggregate groups the master rows and computes their statistics. Rows
// whose cutoff marks cannot be coerced to a number are dropped; they may
// still have contributed to backfill upstream. Output order is the lexical
// order of the group keys, so identical input yields identical output.
func Aggregate(rows []records.Record) []Record {
	type bucket struct {
		ranks []float64
		marks []float64
	}
	groups := make(map[GroupKey]*bucket)

	for _, r := range rows {
		marks, ok := parseNumber(r.TotalMarks)
		if !ok {
			continue
		}
		key := GroupKey{
			College:     strings.TrimSpace(r.College),
			Course:      strings.TrimSpace(r.Course),
			CollegeType: strings.TrimSpace(r.CollegeType),
			Quota:       strings.TrimSpace(r.Quota),
			Community:   strings.TrimSpace(r.Community),
			Category:    strings.TrimSpace(r.Category),
			Round:       strings.TrimSpace(r.Round),
			Year:        r.Year,
		}
		b := groups[key]
		if b == nil {
			b = &bucket{}
			groups[key] = b
		}
		b.ranks = append(b.ranks, r.Rank)
		b.marks = append(b.marks, marks)
	}

	out := make([]Record, 0, len(groups))
	for key, b := range groups {
		out = append(out, Record{
			GroupKey:  key,
			RankMean:  round3(mean(b.ranks)),
			RankStd:   round3(sampleStd(b.ranks)),
			RankMin:   round3(minOf(b.ranks)),
			RankMax:   round3(maxOf(b.ranks)),
			MarksMean: round3(mean(b.marks)),
			MarksStd:  round3(sampleStd(b.marks)),
			MarksMin:  round3(minOf(b.marks)),
			MarksMax:  round3(maxOf(b.marks)),
		})
	}

	sort.Slice(out, func(i, j int) bool { return lessKey(out[i].GroupKey, out[j].GroupKey) })
	return out
}

func lessKey(a, b GroupKey) bool {
	if a.College != b.College {
		return a.College < b.College
	}
	if a.Course != b.Course {
		return a.Course < b.Course
	}
	if a.CollegeType != b.CollegeType {
		return a.CollegeType < b.CollegeType
	}
	if a.Quota != b.Quota {
		return a.Quota < b.Quota
	}
	if a.Community != b.Community {
		return a.Community < b.Community
	}
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	if a.Round != b.Round {
		return a.Round < b.Round
	}
	return a.Year < b.Year
}

// parseNumber coerces a raw cell value to a float, best effort.
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the sample standard deviation, defined as 0 for groups with
// fewer than two observations.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

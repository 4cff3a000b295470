package report

import (
	"slices"
	"strings"
	"time"
)

type recordKey struct {
	date  time.Time
	num   string
	split string
}

func (r Record) key() recordKey {
	return recordKey{date: r.Date, num: r.Num, split: r.Split.GUID}
}

// Dedupe drops records repeated across overlapping account trees and sorts
// the rest by date, transaction number and split GUID.
func Dedupe(records []Record) []Record {
	seen := make(map[recordKey]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		k := r.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	slices.SortFunc(out, compareRecords)
	return out
}

func compareRecords(a, b Record) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	if c := strings.Compare(a.Num, b.Num); c != 0 {
		return c
	}
	return strings.Compare(a.Split.GUID, b.Split.GUID)
}

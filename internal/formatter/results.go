// Package formatter ranks feed objects per date and renders them as text.
package formatter

import (
	"cmp"
	"slices"
	"strings"

	"neowatch/internal/models"
)

// Select returns the ranked entries for every non-empty date bucket, in
// bucket order. Within a date, objects are ordered by absolute magnitude
// from largest to smallest (ties keep their feed order) and cut to limit.
func Select(payload *models.FeedPayload, limit int) []models.Entry {
	if payload == nil || limit <= 0 {
		return nil
	}

	var entries []models.Entry

	for _, bucket := range payload.Buckets {
		if bucket.IsEmpty() {
			continue
		}

		for _, obj := range RankBucket(bucket.Objects, limit) {
			entries = append(entries, models.Entry{Date: bucket.Date, Object: obj})
		}
	}

	return entries
}

// RankBucket returns a sorted, truncated copy of objects. The input is not modified.
func RankBucket(objects []models.NearEarthObject, limit int) []models.NearEarthObject {
	ranked := slices.Clone(objects)

	slices.SortStableFunc(ranked, func(a, b models.NearEarthObject) int {
		return cmp.Compare(b.AbsoluteMagnitudeH, a.AbsoluteMagnitudeH)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// FormatResults renders the ranked selection, one line per entry.
func FormatResults(payload *models.FeedPayload, limit int) []string {
	entries := Select(payload, limit)

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, FormatLine(e))
	}

	return lines
}

// FormatLine renders one entry as
//
//	<date> <id>: {'name': ..., 'absolute_magnitude_h': ..., 'is_potentially_hazardous_asteroid': ...}
func FormatLine(e models.Entry) string {
	var sb strings.Builder

	sb.WriteString(e.Date)
	sb.WriteByte(' ')
	sb.WriteString(e.Object.ReferenceID)
	sb.WriteString(": {'name': ")
	sb.WriteString(ReprString(e.Object.Name))
	sb.WriteString(", 'absolute_magnitude_h': ")
	sb.WriteString(ReprFloat(e.Object.AbsoluteMagnitudeH))
	sb.WriteString(", 'is_potentially_hazardous_asteroid': ")
	sb.WriteString(ReprBool(e.Object.IsPotentiallyHazardous))
	sb.WriteByte('}')

	return sb.String()
}

// JoinInline joins lines with single spaces, matching a plain print of the result list.
func JoinInline(lines []string) string {
	return strings.Join(lines, " ")
}

// Package models defines data structures shared by the fetcher, formatter and processor.
package models

// NearEarthObject is a single NeoWs record for one close-approach date.
type NearEarthObject struct {
	ReferenceID            string  `json:"neo_reference_id"`
	Name                   string  `json:"name"`
	AbsoluteMagnitudeH     float64 `json:"absolute_magnitude_h"`
	IsPotentiallyHazardous bool    `json:"is_potentially_hazardous_asteroid"`
}

// DateBucket holds the objects the feed returned for one calendar date.
type DateBucket struct {
	Date    string            `json:"date"`
	Objects []NearEarthObject `json:"objects"`
}

// IsEmpty reports whether the bucket carries no objects.
func (b DateBucket) IsEmpty() bool {
	return len(b.Objects) == 0
}

// FeedPayload is the decoded feed response. Buckets keep the order in which
// the response document listed the dates.
type FeedPayload struct {
	Buckets []DateBucket `json:"buckets"`
}

// ObjectCount returns the total number of objects across all buckets.
func (p *FeedPayload) ObjectCount() int {
	if p == nil {
		return 0
	}

	total := 0
	for _, b := range p.Buckets {
		total += len(b.Objects)
	}

	return total
}

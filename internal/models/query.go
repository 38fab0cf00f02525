package models

import "fmt"

// DateRange is an inclusive interval of YYYY-MM-DD dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// String returns the range as "start..end".
func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}

// Entry is one ranked (date, object) pair selected for output.
type Entry struct {
	Date   string
	Object NearEarthObject
}

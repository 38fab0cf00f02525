package fetcher

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeFeed_PreservesDateOrder(t *testing.T) {
	body := `{"near_earth_objects": {
		"2015-09-09": [],
		"2015-09-07": [{"neo_reference_id": "1", "name": "A", "absolute_magnitude_h": 20.1, "is_potentially_hazardous_asteroid": false}],
		"2015-09-08": null
	}}`

	payload, err := DecodeFeed([]byte(body))
	if err != nil {
		t.Fatalf("DecodeFeed returned unexpected error: %v", err)
	}

	want := []string{"2015-09-09", "2015-09-07", "2015-09-08"}
	if len(payload.Buckets) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(payload.Buckets), len(want))
	}

	for i, date := range want {
		if payload.Buckets[i].Date != date {
			t.Errorf("bucket %d date = %s, want %s", i, payload.Buckets[i].Date, date)
		}
	}

	if !payload.Buckets[0].IsEmpty() || !payload.Buckets[2].IsEmpty() {
		t.Error("empty and null lists should decode to empty buckets")
	}
}

func TestDecodeFeed_ReferenceIDForms(t *testing.T) {
	body := `{"near_earth_objects": {"2015-09-07": [
		{"neo_reference_id": 1, "name": "A", "absolute_magnitude_h": 20.1, "is_potentially_hazardous_asteroid": false},
		{"neo_reference_id": "3726710", "name": "B", "absolute_magnitude_h": 25.5, "is_potentially_hazardous_asteroid": true}
	]}}`

	payload, err := DecodeFeed([]byte(body))
	if err != nil {
		t.Fatalf("DecodeFeed returned unexpected error: %v", err)
	}

	objs := payload.Buckets[0].Objects
	if objs[0].ReferenceID != "1" {
		t.Errorf("numeric id = %q, want 1", objs[0].ReferenceID)
	}

	if objs[1].ReferenceID != "3726710" {
		t.Errorf("string id = %q, want 3726710", objs[1].ReferenceID)
	}
}

func TestDecodeFeed_MissingOrNullFeed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Missing key", `{"element_count": 0}`},
		{"Null value", `{"near_earth_objects": null}`},
		{"Empty object", `{"near_earth_objects": {}}`},
		{"Empty document", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := DecodeFeed([]byte(tt.body))
			if err != nil {
				t.Fatalf("DecodeFeed returned unexpected error: %v", err)
			}

			if len(payload.Buckets) != 0 {
				t.Errorf("got %d buckets, want 0", len(payload.Buckets))
			}
		})
	}
}

func TestDecodeFeed_DuplicateDateKeepsFirstPosition(t *testing.T) {
	body := `{"near_earth_objects": {
		"2015-09-08": [],
		"2015-09-07": [],
		"2015-09-08": [{"neo_reference_id": "9", "name": "Z", "absolute_magnitude_h": 1.5, "is_potentially_hazardous_asteroid": false}]
	}}`

	payload, err := DecodeFeed([]byte(body))
	if err != nil {
		t.Fatalf("DecodeFeed returned unexpected error: %v", err)
	}

	if len(payload.Buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(payload.Buckets))
	}

	if payload.Buckets[0].Date != "2015-09-08" || len(payload.Buckets[0].Objects) != 1 {
		t.Errorf("first bucket = %+v, want 2015-09-08 with the later value", payload.Buckets[0])
	}
}

func TestDecodeFeed_Errors(t *testing.T) {
	valid := `"neo_reference_id": "1", "name": "A", "absolute_magnitude_h": 20.1, "is_potentially_hazardous_asteroid": false`

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"Empty body", ``, "top-level"},
		{"Not JSON", `<html>oops</html>`, "top-level"},
		{"Top-level array", `[]`, "top-level"},
		{"Top-level null", `null`, "top-level"},
		{"Truncated", `{"near_earth_objects": {"2015-09-07": [`, "near_earth_objects"},
		{"Trailing data", `{"near_earth_objects": {}} {}`, "after top-level"},
		{"Feed is a list", `{"near_earth_objects": []}`, "must be an object"},
		{"Feed is a string", `{"near_earth_objects": "x"}`, "must be an object"},
		{"Bucket is an object", `{"near_earth_objects": {"2015-09-07": {}}}`, "invalid object list"},
		{"Null object", `{"near_earth_objects": {"2015-09-07": [null]}}`, "object is null"},
		{
			"Missing magnitude",
			`{"near_earth_objects": {"2015-09-07": [{"neo_reference_id": "1", "name": "A", "is_potentially_hazardous_asteroid": false}]}}`,
			"missing absolute_magnitude_h",
		},
		{
			"Null magnitude",
			`{"near_earth_objects": {"2015-09-07": [{"neo_reference_id": "1", "name": "A", "absolute_magnitude_h": null, "is_potentially_hazardous_asteroid": false}]}}`,
			"missing absolute_magnitude_h",
		},
		{
			"Missing name",
			`{"near_earth_objects": {"2015-09-07": [{"neo_reference_id": "1", "absolute_magnitude_h": 1, "is_potentially_hazardous_asteroid": false}]}}`,
			"missing name",
		},
		{
			"Missing hazard flag",
			`{"near_earth_objects": {"2015-09-07": [{"neo_reference_id": "1", "name": "A", "absolute_magnitude_h": 1}]}}`,
			"missing is_potentially_hazardous_asteroid",
		},
		{
			"Missing reference id",
			`{"near_earth_objects": {"2015-09-07": [{"name": "A", "absolute_magnitude_h": 1, "is_potentially_hazardous_asteroid": false}]}}`,
			"missing neo_reference_id",
		},
		{
			"Fractional reference id",
			`{"near_earth_objects": {"2015-09-07": [{"neo_reference_id": 1.5, "name": "A", "absolute_magnitude_h": 1, "is_potentially_hazardous_asteroid": false}]}}`,
			"must be an integer",
		},
		{
			"Boolean reference id",
			`{"near_earth_objects": {"2015-09-07": [{"neo_reference_id": true, "name": "A", "absolute_magnitude_h": 1, "is_potentially_hazardous_asteroid": false}]}}`,
			"string or integer",
		},
		{
			"Magnitude as string",
			`{"near_earth_objects": {"2015-09-07": [{"neo_reference_id": "1", "name": "A", "absolute_magnitude_h": "20.1", "is_potentially_hazardous_asteroid": false}]}}`,
			"absolute_magnitude_h",
		},
		{
			"Second object bad",
			`{"near_earth_objects": {"2015-09-07": [{` + valid + `}, {"name": "B"}]}}`,
			"object 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := DecodeFeed([]byte(tt.body))
			if err == nil {
				t.Fatalf("DecodeFeed expected error, got payload %+v", payload)
			}

			if !errors.Is(err, ErrResponseProcessing) {
				t.Errorf("DecodeFeed error = %v, want ErrResponseProcessing", err)
			}

			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("DecodeFeed error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

package fetcher

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"neowatch/internal/models"
)

// FeedKey is the response field holding the date -> objects mapping.
const FeedKey = "near_earth_objects"

var nullLiteral = []byte("null")

// rawObject mirrors one feed record. Pointers distinguish missing fields from zero values.
type rawObject struct {
	Name                   *string         `json:"name"`
	AbsoluteMagnitudeH     *float64        `json:"absolute_magnitude_h"`
	IsPotentiallyHazardous *bool           `json:"is_potentially_hazardous_asteroid"`
	ReferenceID            json.RawMessage `json:"neo_reference_id"`
}

// DecodeFeed parses a feed response body.
//
// The date buckets keep the order in which the document lists them. A
// missing or null feed field yields an empty payload, as does a null date
// list. Everything else that does not match the expected shape returns
// ErrResponseProcessing.
func DecodeFeed(body []byte) (*models.FeedPayload, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("%w: top-level value: %w", ErrResponseProcessing, err)
	}

	payload := &models.FeedPayload{}

	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResponseProcessing, err)
		}

		if key != FeedKey {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("%w: field %q: %w", ErrResponseProcessing, key, err)
			}

			continue
		}

		buckets, err := decodeBuckets(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResponseProcessing, err)
		}

		payload.Buckets = buckets
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResponseProcessing, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level object", ErrResponseProcessing)
	}

	return payload, nil
}

// decodeBuckets reads the value of the feed field: null or an object of date -> list.
func decodeBuckets(dec *json.Decoder) ([]models.DateBucket, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("field %q: %w", FeedKey, err)
	}

	if bytes.Equal(bytes.TrimSpace(raw), nullLiteral) {
		return nil, nil
	}

	inner := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(inner, '{'); err != nil {
		return nil, fmt.Errorf("field %q must be an object: %w", FeedKey, err)
	}

	var buckets []models.DateBucket

	// A repeated date keeps its first position and its last value.
	index := make(map[string]int)

	for inner.More() {
		date, err := readKey(inner)
		if err != nil {
			return nil, err
		}

		var list json.RawMessage
		if err := inner.Decode(&list); err != nil {
			return nil, fmt.Errorf("date %s: %w", date, err)
		}

		objects, err := decodeObjects(date, list)
		if err != nil {
			return nil, err
		}

		if i, ok := index[date]; ok {
			buckets[i].Objects = objects

			continue
		}

		index[date] = len(buckets)
		buckets = append(buckets, models.DateBucket{Date: date, Objects: objects})
	}

	if err := expectDelim(inner, '}'); err != nil {
		return nil, err
	}

	return buckets, nil
}

func decodeObjects(date string, list json.RawMessage) ([]models.NearEarthObject, error) {
	if bytes.Equal(bytes.TrimSpace(list), nullLiteral) {
		return nil, nil
	}

	var raws []*rawObject
	if err := json.Unmarshal(list, &raws); err != nil {
		return nil, fmt.Errorf("date %s: invalid object list: %w", date, err)
	}

	objects := make([]models.NearEarthObject, 0, len(raws))

	for i, raw := range raws {
		obj, err := raw.toModel()
		if err != nil {
			return nil, fmt.Errorf("date %s object %d: %w", date, i, err)
		}

		objects = append(objects, obj)
	}

	return objects, nil
}

func (r *rawObject) toModel() (models.NearEarthObject, error) {
	if r == nil {
		return models.NearEarthObject{}, errors.New("object is null")
	}

	id, err := parseReferenceID(r.ReferenceID)
	if err != nil {
		return models.NearEarthObject{}, err
	}

	if r.Name == nil {
		return models.NearEarthObject{}, errors.New("missing name")
	}

	if r.AbsoluteMagnitudeH == nil {
		return models.NearEarthObject{}, errors.New("missing absolute_magnitude_h")
	}

	if r.IsPotentiallyHazardous == nil {
		return models.NearEarthObject{}, errors.New("missing is_potentially_hazardous_asteroid")
	}

	return models.NearEarthObject{
		ReferenceID:            id,
		Name:                   *r.Name,
		AbsoluteMagnitudeH:     *r.AbsoluteMagnitudeH,
		IsPotentiallyHazardous: *r.IsPotentiallyHazardous,
	}, nil
}

// parseReferenceID accepts the identifier as a JSON string or a JSON integer.
func parseReferenceID(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral) {
		return "", errors.New("missing neo_reference_id")
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", fmt.Errorf("neo_reference_id: %w", err)
		}

		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", fmt.Errorf("neo_reference_id must be a string or integer: %w", err)
	}

	if strings.ContainsAny(n.String(), ".eE") {
		return "", fmt.Errorf("neo_reference_id must be an integer, got %s", n)
	}

	return n.String(), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}

	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}

	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}

	return key, nil
}

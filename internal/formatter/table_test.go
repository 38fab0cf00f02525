package formatter

import (
	"slices"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"neowatch/internal/models"
)

func TestFormatTable(t *testing.T) {
	payload := &models.FeedPayload{
		Buckets: []models.DateBucket{
			{
				Date: "2015-09-07",
				Objects: []models.NearEarthObject{
					neo("1", "A", 20.1, false),
					neo("2", "B", 25.5, true),
				},
			},
		},
	}

	got := FormatTable(payload, 1, false)
	want := []string{
		"| DATE       | ID  | NAME | MAGNITUDE | HAZARDOUS |",
		"| ---------- | --- | ---- | --------- | --------- |",
		"| 2015-09-07 | 2   | B    | 25.5      | yes       |",
	}

	if !slices.Equal(got, want) {
		t.Errorf("FormatTable() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestFormatTable_WideRunesAligned(t *testing.T) {
	payload := &models.FeedPayload{
		Buckets: []models.DateBucket{
			{
				Date: "2015-09-07",
				Objects: []models.NearEarthObject{
					neo("1", "小行星", 22, false),
					neo("2", "(2015 RC)", 21, true),
				},
			},
		},
	}

	lines := FormatTable(payload, 5, false)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	width := runewidth.StringWidth(lines[0])
	for i, line := range lines {
		if w := runewidth.StringWidth(line); w != width {
			t.Errorf("line %d display width = %d, want %d: %q", i, w, width, line)
		}
	}
}

func TestFormatTable_Empty(t *testing.T) {
	lines := FormatTable(&models.FeedPayload{}, 3, false)

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header and separator only", len(lines))
	}

	if !strings.HasPrefix(lines[0], "| DATE") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestFormatTable_StyledKeepsContent(t *testing.T) {
	payload := &models.FeedPayload{
		Buckets: []models.DateBucket{{Date: "2015-09-07", Objects: []models.NearEarthObject{neo("1", "A", 20.1, false)}}},
	}

	plain := FormatTable(payload, 1, false)
	styled := FormatTable(payload, 1, true)

	for _, header := range TableHeaders {
		if !strings.Contains(styled[0], header) {
			t.Errorf("styled header missing %q: %q", header, styled[0])
		}
	}

	if !slices.Equal(plain[1:], styled[1:]) {
		t.Errorf("styling changed body rows: %q vs %q", plain[1:], styled[1:])
	}
}
